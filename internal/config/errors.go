package config

import "errors"

// Errors returned by configuration loading.
var (
	// ErrInvalid indicates a configuration value failed validation.
	ErrInvalid = errors.New("invalid configuration")
)
