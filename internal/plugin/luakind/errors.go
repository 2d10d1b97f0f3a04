package luakind

import "errors"

// Errors returned by the Lua kind loader.
var (
	// ErrLoaderClosed indicates the Lua state has been released.
	ErrLoaderClosed = errors.New("lua kind loader is closed")

	// ErrBadScript indicates a script did not follow the kind table
	// shape.
	ErrBadScript = errors.New("malformed kind script")
)
