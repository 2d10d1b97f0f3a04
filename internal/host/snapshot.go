package host

// WithRegisterSnapshot saves the default register, runs fn, and restores
// the register on every exit path. Internal scans and probes that clobber
// the register go through this so user-visible register state survives.
func WithRegisterSnapshot(regs Registers, fn func() error) error {
	saved := regs.Register()
	defer regs.SetRegister(saved)
	return fn()
}

// WithPatternSnapshot saves the host's last search pattern, runs fn, and
// restores the pattern on every exit path, keeping the user's search
// history clear of internal probe patterns.
func WithPatternSnapshot(s Searcher, fn func() error) error {
	saved := s.LastPattern()
	defer s.SetLastPattern(saved)
	return fn()
}
