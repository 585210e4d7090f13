package config

import "errors"

// Sentinel error kinds for this package, usable with errors.Is from callers.
var (
	// ErrInvalidConfig reports settings that fail validation, e.g. a rating
	// floor above the ceiling.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig reports a failure to read or parse a config source.
	ErrLoadConfig = errors.New("load config failed")
)
