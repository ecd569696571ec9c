package config

import "errors"

var (
	// ErrParsingConfig wraps env parse failures.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrConfigNotLoaded indicates the cache lost a type it should hold.
	ErrConfigNotLoaded = errors.New("configuration has not been loaded")

	// ErrNilPointer indicates a nil destination passed to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
