package config

import "errors"

var (
	// ErrParsingConfig indicates environment variables could not be parsed
	// into the target struct.
	ErrParsingConfig = errors.New("config.errors.parsing_config")

	// ErrNilPointer indicates a nil target was passed to Load.
	ErrNilPointer = errors.New("config.errors.nil_pointer")

	// ErrMissingEnvFile indicates an explicitly requested .env file could
	// not be read.
	ErrMissingEnvFile = errors.New("config.errors.missing_env_file")
)
