package config

import "errors"

var (
	// ErrInvalidConfig wraps every Validate failure.
	ErrInvalidConfig = errors.New("config: invalid value")
	// ErrLoadConfig wraps failures to read the YAML file or the environment.
	ErrLoadConfig = errors.New("config: cannot load")
)
