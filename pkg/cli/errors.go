package cli

import "fmt"

// ConfigError wraps a failure to load or validate configuration and keeps
// the offending file path for the message.
type ConfigError struct {
	Path string
	Err  error
}

// NewConfigError wraps err with the config file path it came from.
func NewConfigError(path string, err error) *ConfigError {
	return &ConfigError{Path: path, Err: err}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// CommandError marks err as having aborted the named subcommand.
type CommandError struct {
	Command string
	Err     error
}

// NewCommandError wraps err with the subcommand that failed.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
