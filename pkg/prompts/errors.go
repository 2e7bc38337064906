package prompts

import "fmt"

// UnknownCommandError is returned when Format is called with a command
// that has no template binding. The dispatcher only calls Format with
// recognized commands, so this surfacing at runtime is an internal
// fault, not a user mistake.
type UnknownCommandError struct {
	Command string
}

// Error implements the error interface.
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("no prompt template bound to command %q", e.Command)
}

// InvalidTemplateError is returned when a template definition cannot be
// used: empty name, missing or duplicated placeholder, or a binding
// that points at a template the set does not define.
type InvalidTemplateError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("invalid prompt template %q: %s", e.Name, e.Reason)
}

// LoadError wraps a failure to read or parse a templates file. The
// previous template set stays active when a reload fails with this.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load templates from %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
