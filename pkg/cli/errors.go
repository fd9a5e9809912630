package cli

import "fmt"

// SettingsError represents an error in the tool settings.
type SettingsError struct {
	Field   string
	Message string
}

func (e *SettingsError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("settings error: %s", e.Message)
	}
	return fmt.Sprintf("settings error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewSettingsError creates a new SettingsError.
func NewSettingsError(field, message string) *SettingsError {
	return &SettingsError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}
