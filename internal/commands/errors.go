package commands

// UserError is a refusal to show the player. The world is unchanged when
// a handler returns one.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// narrateError renders a narration template into a UserError.
func narrateError(name string, data any) error {
	return NewUserError(narrate(name, data))
}
