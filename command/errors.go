package command

import "errors"

var (
	// ErrNotCommand is returned for messages that do not start with the prefix.
	ErrNotCommand = errors.New("not a command")

	// ErrUnknownCommand is returned for prefixed messages naming no known command.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrSessionRequired is returned when no chat session is provided.
	ErrSessionRequired = errors.New("session required")

	// ErrDispatcherRequired is returned when no dispatcher is provided.
	ErrDispatcherRequired = errors.New("dispatcher required")
)

// UsageError reports a recognized command used incorrectly.
// Its message is shown to the user.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}
