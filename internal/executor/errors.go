package executor

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a command exceeds its deadline.
var ErrTimeout = errors.New("command timeout")

// CommandError reports a failure to launch a command (missing shell,
// permission denied, fork failure). Launch failures are distinct from
// commands that ran and exited non-zero.
type CommandError struct {
	Command string
	Stage   string
	Cause   error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed at %s: %v", e.Command, e.Stage, e.Cause)
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}
