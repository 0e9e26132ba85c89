package commands

import "fmt"

// Exit codes besides 0 (success) and 1 (any other error).
const (
	ExitPostFailed = 2
	ExitCancelled  = 130
)

// ExitError ends the process with Code. An empty Msg prints nothing.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Msg
}
