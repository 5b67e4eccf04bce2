package hand

import (
	"errors"
	"fmt"
)

// ErrIllegalMutation is matched by every error returned for an action the
// hand's state does not allow. It always indicates a caller bug: check
// Can or IsTerminal before acting.
var ErrIllegalMutation = errors.New("hand: illegal mutation")

// MutationError reports which action was refused and in which state.
type MutationError struct {
	Action Action
	State  State
}

func (e *MutationError) Error() string {
	if e.State.IsTerminal() {
		return fmt.Sprintf("hand already closed: cannot %s a %s hand", e.Action, e.State)
	}
	return fmt.Sprintf("hand: cannot %s a %s hand", e.Action, e.State)
}

func (e *MutationError) Unwrap() error {
	return ErrIllegalMutation
}
