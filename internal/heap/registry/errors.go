package registry

import "fmt"

// InvariantViolation signals a bug in the producer or the caller — a
// referenced string is missing, a slot is out of range, or an API is
// misused (e.g. mutating a frozen store). It is panicked, never returned,
// and recovered only at Builder.Build's boundary.
type InvariantViolation struct {
	Msg string
}

func (e InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Msg)
}
