package structure

import "fmt"

// ContractViolation signals a programming-contract failure: an unexpected
// graph shape or broken invariant that can only result from a bug in a
// rewrite primitive, never from valid input (spec §4.9). Callers at the
// driver level treat this as fatal: log the offending configuration and
// abort, rather than retry or recover.
type ContractViolation struct {
	Op  string
	Msg string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", e.Op, e.Msg)
}
