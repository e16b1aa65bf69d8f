package types

import "fmt"

// NotAssignableError is returned when a value of one type is used where
// another is required.
type NotAssignableError struct {
	Target Type
	Actual Type
}

func (e *NotAssignableError) Error() string {
	return fmt.Sprintf("type %s is not assignable to %s", e.Actual, e.Target)
}

// IsAssignable reports whether a value of type actual may be stored where
// target is expected.
func IsAssignable(target, actual Type) bool {
	switch {
	case actual == target, target == ANY:
		return true
	case target == COMPARABLE:
		switch actual {
		case INTEGER, DECIMAL, CHARACTER, STRING:
			return true
		}
	}
	return false
}

// RequireAssignable is IsAssignable as an error.
func RequireAssignable(target, actual Type) error {
	if IsAssignable(target, actual) {
		return nil
	}
	return &NotAssignableError{Target: target, Actual: actual}
}
