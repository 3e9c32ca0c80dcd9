package platform

import "strings"

// RequireNotBlank checks that a string carries something other than whitespace.
func RequireNotBlank(field, errMsg string) *CommandError {
	if strings.TrimSpace(field) == "" {
		return NewInvalidArgument(errMsg)
	}
	return nil
}

// RequirePositive checks that a value is greater than zero.
func RequirePositive(value int, errMsg string) *CommandError {
	if value <= 0 {
		return NewInvalidArgument(errMsg)
	}
	return nil
}

// RequireNonZero checks that a delta actually changes something.
func RequireNonZero(value int, errMsg string) *CommandError {
	if value == 0 {
		return NewInvalidArgument(errMsg)
	}
	return nil
}

// FirstError returns the first non-nil CommandError as an error.
//
// Keeps call sites free of the typed-nil-in-interface trap.
func FirstError(checks ...*CommandError) error {
	for _, c := range checks {
		if c != nil {
			return c
		}
	}
	return nil
}
