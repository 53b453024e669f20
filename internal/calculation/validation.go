package calculation

import (
	"strings"
)

// ValidationError aggregates every problem found in an input so callers
// can surface all of them at once instead of fixing one at a time. It is
// returned, never panicked, and a calculation that returns one produces
// no partial result.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Problems, "; ")
}

// validationErr wraps a non-empty problem list, or returns nil.
func validationErr(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}
