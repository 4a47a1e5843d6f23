package tool

import "fmt"

// RequireField returns an error if the string value is empty.
func RequireField(name, value string) error {
	if value == "" {
		return fmt.Errorf("'%s' is required", name)
	}
	return nil
}

// ValidateRange checks that value is within [min, max]. Returns nil on success.
func ValidateRange(name string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be %d-%d", name, min, max)
	}
	return nil
}

// ValidateSliceLen checks that the slice has between min and max entries.
func ValidateSliceLen[T any](name string, s []T, min, max int) error {
	if len(s) < min || len(s) > max {
		return fmt.Errorf("%s must have %d-%d entries", name, min, max)
	}
	return nil
}

// ValidateAll returns the first non-nil error from the given list.
// Useful for combining multiple validation checks.
func ValidateAll(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
