package internal

import "errors"

// Warning is an error the command reports without failing. Causes holds the
// individual failures that Err summarizes.
type Warning struct {
	Err    error
	Causes []error
}

func (warning Warning) Error() string { return warning.Err.Error() }

func (warning Warning) Unwrap() []error {
	return append([]error{warning.Err}, warning.Causes...)
}

func IsWarning(err error) bool {
	var warning Warning
	return errors.As(err, &warning)
}
