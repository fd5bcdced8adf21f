package reconciler

import (
	"errors"
	"fmt"
)

type MissingObjectKeyError struct {
	Field string
}

func (err MissingObjectKeyError) Error() string {
	return "missing object key: " + err.Field
}

type ObjectCreationFailedError struct {
	Kind Kind
	Err  error
}

func (err ObjectCreationFailedError) Error() string {
	return fmt.Sprintf("failed to create %s object: %v", err.Kind, err.Err)
}

func (err ObjectCreationFailedError) Unwrap() error { return err.Err }

func IsMissingObjectKey(err error) bool {
	var target MissingObjectKeyError
	return errors.As(err, &target)
}

func IsObjectCreationFailed(err error) bool {
	var target ObjectCreationFailedError
	return errors.As(err, &target)
}
