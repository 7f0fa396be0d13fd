package study

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrFolderNotEmpty = errors.New("folder contains files or subfolders")
	ErrRootFolder     = errors.New("the root folder cannot be deleted")
	ErrUnknownFolder  = errors.New("folder does not exist")
	ErrFolderCycle    = errors.New("folder tree contains a cycle or dangling parent")
	ErrNoPayload      = errors.New("no input selected")
)

// ValidationError reports user input that failed validation.
// Err is usually a validation.Errors map keyed by field name.
type ValidationError struct {
	Entity string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Entity, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(entity string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Entity: entity, Err: err}
}
