package database

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique field already holds the value
	ErrDuplicate = errors.New("duplicate record")
)

// PartialWriteError reports a listing that was committed while its coupled
// earning record was not, and whose compensating delete also failed.
type PartialWriteError struct {
	ListingID ID
	Err       error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("listing %s written without its earning record: %v", e.ListingID, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
