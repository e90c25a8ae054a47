package database

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when untrusted input is not a well-formed identifier
var ErrInvalidID = errors.New("invalid identifier")

// ID identifies a record in every collection
type ID string

// NewID returns a fresh random identifier
func NewID() ID {
	return ID(uuid.NewString())
}

// ParseID validates s and returns it in canonical form
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", ErrInvalidID
	}
	return ID(u.String()), nil
}

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}

func ensureID(id *ID) {
	if id.IsZero() {
		*id = NewID()
	}
}
