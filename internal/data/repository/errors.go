package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned by writes whose target row vanished. Finders return nil, nil instead.
var ErrNotFound = errors.New("record not found")

// SessionOverlapError means the hall already has a session in the requested window.
// ConflictingID is uuid.Nil when only the exclusion constraint caught the overlap.
type SessionOverlapError struct {
	HallID        uuid.UUID
	ConflictingID uuid.UUID
}

func (e *SessionOverlapError) Error() string {
	if e.ConflictingID == uuid.Nil {
		return fmt.Sprintf("hall %s already has a session in this window", e.HallID)
	}
	return fmt.Sprintf("hall %s already has session %s in this window", e.HallID, e.ConflictingID)
}

type rowScanner interface {
	Scan(dest ...any) error
}
