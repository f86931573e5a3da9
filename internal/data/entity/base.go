package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is shared by catalog rows that are created and updated by admins.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// BaseSimple is for rows that are only ever inserted and deleted.
type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
