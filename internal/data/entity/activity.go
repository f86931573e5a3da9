package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActorRole string

const (
	ActorUser   ActorRole = "User"
	ActorAdmin  ActorRole = "Admin"
	ActorSystem ActorRole = "System"
)

type ActivityType string

const (
	ActivityTicketPurchase ActivityType = "TICKET_PURCHASE"
	ActivityTicketCancel   ActivityType = "TICKET_CANCEL"
	ActivitySessionCreate  ActivityType = "SESSION_CREATE"
	ActivitySessionDelete  ActivityType = "SESSION_DELETE"
	ActivityError          ActivityType = "ERROR"
)

type ActivityResult string

const (
	ResultSuccess ActivityResult = "SUCCESS"
	ResultFailed  ActivityResult = "FAILED"
)

// ActivityEntry is one line of the booking audit trail.
type ActivityEntry struct {
	ID          int64          `db:"id" json:"id,omitempty"`
	ActorID     *uuid.UUID     `db:"actor_id" json:"actor_id,omitempty"`
	ActorRole   ActorRole      `db:"actor_role" json:"actor_role"`
	EventType   ActivityType   `db:"event_type" json:"event_type"`
	EntityID    *uuid.UUID     `db:"entity_id" json:"entity_id,omitempty"`
	Description string         `db:"description" json:"description"`
	Result      ActivityResult `db:"result" json:"result"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}
