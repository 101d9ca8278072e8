package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ActionCreateBooking = "create_booking"
	ActionUpdateBooking = "update_booking"
	ActionDeleteBooking = "delete_booking"
)

// Activity is an immutable audit record of an action taken by a user.
// Metadata holds a JSON snapshot of the affected records.
type Activity struct {
	ID        uuid.UUID      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID    string         `gorm:"index" json:"user_id"`
	Action    string         `gorm:"size:64;index;not null" json:"action"`
	Detail    string         `json:"detail"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
