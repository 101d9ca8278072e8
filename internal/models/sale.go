package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const SaleStatusCompleted = "completed"

// SaleItem is one line in a sales-ledger entry. A sale derived from a
// booking has exactly one item: the property, quantity 1.
type SaleItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Amount   int64  `json:"amount"`
}

// Sale is a realized-revenue record written alongside a booking. It is
// denormalized for reporting and is not editable through the booking core.
type Sale struct {
	ID        uuid.UUID      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	BookingID uint           `gorm:"not null;index" json:"booking_id"`
	Items     datatypes.JSON `gorm:"type:jsonb;not null" json:"items"`
	Total     int64          `gorm:"not null" json:"total"`
	Status    string         `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}
