package models

import (
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking reserves a property for a customer over [StartDate, EndDate).
// For a given property, non-cancelled bookings must have pairwise
// disjoint intervals.
type Booking struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CustomerName  string         `gorm:"not null" json:"customer_name"`
	CustomerEmail string         `json:"customer_email,omitempty"`
	CustomerPhone string         `json:"customer_phone,omitempty"`
	PropertyID    uint           `gorm:"not null;index" json:"property_id"`
	PropertyName  string         `gorm:"not null" json:"property_name"`
	StartDate     time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate       time.Time      `gorm:"type:date;not null" json:"end_date"`
	Amount        int64          `gorm:"not null" json:"amount"`
	DepositAmount int64          `json:"deposit_amount"`
	Notes         string         `json:"notes,omitempty"`
	Address       datatypes.JSON `gorm:"type:jsonb" json:"address,omitempty"`
	NextOfKin     datatypes.JSON `gorm:"type:jsonb" json:"next_of_kin,omitempty"`
	Status        BookingStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedBy     string         `json:"created_by,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}
