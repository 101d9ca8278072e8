package models

import "time"

// Property is a bookable business asset. The booking core only reads it;
// a minimal management surface keeps it populated.
type Property struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Type         string    `gorm:"type:varchar(50)" json:"type,omitempty"`
	Floor        string    `json:"floor,omitempty"`
	Address      string    `json:"address,omitempty"`
	DailyPrice   int64     `json:"daily_price"`
	MonthlyPrice int64     `json:"monthly_price"`
	Available    bool      `gorm:"default:true" json:"available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
