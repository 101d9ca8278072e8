package dto

import (
	"encoding/json"
	"time"

	"github.com/Phenoo/bookkeep-server/internal/models"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID            uint                 `json:"id"`
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email,omitempty"`
	CustomerPhone string               `json:"customer_phone,omitempty"`
	PropertyID    uint                 `json:"property_id"`
	PropertyName  string               `json:"property_name"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	Amount        int64                `json:"amount"`
	DepositAmount int64                `json:"deposit_amount"`
	Notes         string               `json:"notes,omitempty"`
	Address       json.RawMessage      `json:"address,omitempty"`
	NextOfKin     json.RawMessage      `json:"next_of_kin,omitempty"`
	Status        models.BookingStatus `json:"status"`
	CreatedBy     string               `json:"created_by,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type ConflictingBooking struct {
	ID           uint   `json:"id"`
	CustomerName string `json:"customer_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

type AvailabilityResponse struct {
	Available          bool                `json:"available"`
	ConflictingBooking *ConflictingBooking `json:"conflicting_booking"`
}

type PropertyResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	Floor        string `json:"floor,omitempty"`
	Address      string `json:"address,omitempty"`
	DailyPrice   int64  `json:"daily_price"`
	MonthlyPrice int64  `json:"monthly_price"`
	Available    bool   `json:"available"`
}

type ActivityResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Action    string          `json:"action"`
	Detail    string          `json:"detail"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type SaleResponse struct {
	ID        string          `json:"id"`
	BookingID uint            `json:"booking_id"`
	Items     json.RawMessage `json:"items"`
	Total     int64           `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		PropertyID:    b.PropertyID,
		PropertyName:  b.PropertyName,
		StartDate:     b.StartDate.Format(dateLayout),
		EndDate:       b.EndDate.Format(dateLayout),
		Amount:        b.Amount,
		DepositAmount: b.DepositAmount,
		Notes:         b.Notes,
		Address:       json.RawMessage(b.Address),
		NextOfKin:     json.RawMessage(b.NextOfKin),
		Status:        b.Status,
		CreatedBy:     b.CreatedBy,
		CreatedAt:     b.CreatedAt,
	}
}

func ToConflictingBooking(b *models.Booking) *ConflictingBooking {
	if b == nil {
		return nil
	}
	return &ConflictingBooking{
		ID:           b.ID,
		CustomerName: b.CustomerName,
		StartDate:    b.StartDate.Format(dateLayout),
		EndDate:      b.EndDate.Format(dateLayout),
	}
}

func ToActivityResponse(a *models.Activity) ActivityResponse {
	return ActivityResponse{
		ID:        a.ID.String(),
		UserID:    a.UserID,
		Action:    a.Action,
		Detail:    a.Detail,
		Metadata:  json.RawMessage(a.Metadata),
		CreatedAt: a.CreatedAt,
	}
}

func ToSaleResponse(s *models.Sale) SaleResponse {
	return SaleResponse{
		ID:        s.ID.String(),
		BookingID: s.BookingID,
		Items:     json.RawMessage(s.Items),
		Total:     s.Total,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}

func ToPropertyResponse(p *models.Property) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID,
		Name:         p.Name,
		Type:         p.Type,
		Floor:        p.Floor,
		Address:      p.Address,
		DailyPrice:   p.DailyPrice,
		MonthlyPrice: p.MonthlyPrice,
		Available:    p.Available,
	}
}
