package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Phenoo/bookkeep-server/internal/models"
	"github.com/Phenoo/bookkeep-server/internal/repository"
	"github.com/Phenoo/bookkeep-server/pkg/rabbitmq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrInvalidDateRange = errors.New("start date must be before end date")
)

// ConflictError reports the booking that blocks a requested interval. The
// message carries enough for the caller to show a rejection reason; picking
// different dates or another property always recovers.
type ConflictError struct {
	BookingID    uint
	CustomerName string
	StartDate    time.Time
	EndDate      time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("property already booked by %s from %s to %s",
		e.CustomerName, e.StartDate.Format(dateLayout), e.EndDate.Format(dateLayout))
}

type CreateBookingInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	PropertyID    uint
	PropertyName  string
	StartDate     time.Time
	EndDate       time.Time
	Amount        int64
	DepositAmount int64
	Notes         string
	Address       datatypes.JSON
	NextOfKin     datatypes.JSON
	Status        models.BookingStatus
	CreatedBy     string
}

// UpdateBookingInput is a partial patch: nil fields are left untouched.
type UpdateBookingInput struct {
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	PropertyID    *uint
	PropertyName  *string
	StartDate     *time.Time
	EndDate       *time.Time
	Amount        *int64
	DepositAmount *int64
	Notes         *string
	Address       datatypes.JSON
	NextOfKin     datatypes.JSON
	Status        *models.BookingStatus
}

type BookingService interface {
	CheckAvailability(ctx context.Context, propertyID uint, start, end time.Time, excludeID uint) (*Availability, error)
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id uint, actor string, in UpdateBookingInput) (*models.Booking, error)
	RemoveBooking(ctx context.Context, id uint, actor string) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, propertyID *uint, status *models.BookingStatus) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
	activityRepo repository.ActivityRepository
	saleRepo     repository.SaleRepository
	publisher    *rabbitmq.Publisher
}

// NewBookingService wires the resolver. publisher may be nil, which
// disables lifecycle event publishing.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	propertyRepo repository.PropertyRepository,
	activityRepo repository.ActivityRepository,
	saleRepo repository.SaleRepository,
	publisher *rabbitmq.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		activityRepo: activityRepo,
		saleRepo:     saleRepo,
		publisher:    publisher,
	}
}

// CheckAvailability is read-only: it reflects booking state at query time.
// Mutations re-run the same check inside their transaction, so a caller
// racing another booking still cannot slip past the invariant.
func (s *bookingService) CheckAvailability(ctx context.Context, propertyID uint, start, end time.Time, excludeID uint) (*Availability, error) {
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	if _, err := s.propertyRepo.FindByID(ctx, propertyID); err != nil {
		return nil, mapNotFound(err, ErrPropertyNotFound)
	}

	bookings, err := s.bookingRepo.FindActiveByProperty(ctx, nil, propertyID)
	if err != nil {
		return nil, err
	}

	if c := findConflict(bookings, start, end, excludeID); c != nil {
		return &Availability{Available: false, Conflict: c}, nil
	}
	return &Availability{Available: true}, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, ErrInvalidDateRange
	}

	var result *models.Booking

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		// 1. Lock the property row to serialize concurrent booking attempts
		property, err := s.propertyRepo.FindByIDForUpdate(ctx, tx, in.PropertyID)
		if err != nil {
			return mapNotFound(err, ErrPropertyNotFound)
		}

		// 2. Conflict check against every active booking of the property
		existing, err := s.bookingRepo.FindActiveByProperty(ctx, tx, in.PropertyID)
		if err != nil {
			return err
		}
		if c := findConflict(existing, in.StartDate, in.EndDate, 0); c != nil {
			return &ConflictError{
				BookingID:    c.ID,
				CustomerName: c.CustomerName,
				StartDate:    c.StartDate,
				EndDate:      c.EndDate,
			}
		}

		propertyName := in.PropertyName
		if propertyName == "" {
			propertyName = property.Name
		}

		// 3. Booking plus both derived records, all-or-nothing
		booking := &models.Booking{
			CustomerName:  in.CustomerName,
			CustomerEmail: in.CustomerEmail,
			CustomerPhone: in.CustomerPhone,
			PropertyID:    in.PropertyID,
			PropertyName:  propertyName,
			StartDate:     in.StartDate,
			EndDate:       in.EndDate,
			Amount:        in.Amount,
			DepositAmount: in.DepositAmount,
			Notes:         in.Notes,
			Address:       in.Address,
			NextOfKin:     in.NextOfKin,
			Status:        in.Status,
			CreatedBy:     in.CreatedBy,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}

		snapshot, err := json.Marshal(booking)
		if err != nil {
			return err
		}
		activity := &models.Activity{
			UserID: in.CreatedBy,
			Action: models.ActionCreateBooking,
			Detail: fmt.Sprintf("booked %s for %s (%s to %s)",
				propertyName, in.CustomerName,
				in.StartDate.Format(dateLayout), in.EndDate.Format(dateLayout)),
			Metadata: snapshot,
		}
		if err := s.activityRepo.Create(ctx, tx, activity); err != nil {
			return err
		}

		items, err := json.Marshal([]models.SaleItem{{
			Name:     propertyName,
			Quantity: 1,
			Amount:   booking.Amount,
		}})
		if err != nil {
			return err
		}
		sale := &models.Sale{
			BookingID: booking.ID,
			Items:     items,
			Total:     booking.Amount,
			Status:    models.SaleStatusCompleted,
		}
		if err := s.saleRepo.Create(ctx, tx, sale); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("booking.created", result)
	return result, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id uint, actor string, in UpdateBookingInput) (*models.Booking, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	var result *models.Booking

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		existing, err := s.bookingRepo.FindByID(ctx, tx, id)
		if err != nil {
			return mapNotFound(err, ErrBookingNotFound)
		}

		// Effective values after the patch
		propertyID := existing.PropertyID
		if in.PropertyID != nil {
			propertyID = *in.PropertyID
		}
		start := existing.StartDate
		if in.StartDate != nil {
			start = *in.StartDate
		}
		end := existing.EndDate
		if in.EndDate != nil {
			end = *in.EndDate
		}
		status := existing.Status
		if in.Status != nil {
			status = *in.Status
		}

		if !end.After(start) {
			return ErrInvalidDateRange
		}

		intervalChanged := propertyID != existing.PropertyID ||
			!start.Equal(existing.StartDate) ||
			!end.Equal(existing.EndDate)

		// Re-validate only when the interval moved and the booking stays
		// active. A cancellation always succeeds availability-wise.
		if intervalChanged && status != models.StatusCancelled {
			if _, err := s.propertyRepo.FindByIDForUpdate(ctx, tx, propertyID); err != nil {
				return mapNotFound(err, ErrPropertyNotFound)
			}
			active, err := s.bookingRepo.FindActiveByProperty(ctx, tx, propertyID)
			if err != nil {
				return err
			}
			if c := findConflict(active, start, end, existing.ID); c != nil {
				return &ConflictError{
					BookingID:    c.ID,
					CustomerName: c.CustomerName,
					StartDate:    c.StartDate,
					EndDate:      c.EndDate,
				}
			}
		}

		fields := map[string]any{}
		if in.CustomerName != nil {
			fields["customer_name"] = *in.CustomerName
		}
		if in.CustomerEmail != nil {
			fields["customer_email"] = *in.CustomerEmail
		}
		if in.CustomerPhone != nil {
			fields["customer_phone"] = *in.CustomerPhone
		}
		if in.PropertyID != nil {
			fields["property_id"] = *in.PropertyID
		}
		if in.PropertyName != nil {
			fields["property_name"] = *in.PropertyName
		} else if in.PropertyID != nil && *in.PropertyID != existing.PropertyID {
			property, err := s.propertyRepo.FindByID(ctx, *in.PropertyID)
			if err != nil {
				return mapNotFound(err, ErrPropertyNotFound)
			}
			fields["property_name"] = property.Name
		}
		if in.StartDate != nil {
			fields["start_date"] = *in.StartDate
		}
		if in.EndDate != nil {
			fields["end_date"] = *in.EndDate
		}
		if in.Amount != nil {
			fields["amount"] = *in.Amount
		}
		if in.DepositAmount != nil {
			fields["deposit_amount"] = *in.DepositAmount
		}
		if in.Notes != nil {
			fields["notes"] = *in.Notes
		}
		if in.Address != nil {
			fields["address"] = in.Address
		}
		if in.NextOfKin != nil {
			fields["next_of_kin"] = in.NextOfKin
		}
		if in.Status != nil {
			fields["status"] = *in.Status
		}

		if len(fields) > 0 {
			if err := s.bookingRepo.Updates(ctx, tx, id, fields); err != nil {
				return err
			}
		}

		// Re-read through the transaction so the response and the audit
		// snapshot carry the patched values, not the committed ones.
		updated, err := s.bookingRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}

		meta, err := json.Marshal(map[string]any{"before": existing, "after": updated})
		if err != nil {
			return err
		}
		activity := &models.Activity{
			UserID:   actor,
			Action:   models.ActionUpdateBooking,
			Detail:   fmt.Sprintf("updated booking %d for %s", id, updated.CustomerName),
			Metadata: meta,
		}
		if err := s.activityRepo.Create(ctx, tx, activity); err != nil {
			return err
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("booking.updated", result)
	return result, nil
}

// RemoveBooking deletes unconditionally; no conflict semantics apply. The
// prior record survives in the audit trail.
func (s *bookingService) RemoveBooking(ctx context.Context, id uint, actor string) error {
	var removed *models.Booking

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		existing, err := s.bookingRepo.FindByID(ctx, tx, id)
		if err != nil {
			return mapNotFound(err, ErrBookingNotFound)
		}

		if err := s.bookingRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		snapshot, err := json.Marshal(existing)
		if err != nil {
			return err
		}
		activity := &models.Activity{
			UserID:   actor,
			Action:   models.ActionDeleteBooking,
			Detail:   fmt.Sprintf("deleted booking %d for %s", id, existing.CustomerName),
			Metadata: snapshot,
		}
		if err := s.activityRepo.Create(ctx, tx, activity); err != nil {
			return err
		}

		removed = existing
		return nil
	})
	if err != nil {
		return err
	}

	s.publish("booking.deleted", removed)
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, mapNotFound(err, ErrBookingNotFound)
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, propertyID *uint, status *models.BookingStatus) ([]models.Booking, error) {
	return s.bookingRepo.List(ctx, propertyID, status)
}

// mapNotFound translates a missing-row error into the domain sentinel while
// leaving every other repository failure intact, so transient database
// errors do not masquerade as 404s.
func mapNotFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func (s *bookingService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(routingKey, payload)
}
