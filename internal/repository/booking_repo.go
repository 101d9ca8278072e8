package repository

import (
	"context"

	"github.com/Phenoo/bookkeep-server/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindActiveByProperty(ctx context.Context, tx *gorm.DB, propertyID uint) ([]models.Booking, error)
	List(ctx context.Context, propertyID *uint, status *models.BookingStatus) ([]models.Booking, error)
	Updates(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// conn returns the transaction handle when one is in flight, otherwise
// the shared connection.
func (r *bookingRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *bookingRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return r.conn(tx).WithContext(ctx).Create(booking).Error
}

// FindByID reads through the transaction when one is supplied, so reads
// that follow an in-flight write observe that write.
func (r *bookingRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.conn(tx).WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindActiveByProperty returns every non-cancelled booking for the property,
// ordered by start date. Cancelled rows never participate in conflict checks.
func (r *bookingRepository) FindActiveByProperty(ctx context.Context, tx *gorm.DB, propertyID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.conn(tx).WithContext(ctx).
		Where("property_id = ? AND status <> ?", propertyID, models.StatusCancelled).
		Order("start_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) List(ctx context.Context, propertyID *uint, status *models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx)
	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("start_date ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Updates(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *bookingRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return r.conn(tx).WithContext(ctx).Delete(&models.Booking{}, id).Error
}
