package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Phenoo/bookkeep-server/internal/dto"
	"github.com/Phenoo/bookkeep-server/internal/models"
	"github.com/Phenoo/bookkeep-server/internal/service"
	"github.com/Phenoo/bookkeep-server/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock BookingService ---

type mockBookingService struct {
	checkFn  func(ctx context.Context, propertyID uint, start, end time.Time, excludeID uint) (*service.Availability, error)
	createFn func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error)
	updateFn func(ctx context.Context, id uint, actor string, in service.UpdateBookingInput) (*models.Booking, error)
	removeFn func(ctx context.Context, id uint, actor string) error
	getFn    func(ctx context.Context, id uint) (*models.Booking, error)
	listFn   func(ctx context.Context, propertyID *uint, status *models.BookingStatus) ([]models.Booking, error)
}

func (m *mockBookingService) CheckAvailability(ctx context.Context, propertyID uint, start, end time.Time, excludeID uint) (*service.Availability, error) {
	return m.checkFn(ctx, propertyID, start, end, excludeID)
}
func (m *mockBookingService) CreateBooking(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, in)
}
func (m *mockBookingService) UpdateBooking(ctx context.Context, id uint, actor string, in service.UpdateBookingInput) (*models.Booking, error) {
	return m.updateFn(ctx, id, actor, in)
}
func (m *mockBookingService) RemoveBooking(ctx context.Context, id uint, actor string) error {
	return m.removeFn(ctx, id, actor)
}
func (m *mockBookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingService) ListBookings(ctx context.Context, propertyID *uint, status *models.BookingStatus) ([]models.Booking, error) {
	return m.listFn(ctx, propertyID, status)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-1")
	return c, rec
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:           1,
		CustomerName: "Ada Lovelace",
		PropertyID:   1,
		PropertyName: "Sunset Suite",
		StartDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Amount:       50000,
		Status:       models.StatusConfirmed,
		CreatedBy:    "user-1",
		CreatedAt:    time.Now(),
	}
}

// --- Tests ---

func TestCreateBooking_Handler_Success(t *testing.T) {
	var captured service.CreateBookingInput
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
			captured = in
			return sampleBooking(), nil
		},
	}

	body := `{"customer_name":"Ada Lovelace","property_id":1,"start_date":"2024-06-01","end_date":"2024-06-10","amount":50000,"status":"confirmed"}`
	c, rec := newTestContext(http.MethodPost, "/api/v1/bookings", body)

	err := NewBookingHandler(svc).CreateBooking(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user-1", captured.CreatedBy, "actor taken from the auth context")
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), captured.StartDate)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "2024-06-01", resp.StartDate)
	assert.Equal(t, "2024-06-10", resp.EndDate)
	assert.Equal(t, models.StatusConfirmed, resp.Status)
}

func TestCreateBooking_Handler_Conflict(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
			return nil, &service.ConflictError{
				BookingID:    9,
				CustomerName: "Grace Hopper",
				StartDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				EndDate:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			}
		},
	}

	body := `{"customer_name":"Ada","property_id":1,"start_date":"2024-06-05","end_date":"2024-06-12","status":"pending"}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/bookings", body)

	err := NewBookingHandler(svc).CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
	assert.Contains(t, he.Message, "Grace Hopper")
	assert.Contains(t, he.Message, "2024-06-01")
}

func TestCreateBooking_Handler_MissingCustomerName(t *testing.T) {
	body := `{"property_id":1,"start_date":"2024-06-01","end_date":"2024-06-10","status":"pending"}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/bookings", body)

	err := NewBookingHandler(&mockBookingService{}).CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_Handler_BadStatus(t *testing.T) {
	body := `{"customer_name":"Ada","property_id":1,"start_date":"2024-06-01","end_date":"2024-06-10","status":"tentative"}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/bookings", body)

	err := NewBookingHandler(&mockBookingService{}).CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_Handler_BadDate(t *testing.T) {
	body := `{"customer_name":"Ada","property_id":1,"start_date":"June 1st","end_date":"2024-06-10","status":"pending"}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/bookings", body)

	err := NewBookingHandler(&mockBookingService{}).CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCheckAvailability_Handler_Available(t *testing.T) {
	svc := &mockBookingService{
		checkFn: func(ctx context.Context, propertyID uint, start, end time.Time, excludeID uint) (*service.Availability, error) {
			assert.Equal(t, uint(1), propertyID)
			assert.Equal(t, uint(0), excludeID)
			return &service.Availability{Available: true}, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/v1/properties/1/availability?start_date=2024-06-10&end_date=2024-06-15", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := NewBookingHandler(svc).CheckAvailability(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Nil(t, resp.ConflictingBooking)
}

func TestCheckAvailability_Handler_Conflict(t *testing.T) {
	svc := &mockBookingService{
		checkFn: func(ctx context.Context, propertyID uint, start, end time.Time, excludeID uint) (*service.Availability, error) {
			return &service.Availability{Available: false, Conflict: sampleBooking()}, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/v1/properties/1/availability?start_date=2024-06-05&end_date=2024-06-12", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := NewBookingHandler(svc).CheckAvailability(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
	require.NotNil(t, resp.ConflictingBooking)
	assert.Equal(t, "Ada Lovelace", resp.ConflictingBooking.CustomerName)
	assert.Equal(t, "2024-06-01", resp.ConflictingBooking.StartDate)
	assert.Equal(t, "2024-06-10", resp.ConflictingBooking.EndDate)
}

func TestCheckAvailability_Handler_ExcludeID(t *testing.T) {
	svc := &mockBookingService{
		checkFn: func(ctx context.Context, propertyID uint, start, end time.Time, excludeID uint) (*service.Availability, error) {
			assert.Equal(t, uint(7), excludeID)
			return &service.Availability{Available: true}, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/v1/properties/1/availability?start_date=2024-06-01&end_date=2024-06-10&exclude_booking_id=7", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, NewBookingHandler(svc).CheckAvailability(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckAvailability_Handler_MissingDates(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/api/v1/properties/1/availability", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := NewBookingHandler(&mockBookingService{}).CheckAvailability(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUpdateBooking_Handler_Conflict(t *testing.T) {
	svc := &mockBookingService{
		updateFn: func(ctx context.Context, id uint, actor string, in service.UpdateBookingInput) (*models.Booking, error) {
			return nil, &service.ConflictError{BookingID: 2, CustomerName: "Grace"}
		},
	}

	body := `{"start_date":"2024-06-14","end_date":"2024-06-18"}`
	c, _ := newTestContext(http.MethodPatch, "/api/v1/bookings/1", body)
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := NewBookingHandler(svc).UpdateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestUpdateBooking_Handler_NotFound(t *testing.T) {
	svc := &mockBookingService{
		updateFn: func(ctx context.Context, id uint, actor string, in service.UpdateBookingInput) (*models.Booking, error) {
			return nil, service.ErrBookingNotFound
		},
	}

	body := `{"notes":"x"}`
	c, _ := newTestContext(http.MethodPatch, "/api/v1/bookings/42", body)
	c.SetParamNames("id")
	c.SetParamValues("42")

	err := NewBookingHandler(svc).UpdateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestRemoveBooking_Handler_Success(t *testing.T) {
	var gotID uint
	var gotActor string
	svc := &mockBookingService{
		removeFn: func(ctx context.Context, id uint, actor string) error {
			gotID, gotActor = id, actor
			return nil
		},
	}

	c, rec := newTestContext(http.MethodDelete, "/api/v1/bookings/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, NewBookingHandler(svc).RemoveBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(1), gotID)
	assert.Equal(t, "user-1", gotActor)
}

func TestGetBooking_Handler_NotFound(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return nil, service.ErrBookingNotFound
		},
	}

	c, _ := newTestContext(http.MethodGet, "/api/v1/bookings/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	err := NewBookingHandler(svc).GetBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestListBookings_Handler_StatusFilter(t *testing.T) {
	svc := &mockBookingService{
		listFn: func(ctx context.Context, propertyID *uint, status *models.BookingStatus) ([]models.Booking, error) {
			require.NotNil(t, status)
			assert.Equal(t, models.StatusConfirmed, *status)
			return []models.Booking{*sampleBooking()}, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/v1/bookings?status=confirmed", "")

	require.NoError(t, NewBookingHandler(svc).ListBookings(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Ada Lovelace", resp[0].CustomerName)
}

func TestListBookings_Handler_BadStatus(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/api/v1/bookings?status=archived", "")

	err := NewBookingHandler(&mockBookingService{}).ListBookings(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
