package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Phenoo/bookkeep-server/internal/dto"
	"github.com/Phenoo/bookkeep-server/internal/middleware"
	"github.com/Phenoo/bookkeep-server/internal/models"
	"github.com/Phenoo/bookkeep-server/internal/service"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/properties/:id/availability", h.CheckAvailability)
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.PATCH("/bookings/:id", h.UpdateBooking)
	g.DELETE("/bookings/:id", h.RemoveBooking)
}

func (h *BookingHandler) CheckAvailability(c echo.Context) error {
	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid property id")
	}

	start, err := service.ParseDate(c.QueryParam("start_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
	}
	end, err := service.ParseDate(c.QueryParam("end_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
	}

	var excludeID uint
	if s := c.QueryParam("exclude_booking_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid exclude_booking_id")
		}
		excludeID = uint(id)
	}

	result, err := h.svc.CheckAvailability(c.Request().Context(), uint(propertyID), start, end, excludeID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.AvailabilityResponse{
		Available:          result.Available,
		ConflictingBooking: dto.ToConflictingBooking(result.Conflict),
	})
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, err := service.ParseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
	}
	end, err := service.ParseDate(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
	}

	address, err := toJSON(req.Address)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid address")
	}
	nextOfKin, err := toJSON(req.NextOfKin)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid next_of_kin")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		PropertyID:    req.PropertyID,
		PropertyName:  req.PropertyName,
		StartDate:     start,
		EndDate:       end,
		Amount:        req.Amount,
		DepositAmount: req.DepositAmount,
		Notes:         req.Notes,
		Address:       address,
		NextOfKin:     nextOfKin,
		Status:        models.BookingStatus(req.Status),
		CreatedBy:     middleware.UserID(c),
	})
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.UpdateBookingInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		PropertyID:    req.PropertyID,
		PropertyName:  req.PropertyName,
		Amount:        req.Amount,
		DepositAmount: req.DepositAmount,
		Notes:         req.Notes,
	}

	if req.StartDate != nil {
		start, err := service.ParseDate(*req.StartDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
		}
		in.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := service.ParseDate(*req.EndDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
		}
		in.EndDate = &end
	}
	if req.Status != nil {
		status := models.BookingStatus(*req.Status)
		in.Status = &status
	}
	if in.Address, err = toJSON(req.Address); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid address")
	}
	if in.NextOfKin, err = toJSON(req.NextOfKin); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid next_of_kin")
	}

	booking, err := h.svc.UpdateBooking(c.Request().Context(), uint(id), middleware.UserID(c), in)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) RemoveBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	if err := h.svc.RemoveBooking(c.Request().Context(), uint(id), middleware.UserID(c)); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, map[string]uint{"id": uint(id)})
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), uint(id))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	var propertyID *uint
	if s := c.QueryParam("property_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid property_id")
		}
		v := uint(id)
		propertyID = &v
	}

	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		if !bs.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		status = &bs
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), propertyID, status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}

	return c.JSON(http.StatusOK, resp)
}

func mapServiceError(err error) *echo.HTTPError {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		return echo.NewHTTPError(http.StatusConflict, conflict.Error())
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrPropertyNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidDateRange):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func toJSON[T any](v *T) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
