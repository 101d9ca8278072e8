package handler

import (
	"net/http"
	"strconv"

	"github.com/Phenoo/bookkeep-server/internal/dto"
	"github.com/Phenoo/bookkeep-server/internal/repository"
	"github.com/labstack/echo/v4"
)

// ActivityHandler exposes the audit trail and the per-booking ledger rows
// written by the booking mutations.
type ActivityHandler struct {
	activityRepo repository.ActivityRepository
	saleRepo     repository.SaleRepository
}

func NewActivityHandler(activityRepo repository.ActivityRepository, saleRepo repository.SaleRepository) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo, saleRepo: saleRepo}
}

func (h *ActivityHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/activities", h.ListActivities)
	g.GET("/bookings/:id/sales", h.ListBookingSales)
}

func (h *ActivityHandler) ListActivities(c echo.Context) error {
	limit := 50
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}

	activities, err := h.activityRepo.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ActivityResponse, len(activities))
	for i := range activities {
		resp[i] = dto.ToActivityResponse(&activities[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ActivityHandler) ListBookingSales(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	sales, err := h.saleRepo.FindByBookingID(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.SaleResponse, len(sales))
	for i := range sales {
		resp[i] = dto.ToSaleResponse(&sales[i])
	}

	return c.JSON(http.StatusOK, resp)
}
