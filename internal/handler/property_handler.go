package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Phenoo/bookkeep-server/internal/dto"
	"github.com/Phenoo/bookkeep-server/internal/models"
	"github.com/Phenoo/bookkeep-server/internal/repository"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PropertyHandler is the minimal management surface for the assets the
// booking resolver reads.
type PropertyHandler struct {
	repo repository.PropertyRepository
}

func NewPropertyHandler(repo repository.PropertyRepository) *PropertyHandler {
	return &PropertyHandler{repo: repo}
}

func (h *PropertyHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/properties", h.CreateProperty)
	g.GET("/properties", h.ListProperties)
	g.GET("/properties/:id", h.GetProperty)
}

func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	var req dto.CreatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	property := &models.Property{
		Name:         req.Name,
		Type:         req.Type,
		Floor:        req.Floor,
		Address:      req.Address,
		DailyPrice:   req.DailyPrice,
		MonthlyPrice: req.MonthlyPrice,
		Available:    true,
	}
	if req.Available != nil {
		property.Available = *req.Available
	}

	if err := h.repo.Create(c.Request().Context(), property); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToPropertyResponse(property))
}

func (h *PropertyHandler) GetProperty(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid property id")
	}

	property, err := h.repo.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "property not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

func (h *PropertyHandler) ListProperties(c echo.Context) error {
	properties, err := h.repo.FindAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.PropertyResponse, len(properties))
	for i, p := range properties {
		resp[i] = dto.ToPropertyResponse(&p)
	}

	return c.JSON(http.StatusOK, resp)
}
