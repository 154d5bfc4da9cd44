package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

// LocationHandler exposes venue management.
type LocationHandler struct {
	Locations *service.LocationService
}

func NewLocationHandler(locations *service.LocationService) *LocationHandler {
	return &LocationHandler{Locations: locations}
}

type createLocationReq struct {
	Name             string `json:"name"`
	Address          string `json:"address"`
	MaxTables        int    `json:"max_tables"`
	MaxSeatsPerTable int    `json:"max_seats_per_table"`
}

type updateLocationReq struct {
	Name             *string `json:"name"`
	Address          *string `json:"address"`
	MaxTables        *int    `json:"max_tables"`
	MaxSeatsPerTable *int    `json:"max_seats_per_table"`
}

type locationResp struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Address          string `json:"address"`
	MaxTables        int    `json:"max_tables"`
	MaxSeatsPerTable int    `json:"max_seats_per_table"`
}

func toLocationResp(l *model.Location) locationResp {
	return locationResp{
		ID:               l.ID,
		Name:             l.Name,
		Address:          l.Address,
		MaxTables:        l.MaxTables,
		MaxSeatsPerTable: l.MaxSeatsPerTable,
	}
}

// Create registers a venue.
func (h *LocationHandler) Create(c echo.Context) error {
	var req createLocationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	location, err := h.Locations.Create(c.Request().Context(), callerFrom(c),
		req.Name, req.Address, req.MaxTables, req.MaxSeatsPerTable)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toLocationResp(location))
}

// Get returns one venue.
func (h *LocationHandler) Get(c echo.Context) error {
	location, err := h.Locations.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toLocationResp(location))
}

// List returns every venue.
func (h *LocationHandler) List(c echo.Context) error {
	locations, err := h.Locations.GetAll(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	out := make([]locationResp, 0, len(locations))
	for i := range locations {
		out = append(out, toLocationResp(&locations[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Update applies a partial update to a venue.
func (h *LocationHandler) Update(c echo.Context) error {
	var req updateLocationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	location, err := h.Locations.Update(c.Request().Context(), callerFrom(c), c.Param("id"), model.LocationUpdate{
		Name:             req.Name,
		Address:          req.Address,
		MaxTables:        req.MaxTables,
		MaxSeatsPerTable: req.MaxSeatsPerTable,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toLocationResp(location))
}
