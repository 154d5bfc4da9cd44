package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

// SpaceHandler exposes venue subdivision management.
type SpaceHandler struct {
	Spaces *service.SpaceService
}

func NewSpaceHandler(spaces *service.SpaceService) *SpaceHandler {
	return &SpaceHandler{Spaces: spaces}
}

type createSpaceReq struct {
	Name       string   `json:"name"`
	LocationID string   `json:"location_id"`
	TotalArea  *float64 `json:"total_area"`
}

// updateSpaceReq uses json.RawMessage for total_area so that an explicit
// null (clear the area) can be told apart from the field being absent.
type updateSpaceReq struct {
	Name       *string          `json:"name"`
	LocationID *string          `json:"location_id"`
	TotalArea  *json.RawMessage `json:"total_area"`
}

type spaceResp struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	LocationID string   `json:"location_id"`
	TotalArea  *float64 `json:"total_area"`
}

func toSpaceResp(s *model.Space) spaceResp {
	return spaceResp{ID: s.ID, Name: s.Name, LocationID: s.LocationID, TotalArea: s.TotalArea}
}

// Create adds a space under a location.
func (h *SpaceHandler) Create(c echo.Context) error {
	var req createSpaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.LocationID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location_id is required"})
	}
	space, err := h.Spaces.Create(c.Request().Context(), callerFrom(c), req.Name, req.LocationID, req.TotalArea)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toSpaceResp(space))
}

// Get returns one space.
func (h *SpaceHandler) Get(c echo.Context) error {
	space, err := h.Spaces.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toSpaceResp(space))
}

// List returns every space.
func (h *SpaceHandler) List(c echo.Context) error {
	spaces, err := h.Spaces.GetAll(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toSpaceRespList(spaces))
}

// ListByLocation returns the spaces of one venue.
func (h *SpaceHandler) ListByLocation(c echo.Context) error {
	spaces, err := h.Spaces.GetByLocation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toSpaceRespList(spaces))
}

// Update applies a partial update to a space.
func (h *SpaceHandler) Update(c echo.Context) error {
	var req updateSpaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	u := model.SpaceUpdate{Name: req.Name, LocationID: req.LocationID}
	if req.TotalArea != nil {
		u.TotalAreaSet = true
		if string(*req.TotalArea) != "null" {
			var area float64
			if err := json.Unmarshal(*req.TotalArea, &area); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_area must be a number or null"})
			}
			u.TotalArea = &area
		}
	}

	space, err := h.Spaces.Update(c.Request().Context(), callerFrom(c), c.Param("id"), u)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toSpaceResp(space))
}

func toSpaceRespList(spaces []model.Space) []spaceResp {
	out := make([]spaceResp, 0, len(spaces))
	for i := range spaces {
		out = append(out, toSpaceResp(&spaces[i]))
	}
	return out
}
