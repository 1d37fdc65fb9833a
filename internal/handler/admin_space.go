package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yourspace/yourspace-api/internal/model"
	"github.com/yourspace/yourspace-api/internal/repository"
)

// AdminSpaceHandler serves the ADMIN-only space management endpoints.
type AdminSpaceHandler struct {
	Spaces *repository.SpaceRepo
}

func NewAdminSpaceHandler(spaces *repository.SpaceRepo) *AdminSpaceHandler {
	return &AdminSpaceHandler{Spaces: spaces}
}

type spaceReq struct {
	Name              string   `json:"name" validate:"required,max=120"`
	Type              string   `json:"type" validate:"required,oneof=cubicle meeting common"`
	Capacity          uint32   `json:"capacity" validate:"required,min=1,max=10000"`
	PriceCentsPerHour uint32   `json:"price_cents_per_hour" validate:"min=0"`
	Description       *string  `json:"description"`
	Amenities         []string `json:"amenities" validate:"omitempty,dive,max=60"`
}

func (r *spaceReq) toModel() *model.Space {
	return &model.Space{
		Name:              strings.TrimSpace(r.Name),
		Type:              model.SpaceType(r.Type),
		Capacity:          r.Capacity,
		PriceCentsPerHour: r.PriceCentsPerHour,
		Description:       r.Description,
		Amenities:         r.Amenities,
	}
}

// Create adds a new space.
func (h *AdminSpaceHandler) Create(c echo.Context) error {
	var req spaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := req.toModel()
	if err := h.Spaces.Create(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// Update overwrites a space's mutable fields. Shrinking capacity leaves
// out-of-range bookings intact; they simply stop appearing in occupancy
// views.
func (h *AdminSpaceHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid space id"})
	}
	var req spaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := req.toModel()
	s.ID = id
	if err := h.Spaces.Update(ctx, s); err != nil {
		if errors.Is(err, repository.ErrSpaceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	stored, err := h.Spaces.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, stored)
}

// Delete removes a space. 409 while any of its slots still carry active
// bookings.
func (h *AdminSpaceHandler) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid space id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Spaces.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrSpaceNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "space has active bookings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
