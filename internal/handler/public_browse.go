package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yourspace/yourspace-api/internal/booking"
	"github.com/yourspace/yourspace-api/internal/model"
	"github.com/yourspace/yourspace-api/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints: space
// listings, slot listings and per-slot occupancy views. These are the
// read-heavy routes the Redis response cache fronts.
type PublicHandler struct {
	Spaces   *repository.SpaceRepo
	Slots    *repository.SlotRepo
	Resolver *booking.Resolver
}

func NewPublicHandler(spaces *repository.SpaceRepo, slots *repository.SlotRepo, res *booking.Resolver) *PublicHandler {
	return &PublicHandler{Spaces: spaces, Slots: slots, Resolver: res}
}

// ListSpaces returns all spaces, optionally filtered with ?type=cubicle|meeting|common.
func (h *PublicHandler) ListSpaces(c echo.Context) error {
	spaceType := model.SpaceType(c.QueryParam("type"))
	if spaceType != "" && !spaceType.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown space type"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	spaces, err := h.Spaces.List(ctx, spaceType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"spaces": spaces})
}

// GetSpace returns one space by ID.
func (h *PublicHandler) GetSpace(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid space id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Spaces.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSpaceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// ListSlots returns a space's slots, optionally filtered by ?date=2006-01-02.
func (h *PublicHandler) ListSlots(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid space id"})
	}
	date := c.QueryParam("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Spaces.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSpaceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	slots, err := h.Slots.ListBySpace(ctx, id, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": slots})
}

// GetOccupancy returns the seat-by-seat availability view of a slot. Every
// seat in [1, capacity] appears exactly once; true marks an occupied seat.
// Capacity is the slot's own override when set, the space capacity
// otherwise.
func (h *PublicHandler) GetOccupancy(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slot, err := h.Slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	space, err := h.Spaces.GetByID(ctx, slot.SpaceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	capacity := slot.EffectiveCapacity(space.Capacity)

	view, err := h.Resolver.ComputeOccupancy(ctx, slot.ID, capacity)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "occupancy unavailable"})
	}
	occupied := 0
	for _, taken := range view {
		if taken {
			occupied++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"slot_id":  slot.ID,
		"space_id": slot.SpaceID,
		"capacity": capacity,
		"occupied": occupied,
		"free":     int(capacity) - occupied,
		"seats":    view,
	})
}
