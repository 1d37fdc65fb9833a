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

// AdminSlotHandler serves the ADMIN-only slot management and booking
// oversight endpoints.
type AdminSlotHandler struct {
	Slots    *repository.SlotRepo
	Spaces   *repository.SpaceRepo
	Bookings *repository.BookingRepo
	Resolver *booking.Resolver
}

func NewAdminSlotHandler(sl *repository.SlotRepo, sp *repository.SpaceRepo, b *repository.BookingRepo, res *booking.Resolver) *AdminSlotHandler {
	return &AdminSlotHandler{Slots: sl, Spaces: sp, Bookings: b, Resolver: res}
}

type createSlotReq struct {
	Date      string  `json:"date" validate:"required"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Capacity  *uint32 `json:"capacity" validate:"omitempty,min=1,max=10000"`
}

// CreateSlot adds a bookable time window to a space. The optional
// capacity overrides the space capacity for this window only.
func (h *AdminSlotHandler) CreateSlot(c echo.Context) error {
	spaceID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid space id"})
	}
	var req createSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}
	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time, want HH:MM"})
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time, want HH:MM"})
	}
	if !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Spaces.GetByID(ctx, spaceID); err != nil {
		if errors.Is(err, repository.ErrSpaceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "space not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	slot := &model.Slot{
		SpaceID:   spaceID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Capacity:  req.Capacity,
	}
	if err := h.Slots.Create(ctx, slot); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, slot)
}

// DeleteSlot removes a slot. 409 while it still carries active bookings.
func (h *AdminSlotHandler) DeleteSlot(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Slots.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot has active bookings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSlotBookings returns every booking in a slot, cancelled ones
// included, with the booker's display name.
func (h *AdminSlotHandler) ListSlotBookings(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Slots.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	items, err := h.Bookings.ListBySlot(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": items})
}

// ConfirmOnsite confirms a pending booking whose owner pays at the venue:
// the admin acknowledges arrival and payment in one step.
func (h *AdminSlotHandler) ConfirmOnsite(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Resolver.TransitionStatus(ctx, id, model.StatusConfirmed); err != nil {
		return writeTransitionErr(c, err)
	}
	if err := h.Bookings.SetPaymentStatus(ctx, id, model.PaymentPaid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusConfirmed, "payment_status": model.PaymentPaid})
}
