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

// BookingHandler serves the user-facing booking endpoints. The resolver
// owns the admission decision; this handler only translates HTTP into
// resolver calls and resolver errors back into status codes.
type BookingHandler struct {
	Resolver *booking.Resolver
	Bookings *repository.BookingRepo
	Slots    *repository.SlotRepo
	Spaces   *repository.SpaceRepo
}

func NewBookingHandler(res *booking.Resolver, b *repository.BookingRepo, sl *repository.SlotRepo, sp *repository.SpaceRepo) *BookingHandler {
	return &BookingHandler{Resolver: res, Bookings: b, Slots: sl, Spaces: sp}
}

type createBookingReq struct {
	SeatNumber    uint32 `json:"seat_number" validate:"required,min=1"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=online onsite"`
}

// Create claims a seat in the slot named by the path for the
// authenticated user. The booking starts pending: online payers confirm
// via /pay, onsite payers are confirmed by an admin on arrival. A seat
// already held by another live booking yields 409.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	slotID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slot, err := h.Slots.GetByID(ctx, slotID)
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

	pay := model.PaymentPending
	if req.PaymentMethod == "onsite" {
		pay = model.PaymentOnsite
	}

	b, err := h.Resolver.AttemptBook(ctx, slot.ID, slot.SpaceID, capacity, req.SeatNumber, uid, pay)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat number out of range"})
		case errors.Is(err, booking.ErrSeatConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat already booked"})
		case errors.Is(err, booking.ErrStoreUnavailable):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "booking unavailable, try again"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	return c.JSON(http.StatusCreated, b)
}

// Get returns one of the user's bookings. Other users' bookings appear as
// 404 so IDs cannot be probed.
func (h *BookingHandler) Get(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.ownBooking(ctx, id, uid)
	if err != nil {
		return writeOwnBookingErr(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// List returns all bookings of the authenticated user, newest first, each
// joined with its slot window and space name.
func (h *BookingHandler) List(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": items})
}

// Pay confirms a pending booking after a (simulated) successful online
// payment: status moves to confirmed and payment to paid. Terminal
// bookings yield 409.
func (h *BookingHandler) Pay(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.ownBooking(ctx, id, uid); err != nil {
		return writeOwnBookingErr(c, err)
	}
	if err := h.Resolver.TransitionStatus(ctx, id, model.StatusConfirmed); err != nil {
		return writeTransitionErr(c, err)
	}
	if err := h.Bookings.SetPaymentStatus(ctx, id, model.PaymentPaid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusConfirmed, "payment_status": model.PaymentPaid})
}

// Cancel cancels one of the user's pending bookings, releasing the seat.
// Confirmed bookings cannot be cancelled by the user.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.ownBooking(ctx, id, uid); err != nil {
		return writeOwnBookingErr(c, err)
	}
	if err := h.Resolver.TransitionStatus(ctx, id, model.StatusCancelled); err != nil {
		return writeTransitionErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusCancelled})
}

// ownBooking loads a booking and enforces that uid owns it. A foreign
// booking is reported as booking.ErrNotFound.
func (h *BookingHandler) ownBooking(ctx context.Context, id, uid uint64) (*model.Booking, error) {
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != uid {
		return nil, booking.ErrNotFound
	}
	return b, nil
}

func writeOwnBookingErr(c echo.Context, err error) error {
	if errors.Is(err, booking.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
}

func writeTransitionErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, booking.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already finalized"})
	case errors.Is(err, booking.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "booking unavailable, try again"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
}
