package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusCancelled, false},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestBookingStatusOccupies(t *testing.T) {
	assert.True(t, StatusPending.Occupies())
	assert.True(t, StatusConfirmed.Occupies())
	assert.False(t, StatusCancelled.Occupies())
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestStatusAndPaymentValidity(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.False(t, BookingStatus("held").Valid())
	assert.True(t, PaymentOnsite.Valid())
	assert.False(t, PaymentStatus("free").Valid())
}

func TestSlotEffectiveCapacity(t *testing.T) {
	s := Slot{}
	assert.Equal(t, uint32(8), s.EffectiveCapacity(8))

	override := uint32(4)
	s.Capacity = &override
	assert.Equal(t, uint32(4), s.EffectiveCapacity(8))

	zero := uint32(0)
	s.Capacity = &zero
	assert.Equal(t, uint32(8), s.EffectiveCapacity(8), "zero override falls back to space capacity")
}
