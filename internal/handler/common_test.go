package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
}

func TestCurrentUserID(t *testing.T) {
	c := newTestContext(t)
	_, ok := currentUserID(c)
	assert.False(t, ok, "no identity in context")

	c.Set("user_id", float64(9)) // how JWT claims decode
	uid, ok := currentUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(9), uid)

	c.Set("user_id", "12")
	uid, ok = currentUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(12), uid)

	c.Set("user_id", "garbage")
	_, ok = currentUserID(c)
	assert.False(t, ok)

	c.Set("user_id", float64(0))
	_, ok = currentUserID(c)
	assert.False(t, ok)
}

func TestParamID(t *testing.T) {
	e := echo.New()
	cases := []struct {
		raw    string
		wantID uint64
		wantOK bool
	}{
		{"17", 17, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(tc.raw)
		id, ok := paramID(c, "id")
		assert.Equal(t, tc.wantOK, ok, "raw=%q", tc.raw)
		if tc.wantOK {
			assert.Equal(t, tc.wantID, id)
		}
	}
}

func TestValidatorRejectsBadDTO(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerReq{Email: "not-an-email", Password: "longenough"})
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	assert.Error(t, v.Validate(&registerReq{Email: "a@b.co", Password: "short"}))
	assert.Error(t, v.Validate(&registerReq{Email: "a@b.co", Password: "longenough", Role: "OWNER"}))
	assert.NoError(t, v.Validate(&registerReq{Email: "a@b.co", Password: "longenough"}))
	assert.NoError(t, v.Validate(&registerReq{Email: "a@b.co", Password: "longenough", Role: "ADMIN"}))

	assert.Error(t, v.Validate(&createBookingReq{}))
	assert.Error(t, v.Validate(&createBookingReq{SeatNumber: 3, PaymentMethod: "cash"}))
	assert.NoError(t, v.Validate(&createBookingReq{SeatNumber: 3, PaymentMethod: "onsite"}))

	assert.Error(t, v.Validate(&spaceReq{Name: "Desk", Type: "garage", Capacity: 4}))
	assert.Error(t, v.Validate(&spaceReq{Name: "Desk", Type: "cubicle", Capacity: 0}))
	assert.NoError(t, v.Validate(&spaceReq{Name: "Desk", Type: "cubicle", Capacity: 4}))
}
