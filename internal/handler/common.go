// Package handler implements the HTTP endpoints of the booking API.
package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's ID from the context.
// JWTAuth stores the raw "sub" claim, which the JWT library decodes as a
// float64 (or occasionally a numeric string). ok is false when no valid
// identity is present.
func currentUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), v > 0
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			return n, true
		}
	case uint64:
		return v, v > 0
	}
	return 0, false
}

// paramID parses a numeric path parameter. A zero or malformed value
// reports ok=false; callers respond with 400.
func paramID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
