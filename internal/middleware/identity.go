package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated user's identity from the
// context as a string, for use in rate-limit bucket keys. Unauthenticated
// requests share the "anon" identity and are limited per IP instead.
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		// JWT numeric claims decode as float64.
		return fmt.Sprintf("%.0f", t)
	case uint64:
		return fmt.Sprintf("%d", t)
	}
	return "anon"
}
