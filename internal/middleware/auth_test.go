package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourspace/yourspace-api/internal/utils"
)

const testSecret = "unit-test-secret"

func runWith(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "reached")
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, _ := runWith(t, JWTAuth(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
	rec, _ := runWith(t, JWTAuth(testSecret), "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 7, "USER", 5)
	require.NoError(t, err)
	rec, _ := runWith(t, JWTAuth(testSecret), "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenInjectsClaims(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "ADMIN", 5)
	require.NoError(t, err)
	rec, c := runWith(t, JWTAuth(testSecret), "Bearer "+at.Token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reached", rec.Body.String())
	assert.Equal(t, float64(7), c.Get("user_id"))
	assert.Equal(t, "ADMIN", c.Get("role"))
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		role    interface{}
		allowed []string
		want    int
	}{
		{"admin passes admin gate", "ADMIN", []string{"ADMIN"}, http.StatusOK},
		{"user blocked by admin gate", "USER", []string{"ADMIN"}, http.StatusForbidden},
		{"user passes shared gate", "USER", []string{"USER", "ADMIN"}, http.StatusOK},
		{"missing role blocked", nil, []string{"USER"}, http.StatusForbidden},
		{"non-string role blocked", 12, []string{"USER"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}
			h := RequireRole(tc.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			require.NoError(t, h(c))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestCurrentUserIDFormats(t *testing.T) {
	e := echo.New()
	newCtx := func(v interface{}) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if v != nil {
			c.Set("user_id", v)
		}
		return c
	}

	assert.Equal(t, "anon", currentUserID(newCtx(nil)))
	assert.Equal(t, "anon", currentUserID(newCtx("")))
	assert.Equal(t, "42", currentUserID(newCtx(float64(42))))
	assert.Equal(t, "42", currentUserID(newCtx("42")))
	assert.Equal(t, "42", currentUserID(newCtx(uint64(42))))
}
