package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to Echo's Validator interface.
// Handlers call c.Validate(dto) after binding; tag violations surface as
// 400 responses with the validator's message.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a Validator ready to be assigned to echo.Echo.Validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
