package handler

import (
	"errors"
	"net/http"
	"supermercado-api/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// writeError maps service errors onto HTTP responses. Validation failures
// carry their field so the storefront can highlight the offending input.
func writeError(c echo.Context, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, map[string]string{ve.Field: ve.Message})
	}

	var te *service.TransientError
	if errors.As(err, &te) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"detail": "temporary failure, please retry",
		})
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "not found"})
	}

	return err
}
