// Package errors maps internal failures onto JSON responses. The rule:
// full detail is logged server-side, the client sees only the safe message.
package errors

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/models"
)

// ValidationError returns a generic validation error without exposing internal details
func ValidationError(c echo.Context, err error) error {
	log.Printf("[VALIDATION ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: "入力内容に誤りがあります。ご確認のうえ再度お試しください。",
	})
}

// BadRequest returns a 400 with a message that is safe to expose (user error)
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: message,
	})
}

// MisconfigurationError returns a 500 for deployment defects (missing price
// IDs, missing secrets). Logged at elevated severity: this is an operator
// problem, not a user mistake.
func MisconfigurationError(c echo.Context, err error, message string) error {
	log.Printf("[MISCONFIGURATION] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: message,
	})
}

// ServiceUnavailableError returns a 503 when the payment processor was never
// initialized, so operators can tell "not configured" apart from a bug.
func ServiceUnavailableError(c echo.Context, err error, message string) error {
	log.Printf("[SERVICE UNAVAILABLE] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
		Error: message,
	})
}

// PayloadTooLarge returns a 413 for bodies over the route's size limit,
// kept separate from signature failures so oversized deliveries are not
// misreported as tampered.
func PayloadTooLarge(c echo.Context, message string) error {
	log.Printf("[PAYLOAD TOO LARGE] Path: %s", c.Request().URL.Path)

	return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
		Error: message,
	})
}

// InternalError logs the real error and returns a generic message
func InternalError(c echo.Context, err error, message string) error {
	log.Printf("[INTERNAL ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: message,
	})
}

// WebhookSignatureError returns a 400 including the verification failure
// reason. The reason is protocol-level detail, not sensitive.
func WebhookSignatureError(c echo.Context, err error) error {
	log.Printf("[WEBHOOK SIGNATURE] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: "Webhook Error: " + err.Error(),
	})
}
