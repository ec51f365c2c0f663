package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/api/errors"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/billing"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/models"
)

// maxWebhookBodySize caps webhook payloads at 1 MB, well above the largest
// event Stripe sends (invoices with many embedded lines run to a few hundred
// KB). The limit protects against abuse on an unauthenticated route; an
// over-limit body is rejected as 413 rather than silently truncated, which
// would surface as a bogus signature failure on every redelivery.
const maxWebhookBodySize = 1 << 20

// WebhookHandler receives asynchronous payment events from Stripe.
// The route is unauthenticated; security is the Stripe-Signature check over
// the raw body, so this handler must be the first and only reader of it.
type WebhookHandler struct {
	billingService *billing.Service
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(billingService *billing.Service) *WebhookHandler {
	return &WebhookHandler{billingService: billingService}
}

// HandleStripe verifies and dispatches one webhook delivery. Once the
// signature verifies the delivery is acknowledged with 200 regardless of
// handler outcome, so Stripe does not redeliver on our own bugs.
func (h *WebhookHandler) HandleStripe(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBodySize+1))
	if err != nil {
		return apierrors.BadRequest(c, "failed to read request body")
	}
	if len(body) > maxWebhookBodySize {
		return apierrors.PayloadTooLarge(c, "webhook payload too large")
	}

	signature := c.Request().Header.Get("Stripe-Signature")

	err = h.billingService.HandleWebhook(c.Request().Context(), body, signature)
	if err != nil {
		var sigErr *billing.SignatureError
		switch {
		case errors.Is(err, billing.ErrProcessorUnavailable):
			return apierrors.ServiceUnavailableError(c, err, "Stripe not configured")
		case errors.Is(err, billing.ErrWebhookSecretMissing):
			return apierrors.MisconfigurationError(c, err, "Webhook secret not configured")
		case errors.As(err, &sigErr):
			return apierrors.WebhookSignatureError(c, sigErr.Unwrap())
		default:
			return apierrors.InternalError(c, err, "webhook processing failed")
		}
	}

	return c.JSON(http.StatusOK, models.WebhookAckResponse{Received: true})
}
