package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apierrors "github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/api/errors"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/billing"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/models"
)

// User-facing messages. Internal detail never reaches the client.
const (
	msgInvalidPlan          = "無効なプランです"
	msgPriceNotConfigured   = "Stripe Price IDが設定されていません。管理者にお問い合わせください。"
	msgProcessorUnavailable = "決済サービスが設定されていません。"
	msgCheckoutFailed       = "決済セッションの作成に失敗しました。しばらく経ってからお試しください。"
	msgInvoiceFailed        = "請求書の作成に失敗しました。しばらく経ってからお試しください。"
	msgInvoiceSent          = "請求書をメールでお送りしました。ご確認ください。"
)

// BillingHandler handles the checkout and invoice endpoints
type BillingHandler struct {
	billingService *billing.Service
	validator      *validator.Validate
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *billing.Service) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		validator:      validator.New(),
	}
}

// CreateCheckout creates a Stripe-hosted checkout session for the requested
// plan and returns the redirect URL. The caller redirects the browser.
func (h *BillingHandler) CreateCheckout(c echo.Context) error {
	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	url, err := h.billingService.CreateCheckoutSession(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvalidPlan):
			return apierrors.BadRequest(c, msgInvalidPlan)
		case errors.Is(err, billing.ErrPlanNotConfigured):
			return apierrors.MisconfigurationError(c, err, msgPriceNotConfigured)
		case errors.Is(err, billing.ErrProcessorUnavailable):
			return apierrors.ServiceUnavailableError(c, err, msgProcessorUnavailable)
		default:
			return apierrors.InternalError(c, err, msgCheckoutFailed)
		}
	}

	return c.JSON(http.StatusOK, models.CheckoutResponse{URL: url})
}

// CreateInvoice issues a Stripe invoice (bank-transfer customers) and emails
// it to the requester.
func (h *BillingHandler) CreateInvoice(c echo.Context) error {
	var req models.InvoiceRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	invoiceID, err := h.billingService.CreateInvoice(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrProcessorUnavailable):
			return apierrors.ServiceUnavailableError(c, err, msgProcessorUnavailable)
		case errors.Is(err, billing.ErrInvalidPlan):
			return apierrors.BadRequest(c, msgInvalidPlan)
		case errors.Is(err, billing.ErrPlanNotConfigured):
			return apierrors.MisconfigurationError(c, err, msgPriceNotConfigured)
		default:
			return apierrors.InternalError(c, err, msgInvoiceFailed)
		}
	}

	return c.JSON(http.StatusOK, models.InvoiceResponse{
		Message:   msgInvoiceSent,
		InvoiceID: invoiceID,
	})
}
