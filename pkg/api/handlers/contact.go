package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apierrors "github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/api/errors"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/contact"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/models"
)

const (
	msgContactReceived = "お問い合わせを受け付けました。確認メールをお送りしましたのでご確認ください。"
	msgContactFailed   = "お問い合わせの送信に失敗しました。しばらく経ってからお試しください。"
)

// ContactHandler handles contact-form submissions
type ContactHandler struct {
	contactService *contact.Service
	validator      *validator.Validate
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *contact.Service) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		validator:      validator.New(),
	}
}

// Submit relays a contact-form submission by email
func (h *ContactHandler) Submit(c echo.Context) error {
	var req models.ContactRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	if err := h.contactService.Submit(req); err != nil {
		return apierrors.InternalError(c, err, msgContactFailed)
	}

	return c.JSON(http.StatusOK, models.ContactResponse{Message: msgContactReceived})
}
