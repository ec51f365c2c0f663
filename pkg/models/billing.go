package models

// CheckoutRequest is the payload for creating a hosted checkout session.
// Only the plan is mandatory; contact fields are forwarded to Stripe as
// metadata when present.
type CheckoutRequest struct {
	PlanID      string `json:"planId" validate:"required"`
	CompanyName string `json:"companyName" validate:"omitempty,max=200"`
	ContactName string `json:"contactName" validate:"omitempty,max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,min=8,max=20"`
}

// InvoiceRequest is the payload for bank-transfer customers. The billing
// customer is keyed by email, so the contact fields are required here.
type InvoiceRequest struct {
	PlanID      string `json:"planId" validate:"required"`
	CompanyName string `json:"companyName" validate:"required,max=200"`
	ContactName string `json:"contactName" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=8,max=20"`
}

// CheckoutResponse carries the Stripe-hosted redirect URL
type CheckoutResponse struct {
	URL string `json:"url"`
}

// InvoiceResponse confirms that an invoice was issued and sent
type InvoiceResponse struct {
	Message   string `json:"message"`
	InvoiceID string `json:"invoiceId"`
}

// WebhookAckResponse acknowledges a verified webhook delivery
type WebhookAckResponse struct {
	Received bool `json:"received"`
}
