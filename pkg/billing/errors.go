package billing

import (
	"errors"
	"fmt"
)

// Sentinel errors used by handlers to pick response codes. Anything not in
// this set is an upstream processor failure and maps to a generic 500.
var (
	// ErrInvalidPlan means the requested plan id is not in the catalog (user error)
	ErrInvalidPlan = errors.New("invalid plan")

	// ErrPlanNotConfigured means the plan exists but has no Stripe price ID.
	// Deployment defect, not a user mistake.
	ErrPlanNotConfigured = errors.New("plan price not configured")

	// ErrProcessorUnavailable means no Stripe client was initialized
	// (STRIPE_SECRET_KEY missing)
	ErrProcessorUnavailable = errors.New("payment processor not configured")

	// ErrWebhookSecretMissing means STRIPE_WEBHOOK_SECRET is not set
	ErrWebhookSecretMissing = errors.New("webhook secret not configured")
)

// SignatureError indicates an inbound webhook failed signature verification.
// The underlying reason is protocol-level detail and safe to return to the
// sender.
type SignatureError struct {
	Err error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("webhook signature verification failed: %v", e.Err)
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}
