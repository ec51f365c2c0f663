package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeProcessor implements Processor against the Stripe API. It wraps an
// injectable client handle rather than the package-global stripe.Key, so the
// lifecycle is explicit: constructed once at startup, shared by all requests.
type StripeProcessor struct {
	api           *client.API
	webhookSecret string
}

// NewStripeProcessor creates a Stripe-backed processor. The secret key must
// be non-empty; callers that find no key configured should leave the
// Processor nil so the flows fail with ErrProcessorUnavailable.
func NewStripeProcessor(secretKey, webhookSecret string) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeProcessor{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

// CreateCheckoutSession creates a subscription-mode checkout session with a
// single line item and returns the hosted payment page URL.
func (sp *StripeProcessor) CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		Locale:     stripe.String(p.Locale),
		Metadata:   p.Metadata,
	}
	params.Context = ctx

	// Stripe rejects customer_email:"" — omit the field when absent
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}

	sess, err := sp.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return sess.URL, nil
}

// FindOrCreateCustomer looks up a customer by email (one page, size 1) and
// creates one on an empty result. Not idempotent against races: concurrent
// first-time requests for the same email may create duplicate customers.
func (sp *StripeProcessor) FindOrCreateCustomer(ctx context.Context, email, name, phone string, metadata map[string]string) (string, error) {
	listParams := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	listParams.Limit = stripe.Int64(1)
	listParams.Context = ctx

	iter := sp.api.Customers.List(listParams)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("failed to look up customer: %w", err)
	}

	params := &stripe.CustomerParams{
		Email:    stripe.String(email),
		Name:     stripe.String(name),
		Metadata: metadata,
	}
	params.Context = ctx
	if phone != "" {
		params.Phone = stripe.String(phone)
	}

	cust, err := sp.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}

	return cust.ID, nil
}

// CreateInvoice creates a draft invoice collected by email with 30 days to pay
func (sp *StripeProcessor) CreateInvoice(ctx context.Context, customerID string, metadata map[string]string) (string, error) {
	params := &stripe.InvoiceParams{
		Customer:         stripe.String(customerID),
		CollectionMethod: stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DaysUntilDue:     stripe.Int64(30),
		Metadata:         metadata,
	}
	params.Context = ctx

	inv, err := sp.api.Invoices.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create invoice: %w", err)
	}

	return inv.ID, nil
}

// AddInvoiceLineItem attaches a single line item to a draft invoice
func (sp *StripeProcessor) AddInvoiceLineItem(ctx context.Context, customerID, invoiceID string, amount int64, currency, description string) error {
	params := &stripe.InvoiceItemParams{
		Customer:    stripe.String(customerID),
		Invoice:     stripe.String(invoiceID),
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}
	params.Context = ctx

	if _, err := sp.api.InvoiceItems.New(params); err != nil {
		return fmt.Errorf("failed to add invoice line item: %w", err)
	}

	return nil
}

// FinalizeInvoice finalizes a draft invoice
func (sp *StripeProcessor) FinalizeInvoice(ctx context.Context, invoiceID string) error {
	params := &stripe.InvoiceFinalizeInvoiceParams{}
	params.Context = ctx

	if _, err := sp.api.Invoices.FinalizeInvoice(invoiceID, params); err != nil {
		return fmt.Errorf("failed to finalize invoice: %w", err)
	}

	return nil
}

// SendInvoice emails a finalized invoice to the customer
func (sp *StripeProcessor) SendInvoice(ctx context.Context, invoiceID string) error {
	params := &stripe.InvoiceSendInvoiceParams{}
	params.Context = ctx

	if _, err := sp.api.Invoices.SendInvoice(invoiceID, params); err != nil {
		return fmt.Errorf("failed to send invoice: %w", err)
	}

	return nil
}

// VerifyWebhook verifies the Stripe-Signature header over the raw payload
// bytes and parses the event. The body must not have been re-serialized by
// any middleware; the signature covers the exact bytes Stripe sent.
func (sp *StripeProcessor) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	if sp.webhookSecret == "" {
		return stripe.Event{}, ErrWebhookSecretMissing
	}

	event, err := webhook.ConstructEvent(payload, signatureHeader, sp.webhookSecret)
	if err != nil {
		return stripe.Event{}, &SignatureError{Err: err}
	}

	return event, nil
}
