package billing

import (
	"context"

	"github.com/stripe/stripe-go/v76"
)

// CheckoutSessionParams describes one hosted checkout session request:
// subscription mode, a single line item of quantity 1.
type CheckoutSessionParams struct {
	PriceID string

	// CustomerEmail prefills the payment page. When empty the field is
	// omitted from the Stripe request entirely, never sent as "".
	CustomerEmail string

	Metadata   map[string]string
	SuccessURL string
	CancelURL  string
	Locale     string
}

// Processor is the capability set the flows need from the payment provider.
// The production implementation is StripeProcessor; tests substitute mocks.
type Processor interface {
	// CreateCheckoutSession creates a hosted checkout session and returns
	// the redirect URL.
	CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (string, error)

	// FindOrCreateCustomer looks a billing customer up by email (first match
	// wins, one page of size 1) and creates one only when the lookup comes
	// back empty. Known limitation: two concurrent requests for a brand-new
	// email can create two customers; the processor keeps both.
	FindOrCreateCustomer(ctx context.Context, email, name, phone string, metadata map[string]string) (string, error)

	// CreateInvoice creates a draft invoice with send_invoice collection and
	// a 30-day due window, returning the invoice id.
	CreateInvoice(ctx context.Context, customerID string, metadata map[string]string) (string, error)

	// AddInvoiceLineItem attaches one line item to a draft invoice.
	// Amount is in minor units.
	AddInvoiceLineItem(ctx context.Context, customerID, invoiceID string, amount int64, currency, description string) error

	// FinalizeInvoice moves the invoice out of draft. Must be called before
	// SendInvoice.
	FinalizeInvoice(ctx context.Context, invoiceID string) error

	// SendInvoice emails the finalized invoice to the customer
	SendInvoice(ctx context.Context, invoiceID string) error

	// VerifyWebhook checks the signature header against the shared secret
	// and parses the event. The payload must be the raw request bytes; the
	// signature is computed over them exactly.
	VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error)
}
