package billing

import (
	"context"

	"github.com/stripe/stripe-go/v76"
)

// MockProcessor is a mock implementation of Processor for testing.
// It records the order of calls and delegates to the XxxFunc overrides
// when set.
type MockProcessor struct {
	CreateCheckoutSessionFunc func(ctx context.Context, p CheckoutSessionParams) (string, error)
	FindOrCreateCustomerFunc  func(ctx context.Context, email, name, phone string, metadata map[string]string) (string, error)
	CreateInvoiceFunc         func(ctx context.Context, customerID string, metadata map[string]string) (string, error)
	AddInvoiceLineItemFunc    func(ctx context.Context, customerID, invoiceID string, amount int64, currency, description string) error
	FinalizeInvoiceFunc       func(ctx context.Context, invoiceID string) error
	SendInvoiceFunc           func(ctx context.Context, invoiceID string) error
	VerifyWebhookFunc         func(payload []byte, signatureHeader string) (stripe.Event, error)

	Calls []string
}

func (m *MockProcessor) CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (string, error) {
	m.Calls = append(m.Calls, "CreateCheckoutSession")
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, p)
	}
	return "https://checkout.stripe.com/c/pay/cs_test", nil
}

func (m *MockProcessor) FindOrCreateCustomer(ctx context.Context, email, name, phone string, metadata map[string]string) (string, error) {
	m.Calls = append(m.Calls, "FindOrCreateCustomer")
	if m.FindOrCreateCustomerFunc != nil {
		return m.FindOrCreateCustomerFunc(ctx, email, name, phone, metadata)
	}
	return "cus_test", nil
}

func (m *MockProcessor) CreateInvoice(ctx context.Context, customerID string, metadata map[string]string) (string, error) {
	m.Calls = append(m.Calls, "CreateInvoice")
	if m.CreateInvoiceFunc != nil {
		return m.CreateInvoiceFunc(ctx, customerID, metadata)
	}
	return "in_test", nil
}

func (m *MockProcessor) AddInvoiceLineItem(ctx context.Context, customerID, invoiceID string, amount int64, currency, description string) error {
	m.Calls = append(m.Calls, "AddInvoiceLineItem")
	if m.AddInvoiceLineItemFunc != nil {
		return m.AddInvoiceLineItemFunc(ctx, customerID, invoiceID, amount, currency, description)
	}
	return nil
}

func (m *MockProcessor) FinalizeInvoice(ctx context.Context, invoiceID string) error {
	m.Calls = append(m.Calls, "FinalizeInvoice")
	if m.FinalizeInvoiceFunc != nil {
		return m.FinalizeInvoiceFunc(ctx, invoiceID)
	}
	return nil
}

func (m *MockProcessor) SendInvoice(ctx context.Context, invoiceID string) error {
	m.Calls = append(m.Calls, "SendInvoice")
	if m.SendInvoiceFunc != nil {
		return m.SendInvoiceFunc(ctx, invoiceID)
	}
	return nil
}

func (m *MockProcessor) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	m.Calls = append(m.Calls, "VerifyWebhook")
	if m.VerifyWebhookFunc != nil {
		return m.VerifyWebhookFunc(payload, signatureHeader)
	}
	return stripe.Event{}, nil
}
