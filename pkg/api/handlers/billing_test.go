package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/billing"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/logger"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/plans"
)

// mockProcessor implements billing.Processor for handler tests
type mockProcessor struct {
	CreateCheckoutSessionFunc func(ctx context.Context, p billing.CheckoutSessionParams) (string, error)
	FindOrCreateCustomerFunc  func(ctx context.Context, email, name, phone string, metadata map[string]string) (string, error)
	CreateInvoiceFunc         func(ctx context.Context, customerID string, metadata map[string]string) (string, error)
	VerifyWebhookFunc         func(payload []byte, signatureHeader string) (stripe.Event, error)

	calls int
}

func (m *mockProcessor) CreateCheckoutSession(ctx context.Context, p billing.CheckoutSessionParams) (string, error) {
	m.calls++
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, p)
	}
	return "https://checkout.stripe.com/c/pay/cs_test", nil
}

func (m *mockProcessor) FindOrCreateCustomer(ctx context.Context, email, name, phone string, metadata map[string]string) (string, error) {
	m.calls++
	if m.FindOrCreateCustomerFunc != nil {
		return m.FindOrCreateCustomerFunc(ctx, email, name, phone, metadata)
	}
	return "cus_test", nil
}

func (m *mockProcessor) CreateInvoice(ctx context.Context, customerID string, metadata map[string]string) (string, error) {
	m.calls++
	if m.CreateInvoiceFunc != nil {
		return m.CreateInvoiceFunc(ctx, customerID, metadata)
	}
	return "in_test", nil
}

func (m *mockProcessor) AddInvoiceLineItem(ctx context.Context, customerID, invoiceID string, amount int64, currency, description string) error {
	m.calls++
	return nil
}

func (m *mockProcessor) FinalizeInvoice(ctx context.Context, invoiceID string) error {
	m.calls++
	return nil
}

func (m *mockProcessor) SendInvoice(ctx context.Context, invoiceID string) error {
	m.calls++
	return nil
}

func (m *mockProcessor) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	m.calls++
	if m.VerifyWebhookFunc != nil {
		return m.VerifyWebhookFunc(payload, signatureHeader)
	}
	return stripe.Event{}, nil
}

func newBillingService(processor billing.Processor) *billing.Service {
	catalog := plans.NewCatalog("price_light", "price_standard", "price_premium")
	return billing.NewService(processor, catalog, "https://otasukeai.com", logger.New("error", "text"))
}

func postJSON(t *testing.T, handler echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler(c))
	return rec
}

func TestCreateCheckout_Success(t *testing.T) {
	processor := &mockProcessor{
		CreateCheckoutSessionFunc: func(ctx context.Context, p billing.CheckoutSessionParams) (string, error) {
			return "https://pay.example/sess_1", nil
		},
	}
	h := NewBillingHandler(newBillingService(processor))

	rec := postJSON(t, h.CreateCheckout, "/api/checkout", `{"planId":"standard","email":"a@b.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://pay.example/sess_1", resp["url"])
}

func TestCreateCheckout_InvalidPlanWithoutProcessor(t *testing.T) {
	h := NewBillingHandler(newBillingService(nil))

	rec := postJSON(t, h.CreateCheckout, "/api/checkout", `{"planId":"enterprise"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code, "a bad plan id is the caller's error even on an unconfigured deployment")
	assert.Contains(t, rec.Body.String(), "無効なプランです")
}

func TestCreateCheckout_InvalidPlan(t *testing.T) {
	processor := &mockProcessor{}
	h := NewBillingHandler(newBillingService(processor))

	rec := postJSON(t, h.CreateCheckout, "/api/checkout", `{"planId":"enterprise"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "無効なプランです", resp["error"])
	assert.Zero(t, processor.calls, "invalid plan must make zero processor calls")
}

func TestCreateCheckout_UnconfiguredPrice(t *testing.T) {
	processor := &mockProcessor{}
	catalog := plans.NewCatalog("price_light", "", "price_premium")
	svc := billing.NewService(processor, catalog, "https://otasukeai.com", logger.New("error", "text"))
	h := NewBillingHandler(svc)

	rec := postJSON(t, h.CreateCheckout, "/api/checkout", `{"planId":"standard"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "Stripe Price ID")
	assert.Zero(t, processor.calls)
}

func TestCreateCheckout_ProcessorFailureIsGeneric(t *testing.T) {
	processor := &mockProcessor{
		CreateCheckoutSessionFunc: func(ctx context.Context, p billing.CheckoutSessionParams) (string, error) {
			return "", errors.New("stripe: invalid api key sk_live_secret")
		},
	}
	h := NewBillingHandler(newBillingService(processor))

	rec := postJSON(t, h.CreateCheckout, "/api/checkout", `{"planId":"light"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// processor error detail stays server-side
	assert.NotContains(t, rec.Body.String(), "sk_live_secret")
	assert.Contains(t, rec.Body.String(), "決済セッションの作成に失敗しました")
}

func TestCreateCheckout_MissingPlanID(t *testing.T) {
	h := NewBillingHandler(newBillingService(&mockProcessor{}))

	rec := postJSON(t, h.CreateCheckout, "/api/checkout", `{"email":"a@b.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateInvoice_Success(t *testing.T) {
	processor := &mockProcessor{
		CreateInvoiceFunc: func(ctx context.Context, customerID string, metadata map[string]string) (string, error) {
			return "inv_42", nil
		},
	}
	h := NewBillingHandler(newBillingService(processor))

	rec := postJSON(t, h.CreateInvoice, "/api/invoice",
		`{"planId":"premium","companyName":"Acme","contactName":"Jane","email":"j@acme.com","phone":"03-1234-5678"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "inv_42", resp["invoiceId"])
	assert.NotEmpty(t, resp["message"])
}

func TestCreateInvoice_ProcessorUnavailable(t *testing.T) {
	h := NewBillingHandler(newBillingService(nil))

	rec := postJSON(t, h.CreateInvoice, "/api/invoice",
		`{"planId":"light","companyName":"Acme","contactName":"Jane","email":"j@acme.com","phone":"03-1234-5678"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "決済サービスが設定されていません")
}

func TestCreateInvoice_InvalidPlan(t *testing.T) {
	processor := &mockProcessor{}
	h := NewBillingHandler(newBillingService(processor))

	rec := postJSON(t, h.CreateInvoice, "/api/invoice",
		`{"planId":"free","companyName":"Acme","contactName":"Jane","email":"j@acme.com","phone":"03-1234-5678"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, processor.calls)
}

func TestCreateInvoice_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"planId":"light","companyName":"Acme","contactName":"Jane","phone":"03-1234-5678"}`},
		{name: "missing contact name", body: `{"planId":"light","companyName":"Acme","email":"j@acme.com","phone":"03-1234-5678"}`},
		{name: "missing company", body: `{"planId":"light","contactName":"Jane","email":"j@acme.com","phone":"03-1234-5678"}`},
		{name: "bad email", body: `{"planId":"light","companyName":"Acme","contactName":"Jane","email":"not-an-email","phone":"03-1234-5678"}`},
	}

	processor := &mockProcessor{}
	h := NewBillingHandler(newBillingService(processor))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.CreateInvoice, "/api/invoice", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, processor.calls)
		})
	}
}
