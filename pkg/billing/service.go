// Package billing implements the payment-intake core: hosted checkout
// sessions for card customers, emailed invoices for bank-transfer customers,
// and reconciliation of the asynchronous webhook events Stripe sends back.
//
// Stripe is the system of record. This package keeps no local payment or
// order state; operators reconcile partial failures (e.g. an invoice
// finalized but not sent) from the Stripe dashboard.
package billing

import (
	"context"
	"fmt"

	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/logger"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/models"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/plans"
)

const (
	checkoutLocale  = "ja"
	invoiceCurrency = "jpy"
)

// Recorder counts billing events for observability.
// *metrics.Metrics satisfies it.
type Recorder interface {
	RecordCheckoutSession(plan string)
	RecordInvoiceIssued(plan string)
	RecordWebhookEvent(eventType string)
}

// Service orchestrates the checkout and invoice flows
type Service struct {
	processor   Processor
	catalog     *plans.Catalog
	frontendURL string
	log         logger.Logger
	recorder    Recorder
}

// NewService creates the billing service. processor may be nil when no
// Stripe credentials are configured; every flow then fails with
// ErrProcessorUnavailable instead of panicking at call time.
func NewService(processor Processor, catalog *plans.Catalog, frontendURL string, log logger.Logger) *Service {
	return &Service{
		processor:   processor,
		catalog:     catalog,
		frontendURL: frontendURL,
		log:         log,
	}
}

// WithRecorder attaches a metrics recorder. Optional; a nil recorder means
// no counters are kept.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// resolvePlan validates the plan id and its price configuration.
// An unknown id is a user error; a known plan without a price ID is a
// deployment defect and is logged at elevated severity.
func (s *Service) resolvePlan(planID string) (plans.Plan, error) {
	plan, ok := s.catalog.Lookup(planID)
	if !ok {
		return plans.Plan{}, fmt.Errorf("%w: %s", ErrInvalidPlan, planID)
	}

	if !plan.Configured() {
		s.log.Error("plan has no Stripe price ID, check STRIPE_PRICE_* env", "plan", planID)
		return plans.Plan{}, fmt.Errorf("%w: %s", ErrPlanNotConfigured, planID)
	}

	return plan, nil
}

// CreateCheckoutSession validates the requested plan and creates a hosted
// checkout session, returning the URL to redirect the customer's browser to.
func (s *Service) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (string, error) {
	// Plan validation comes first: an invalid plan is the caller's mistake
	// and stays a 400-class error even when Stripe was never configured.
	plan, err := s.resolvePlan(req.PlanID)
	if err != nil {
		return "", err
	}

	if s.processor == nil {
		return "", ErrProcessorUnavailable
	}

	metadata := newMetadata().
		with("planId", plan.ID).
		withOptional("companyName", req.CompanyName).
		withOptional("contactName", req.ContactName).
		withOptional("phone", req.Phone).
		build()

	url, err := s.processor.CreateCheckoutSession(ctx, CheckoutSessionParams{
		PriceID:       plan.PriceID,
		CustomerEmail: req.Email,
		Metadata:      metadata,
		SuccessURL:    s.frontendURL + "/payment/success.html?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.frontendURL + "/payment/cancel.html",
		Locale:        checkoutLocale,
	})
	if err != nil {
		return "", fmt.Errorf("checkout session creation failed for plan %s: %w", plan.ID, err)
	}

	if s.recorder != nil {
		s.recorder.RecordCheckoutSession(plan.ID)
	}

	return url, nil
}

// CreateInvoice runs the invoice flow: find or create the billing customer,
// create a draft invoice, attach the plan's line item, then finalize and
// send. The five calls are strictly sequential; each needs an id from the
// previous step. A failure mid-chain stops it and surfaces as one generic
// error — a finalized-but-unsent invoice looks the same to the caller as a
// total failure, and is reconciled from the Stripe dashboard.
func (s *Service) CreateInvoice(ctx context.Context, req models.InvoiceRequest) (string, error) {
	if s.processor == nil {
		return "", ErrProcessorUnavailable
	}

	plan, err := s.resolvePlan(req.PlanID)
	if err != nil {
		return "", err
	}

	customerName := fmt.Sprintf("%s - %s", req.CompanyName, req.ContactName)
	customerMetadata := newMetadata().
		with("companyName", req.CompanyName).
		with("contactName", req.ContactName).
		with("planId", plan.ID).
		build()

	customerID, err := s.processor.FindOrCreateCustomer(ctx, req.Email, customerName, req.Phone, customerMetadata)
	if err != nil {
		return "", fmt.Errorf("customer lookup failed: %w", err)
	}

	invoiceMetadata := newMetadata().
		with("planId", plan.ID).
		with("companyName", req.CompanyName).
		with("contactName", req.ContactName).
		build()

	invoiceID, err := s.processor.CreateInvoice(ctx, customerID, invoiceMetadata)
	if err != nil {
		return "", fmt.Errorf("invoice creation failed: %w", err)
	}

	description := fmt.Sprintf("%s - %s（月額・税別）", plan.Name, plan.Description)
	if err := s.processor.AddInvoiceLineItem(ctx, customerID, invoiceID, plan.Amount, invoiceCurrency, description); err != nil {
		return "", fmt.Errorf("invoice line item failed: %w", err)
	}

	if err := s.processor.FinalizeInvoice(ctx, invoiceID); err != nil {
		return "", fmt.Errorf("invoice finalize failed: %w", err)
	}

	if err := s.processor.SendInvoice(ctx, invoiceID); err != nil {
		return "", fmt.Errorf("invoice send failed: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordInvoiceIssued(plan.ID)
	}

	s.log.Info("invoice issued", "invoice_id", invoiceID, "plan", plan.ID, "customer_id", customerID)
	return invoiceID, nil
}
