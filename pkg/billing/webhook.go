package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
)

// EventKind is the closed set of webhook events this service understands.
// New events are added by extending this enum and the dispatch switch, not
// by comparing raw type strings at the call sites.
type EventKind int

const (
	EventUnrecognized EventKind = iota
	EventCheckoutCompleted
	EventInvoicePaid
	EventInvoicePaymentFailed
	EventSubscriptionCancelled
)

func (k EventKind) String() string {
	switch k {
	case EventCheckoutCompleted:
		return "checkout.session.completed"
	case EventInvoicePaid:
		return "invoice.paid"
	case EventInvoicePaymentFailed:
		return "invoice.payment_failed"
	case EventSubscriptionCancelled:
		return "customer.subscription.deleted"
	default:
		return "unrecognized"
	}
}

// kindOf maps Stripe's event type string onto the closed enum. Unknown
// types are tolerated: Stripe adds events over time and sends whatever the
// dashboard endpoint is subscribed to.
func kindOf(eventType string) EventKind {
	switch eventType {
	case "checkout.session.completed":
		return EventCheckoutCompleted
	case "invoice.paid":
		return EventInvoicePaid
	case "invoice.payment_failed":
		return EventInvoicePaymentFailed
	case "customer.subscription.deleted":
		return EventSubscriptionCancelled
	default:
		return EventUnrecognized
	}
}

// HandleWebhook verifies a raw webhook delivery and dispatches the event.
// Handler failures are logged but never returned: once the signature
// verifies, the delivery is acknowledged so Stripe does not redeliver.
//
// Deliveries are processed at most once per attempt with no dedup store;
// Stripe may redeliver on non-2xx responses, and handlers must stay safe to
// re-run until they grow durable side effects.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if s.processor == nil {
		return ErrProcessorUnavailable
	}

	event, err := s.processor.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		return err
	}

	if s.recorder != nil {
		s.recorder.RecordWebhookEvent(string(event.Type))
	}

	if err := s.dispatch(event); err != nil {
		s.log.Error("webhook handler failed", "event_id", event.ID, "event_type", string(event.Type), "error", err)
	}

	return nil
}

func (s *Service) dispatch(event stripe.Event) error {
	// A verified event can still arrive without a data object; the handlers
	// below unmarshal event.Data.Raw, so treat that as a handler failure
	// rather than letting it panic past the acknowledgement.
	if event.Data == nil {
		return fmt.Errorf("event %s (%s) has no data object", event.ID, event.Type)
	}

	switch kindOf(string(event.Type)) {
	case EventCheckoutCompleted:
		return s.handleCheckoutCompleted(event)
	case EventInvoicePaid:
		return s.handleInvoicePaid(event)
	case EventInvoicePaymentFailed:
		return s.handleInvoicePaymentFailed(event)
	case EventSubscriptionCancelled:
		return s.handleSubscriptionCancelled(event)
	case EventUnrecognized:
		s.log.Info("unhandled webhook event type", "event_type", string(event.Type), "event_id", event.ID)
		return nil
	}
	return nil
}

// The handlers below log salient identifiers only. Provisioning,
// confirmation email, and deactivation hooks go here once those systems
// exist.

func (s *Service) handleCheckoutCompleted(event stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}

	s.log.Info("checkout completed",
		"session_id", sess.ID,
		"customer_email", sess.CustomerEmail,
		"plan", sess.Metadata["planId"])
	return nil
}

func (s *Service) handleInvoicePaid(event stripe.Event) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return fmt.Errorf("failed to unmarshal invoice: %w", err)
	}

	s.log.Info("invoice paid",
		"invoice_id", invoice.ID,
		"customer_email", invoice.CustomerEmail,
		"amount_paid", invoice.AmountPaid)
	return nil
}

func (s *Service) handleInvoicePaymentFailed(event stripe.Event) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return fmt.Errorf("failed to unmarshal invoice: %w", err)
	}

	s.log.Warn("invoice payment failed",
		"invoice_id", invoice.ID,
		"customer_email", invoice.CustomerEmail)
	return nil
}

func (s *Service) handleSubscriptionCancelled(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to unmarshal subscription: %w", err)
	}

	s.log.Info("subscription cancelled", "subscription_id", sub.ID)
	return nil
}
