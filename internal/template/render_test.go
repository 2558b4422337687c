package template

import (
	"testing"
	"time"

	"github.com/monere-app/monere/internal/models"
)

func TestRenderSubstitutesKnownTokens(t *testing.T) {
	due := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	billing := &models.Billing{Amount: 150.5, Description: "Monthly plan", DueDate: due, PaymentKey: "key-123"}
	customer := &models.Customer{Name: "Alice", PaymentKey: "customer-key"}

	got := Render("Hi {name}, {description} of {amount} is due {due_date}. Pay to {payment_key}.", BillingValues(billing, customer))
	want := "Hi Alice, Monthly plan of R$ 150.50 is due 10/06/2025. Pay to key-123."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderLeavesUnknownTokensVerbatim(t *testing.T) {
	got := Render("Hello {name}, ref {order_id}", map[string]string{"name": "Bob"})
	if got != "Hello Bob, ref {order_id}" {
		t.Fatalf("unknown token was not left verbatim: %q", got)
	}
}

func TestRenderEmptyValues(t *testing.T) {
	body := "static {text}"
	if got := Render(body, nil); got != body {
		t.Fatalf("got %q, want body unchanged", got)
	}
}

func TestPaymentKeyFallback(t *testing.T) {
	if got := PaymentKey("billing-key", "customer-key"); got != "billing-key" {
		t.Fatalf("billing key should win, got %q", got)
	}
	if got := PaymentKey("", "customer-key"); got != "customer-key" {
		t.Fatalf("customer key should be the fallback, got %q", got)
	}
	if got := PaymentKey("", ""); got != PaymentKeyNotInformed {
		t.Fatalf("got %q, want %q", got, PaymentKeyNotInformed)
	}
}
