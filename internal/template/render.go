package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/monere-app/monere/internal/models"
)

// PaymentKeyNotInformed is substituted when neither the billing nor the
// customer carries a payment-address key.
const PaymentKeyNotInformed = "not informed"

// Render substitutes {token} placeholders in body with the given values.
// Tokens with no matching value are left verbatim.
func Render(body string, values map[string]string) string {
	if len(values) == 0 {
		return body
	}
	pairs := make([]string, 0, len(values)*2)
	for token, value := range values {
		pairs = append(pairs, "{"+token+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(body)
}

// BillingValues builds the placeholder set for a billing/customer pair:
// customer name, formatted amount, localized due date, description and the
// payment key (billing key, then customer key, then "not informed").
func BillingValues(billing *models.Billing, customer *models.Customer) map[string]string {
	return map[string]string{
		"name":        customer.Name,
		"amount":      FormatAmount(billing.Amount),
		"due_date":    FormatDate(billing.DueDate),
		"description": billing.Description,
		"payment_key": PaymentKey(billing.PaymentKey, customer.PaymentKey),
	}
}

// PaymentKey resolves the key to advertise for a billing.
func PaymentKey(billingKey, customerKey string) string {
	if billingKey != "" {
		return billingKey
	}
	if customerKey != "" {
		return customerKey
	}
	return PaymentKeyNotInformed
}

// FormatAmount renders a monetary amount as currency text.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("R$ %.2f", amount)
}

// FormatDate renders a due date as day/month/year.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
