package models

import "time"

// RecurrenceKind classifies how a billing repeats.
type RecurrenceKind string

const (
	RecurrenceNone    RecurrenceKind = "none"
	RecurrenceDaily   RecurrenceKind = "daily"
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
	RecurrenceYearly  RecurrenceKind = "yearly"
)

// BillingStatus is the persisted lifecycle status of a billing.
// "overdue" is intentionally absent: it is derived at read time and never stored.
type BillingStatus string

const (
	BillingPending   BillingStatus = "pending"
	BillingPaid      BillingStatus = "paid"
	BillingCancelled BillingStatus = "cancelled"
)

// Billing represents a single monetary obligation owed by a customer.
type Billing struct {
	// ID is the unique identifier of the billing.
	ID int64 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	// UserID is the owning user of the billing.
	UserID int64 `json:"user_id" gorm:"column:user_id;index;not null"`
	// CustomerID references the customer that owes the amount.
	CustomerID int64 `json:"customer_id" gorm:"column:customer_id;index;not null"`
	// Amount is the monetary amount due.
	Amount float64 `json:"amount" gorm:"column:amount;not null"`
	// Description is a free-text description of the obligation.
	Description string `json:"description" gorm:"column:description"`
	// DueDate is the calendar date the billing is due. No time component.
	DueDate time.Time `json:"due_date" gorm:"column:due_date;type:date;index;not null"`
	// Status is the persisted lifecycle status. Transitions only
	// pending -> paid or pending -> cancelled.
	Status BillingStatus `json:"status" gorm:"column:status;default:'pending';index"`
	// RecurrenceKind is none for one-off billings.
	RecurrenceKind RecurrenceKind `json:"recurrence_kind" gorm:"column:recurrence_kind;default:'none';index"`
	// RecurrenceInterval multiplies the recurrence unit. Always >= 1.
	RecurrenceInterval int `json:"recurrence_interval" gorm:"column:recurrence_interval;default:1"`
	// RecurrenceEndDate, when set, is the last date an occurrence may be due on.
	RecurrenceEndDate *time.Time `json:"recurrence_end_date" gorm:"column:recurrence_end_date;type:date"`
	// ParentBillingID is set only on generated occurrences, never on originals.
	ParentBillingID *int64 `json:"parent_billing_id" gorm:"column:parent_billing_id;index"`
	// PaymentKey is an optional fixed payment-address key for this billing.
	PaymentKey string `json:"payment_key" gorm:"column:payment_key"`
	// LastGeneratedDue records the due date of the most recently generated
	// occurrence of this original, guarding against duplicate generation.
	LastGeneratedDue *time.Time `json:"last_generated_due" gorm:"column:last_generated_due;type:date"`
	// PaidAt is set when the billing is paid.
	PaidAt *time.Time `json:"paid_at" gorm:"column:paid_at"`
	// CreatedAt is when the billing row was created.
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// Overdue reports whether the billing is overdue as of the given day.
// This is the read-time predicate; the value is never persisted.
func (b *Billing) Overdue(today time.Time) bool {
	return b.Status == BillingPending && b.DueDate.Before(DateOnly(today))
}

// DateOnly strips the time component, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
