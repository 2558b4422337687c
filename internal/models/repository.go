package models

import "time"

// Repository is the record store the engine's jobs read from and write to.
type Repository interface {
	// ListRecurringOriginals returns billings with a recurrence kind other
	// than none and no parent reference, across all users.
	ListRecurringOriginals() ([]*Billing, error)
	CreateBilling(billing *Billing) error
	UpdateBillingLastGeneratedDue(billingID int64, due time.Time) error
	// ListPendingBillingsDueOn returns an owner's pending billings whose due
	// date equals the given calendar date exactly.
	ListPendingBillingsDueOn(userID int64, due time.Time) ([]*Billing, error)
	CountOverdueBillings(today time.Time) (int64, error)

	GetCustomer(id int64) (*Customer, error)

	ListActiveTemplates(kind TriggerKind) ([]*MessageTemplate, error)

	CreateMessageHistory(history *MessageHistory) error
	// ListDueScheduledMessages returns scheduled messages whose requested
	// send time has arrived.
	ListDueScheduledMessages(now time.Time) ([]*MessageHistory, error)
	MarkMessageSent(id int64, sentAt time.Time) error
	MarkMessageFailed(id int64) error

	ListChannelInstances() ([]*ChannelInstance, error)
	GetChannelInstance(id int64) (*ChannelInstance, error)
	// GetDefaultConnectedInstance returns the owner's default instance if it
	// is connected, otherwise any connected instance of the owner.
	GetDefaultConnectedInstance(userID int64) (*ChannelInstance, error)
	UpdateChannelInstanceState(id int64, status ChannelStatus, usable bool) error

	CreateCalendarEvent(event *CalendarEvent) error
}
