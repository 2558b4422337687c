package models

import "time"

// Channel is the transport a message was (or will be) delivered through.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsapp Channel = "whatsapp"
)

// MessageStatus is the outcome status of a message history record.
// sent and failed are terminal; only scheduled records are ever mutated,
// exactly once, by the drainer.
type MessageStatus string

const (
	MessageScheduled MessageStatus = "scheduled"
	MessageSent      MessageStatus = "sent"
	MessageFailed    MessageStatus = "failed"
)

// MessageHistory is an immutable record of one notification attempt.
type MessageHistory struct {
	ID int64 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	// PublicID is a stable correlation identifier exposed outside the store.
	PublicID   string `json:"public_id" gorm:"column:public_id;uniqueIndex;not null"`
	UserID     int64  `json:"user_id" gorm:"column:user_id;index;not null"`
	CustomerID int64  `json:"customer_id" gorm:"column:customer_id;index;not null"`
	// BillingID is set when the message was produced for a billing.
	BillingID *int64 `json:"billing_id" gorm:"column:billing_id;index"`
	// TemplateID is set when the message was rendered from a template.
	TemplateID *int64 `json:"template_id" gorm:"column:template_id"`
	// Recipient is the address the message was (or will be) sent to.
	Recipient string `json:"recipient" gorm:"column:recipient"`
	// Content is the fully rendered message body.
	Content string        `json:"content" gorm:"column:content;type:text"`
	Channel Channel       `json:"channel" gorm:"column:channel"`
	Status  MessageStatus `json:"status" gorm:"column:status;index;not null"`
	// SentAt is set only on successful delivery.
	SentAt *time.Time `json:"sent_at" gorm:"column:sent_at"`
	// ScheduledFor is the requested future send time of a scheduled message.
	ScheduledFor *time.Time `json:"scheduled_for" gorm:"column:scheduled_for;index"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}
