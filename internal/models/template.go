package models

import "time"

// TriggerKind classifies when a message template fires.
type TriggerKind string

const (
	// TriggerManual templates are only ever sent by direct user action.
	TriggerManual TriggerKind = "manual"
	// TriggerBeforeDue templates fire TriggerDays before a billing's due date.
	TriggerBeforeDue TriggerKind = "before_due"
	// TriggerAfterDue templates fire TriggerDays after a billing's due date.
	TriggerAfterDue TriggerKind = "after_due"
)

// MessageTemplate is a reusable notification script with {token} placeholders.
type MessageTemplate struct {
	ID     int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserID int64  `json:"user_id" gorm:"column:user_id;index;not null"`
	Name   string `json:"name" gorm:"column:name;not null"`
	// Body holds the message text with {name}-style placeholder tokens.
	Body        string      `json:"body" gorm:"column:body;type:text;not null"`
	TriggerKind TriggerKind `json:"trigger_kind" gorm:"column:trigger_kind;default:'manual';index"`
	// TriggerDays is the day offset from the due date. Ignored for manual templates.
	TriggerDays int       `json:"trigger_days" gorm:"column:trigger_days;default:0"`
	Active      bool      `json:"active" gorm:"column:active;default:true;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}
