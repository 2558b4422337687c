package models

import "time"

// CalendarEvent is a denormalized calendar entry for a billing's due date,
// created 1:1 with each billing occurrence.
type CalendarEvent struct {
	ID        int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;index;not null"`
	BillingID int64     `json:"billing_id" gorm:"column:billing_id;index;not null"`
	Title     string    `json:"title" gorm:"column:title"`
	StartsAt  time.Time `json:"starts_at" gorm:"column:starts_at;index"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}
