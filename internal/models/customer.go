package models

import "time"

// Customer is the party a billing is owed by and messages are delivered to.
type Customer struct {
	ID     int64 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserID int64 `json:"user_id" gorm:"column:user_id;index;not null"`
	// Name is substituted into message templates.
	Name string `json:"name" gorm:"column:name;not null"`
	// Email is the preferred delivery address. May be empty.
	Email string `json:"email" gorm:"column:email"`
	// Phone is the direct-message recipient identifier. May be empty.
	Phone string `json:"phone" gorm:"column:phone"`
	// PaymentKey is the customer's own stored payment-address key, used as a
	// fallback when a billing carries none.
	PaymentKey string    `json:"payment_key" gorm:"column:payment_key"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}
