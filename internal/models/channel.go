package models

import "time"

// ChannelStatus is the locally cached connectivity status of a channel
// instance. It is advisory: the reconciler is its only writer.
type ChannelStatus string

const (
	ChannelCreated      ChannelStatus = "created"
	ChannelConnecting   ChannelStatus = "connecting"
	ChannelConnected    ChannelStatus = "connected"
	ChannelDisconnected ChannelStatus = "disconnected"
	ChannelUnknown      ChannelStatus = "unknown"
)

// ChannelInstance is a registered external messaging channel, one per
// account connection with the provider.
type ChannelInstance struct {
	ID     int64 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserID int64 `json:"user_id" gorm:"column:user_id;index;not null"`
	// Name is the display name shown to the owner.
	Name string `json:"name" gorm:"column:name"`
	// InstanceName is the name the external provider knows this instance by.
	InstanceName string `json:"instance_name" gorm:"column:instance_name;uniqueIndex;not null"`
	// Token authenticates calls to the provider for this instance.
	Token string `json:"-" gorm:"column:token;not null"`
	// Status is the cached connectivity status.
	Status ChannelStatus `json:"status" gorm:"column:status;default:'created'"`
	// Usable caches whether the instance can send messages right now.
	Usable bool `json:"usable" gorm:"column:usable;default:false"`
	// Default marks the owner's preferred instance. At most one per owner.
	Default   bool      `json:"default" gorm:"column:is_default;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}
