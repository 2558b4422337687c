package models

import "context"

// ChannelClient is the capability exposed by the external direct-message
// provider: query an instance's connection state and send plain text.
type ChannelClient interface {
	// ConnectionState returns the provider's raw connection state for the
	// instance ("open", "connecting", "close", ...).
	ConnectionState(ctx context.Context, instance *ChannelInstance) (string, error)
	SendText(ctx context.Context, instance *ChannelInstance, recipient, body string) error
}

// EmailSender delivers a plain-text email.
type EmailSender interface {
	Send(to, subject, body string) error
}

// JobRegistry reports the activation state of the orchestrator's named jobs.
type JobRegistry interface {
	Jobs() map[string]bool
}

// ChannelSyncer reconciles a single channel instance on demand.
type ChannelSyncer interface {
	SyncInstance(ctx context.Context, instanceID int64) (*ChannelInstance, error)
}
