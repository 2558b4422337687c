package notificator

import (
	"context"
	"errors"
	"fmt"

	"github.com/monere-app/monere/internal/models"
	"github.com/monere-app/monere/internal/provider"
	"github.com/monere-app/monere/pkg/logger"
)

// ErrNoConnectedInstance is returned when the owner has no connected channel
// instance to send through.
var ErrNoConnectedInstance = errors.New("no connected channel instance")

// WhatsappNotificator sends direct messages through the owner's connected
// provider instance.
type WhatsappNotificator struct {
	logger *logger.Logger
	repo   models.Repository
	client models.ChannelClient
}

func NewWhatsappNotificator(logger *logger.Logger, repo models.Repository, client models.ChannelClient) *WhatsappNotificator {
	return &WhatsappNotificator{logger: logger, repo: repo, client: client}
}

// Send resolves the owner's default connected instance and delivers the body
// to the phone number's provider address.
func (w *WhatsappNotificator) Send(ctx context.Context, userID int64, phone, body string) error {
	instance, err := w.repo.GetDefaultConnectedInstance(userID)
	if err != nil {
		return fmt.Errorf("failed to resolve channel instance: %w", err)
	}
	if instance == nil {
		return ErrNoConnectedInstance
	}
	return w.client.SendText(ctx, instance, provider.Address(phone), body)
}
