package channel

import (
	"context"
	"time"

	"github.com/monere-app/monere/internal/models"
	"github.com/monere-app/monere/pkg/logger"
)

// Reconciler keeps the cached connectivity status of channel instances in
// sync with the state the provider reports. It is the only writer of the
// cached state.
type Reconciler struct {
	logger *logger.Logger
	repo   models.Repository
	client models.ChannelClient
}

func NewReconciler(logger *logger.Logger, repo models.Repository, client models.ChannelClient) *Reconciler {
	return &Reconciler{logger: logger, repo: repo, client: client}
}

// Run reconciles every known instance once. There are no retries within a
// cycle; the next cycle is the retry.
func (r *Reconciler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	instances, err := r.repo.ListChannelInstances()
	if err != nil {
		r.logger.Error("Failed to list channel instances ", "error ", err)
		return
	}
	for _, instance := range instances {
		r.sync(ctx, instance)
	}
}

// SyncInstance reconciles a single instance on demand and returns it with
// the freshly cached state.
func (r *Reconciler) SyncInstance(ctx context.Context, instanceID int64) (*models.ChannelInstance, error) {
	instance, err := r.repo.GetChannelInstance(instanceID)
	if err != nil {
		return nil, err
	}
	r.sync(ctx, instance)
	return instance, nil
}

func (r *Reconciler) sync(ctx context.Context, instance *models.ChannelInstance) {
	// Any error reaching the provider counts as disconnected.
	status, usable := models.ChannelDisconnected, false

	state, err := r.client.ConnectionState(ctx, instance)
	if err != nil {
		r.logger.Warn("Failed to query connection state, treating as disconnected ", "instance ", instance.InstanceName, " error ", err)
	} else {
		status, usable = mapProviderState(state)
	}

	// Write suppression: skip the update when nothing changed.
	if instance.Status == status && instance.Usable == usable {
		return
	}

	if err := r.repo.UpdateChannelInstanceState(instance.ID, status, usable); err != nil {
		r.logger.Error("Failed to update channel instance state ", "instance ", instance.InstanceName, " error ", err)
		return
	}
	r.logger.Info("Channel instance state updated ", "instance ", instance.InstanceName, " status ", status, " usable ", usable)
	instance.Status = status
	instance.Usable = usable
}

func mapProviderState(state string) (models.ChannelStatus, bool) {
	switch state {
	case "open":
		return models.ChannelConnected, true
	case "connecting":
		return models.ChannelConnecting, false
	case "close":
		return models.ChannelDisconnected, false
	default:
		return models.ChannelUnknown, false
	}
}
