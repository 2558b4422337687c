package notificator

import (
	"context"
	"time"

	"github.com/monere-app/monere/internal/models"
	"github.com/monere-app/monere/pkg/logger"
)

// Drainer sends scheduled messages whose requested send time has arrived.
// The scheduled -> sent/failed status transition is the dedup mechanism: a
// record that left "scheduled" is never picked up again.
type Drainer struct {
	logger *logger.Logger
	repo   models.Repository
	client models.ChannelClient

	Now func() time.Time
}

func NewDrainer(logger *logger.Logger, repo models.Repository, client models.ChannelClient) *Drainer {
	return &Drainer{logger: logger, repo: repo, client: client, Now: time.Now}
}

// Drain runs one cycle over all due scheduled messages. Messages are
// processed independently; a failure in one does not block the others.
func (d *Drainer) Drain() {
	ctx := context.Background()
	messages, err := d.repo.ListDueScheduledMessages(d.Now())
	if err != nil {
		d.logger.Error("Failed to list due scheduled messages ", "error ", err)
		return
	}
	if len(messages) == 0 {
		return
	}
	d.logger.Info("Draining scheduled messages ", "count ", len(messages))

	for _, msg := range messages {
		instance, err := d.repo.GetDefaultConnectedInstance(msg.UserID)
		if err != nil {
			d.logger.Error("Failed to resolve channel instance ", "message ", msg.ID, " error ", err)
			continue
		}
		if instance == nil {
			d.logger.Warn("No connected channel instance, failing message ", "message ", msg.ID, " user ", msg.UserID)
			d.markFailed(msg.ID)
			continue
		}

		if err := d.client.SendText(ctx, instance, msg.Recipient, msg.Content); err != nil {
			d.logger.Error("Failed to send scheduled message ", "message ", msg.ID, " error ", err)
			d.markFailed(msg.ID)
			continue
		}

		if err := d.repo.MarkMessageSent(msg.ID, d.Now()); err != nil {
			d.logger.Error("Failed to mark message sent ", "message ", msg.ID, " error ", err)
		}
	}
}

func (d *Drainer) markFailed(id int64) {
	if err := d.repo.MarkMessageFailed(id); err != nil {
		d.logger.Error("Failed to mark message failed ", "message ", id, " error ", err)
	}
}
