package notificator

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/monere-app/monere/internal/models"
	"github.com/monere-app/monere/internal/provider"
	"github.com/monere-app/monere/internal/template"
	"github.com/monere-app/monere/pkg/logger"
)

var errNoDeliveryAddress = errors.New("customer has no email address or phone number")

// Dispatcher selects (billing, template) pairs whose trigger date is today,
// renders the template and sends the result with email-first channel
// fallback, recording one message history row per attempt.
type Dispatcher struct {
	logger   *logger.Logger
	repo     models.Repository
	email    models.EmailSender
	whatsapp *WhatsappNotificator

	// Now is the clock used to resolve "today". Overridden in tests.
	Now func() time.Time
}

func NewDispatcher(logger *logger.Logger, repo models.Repository, email models.EmailSender, whatsapp *WhatsappNotificator) *Dispatcher {
	return &Dispatcher{
		logger:   logger,
		repo:     repo,
		email:    email,
		whatsapp: whatsapp,
		Now:      time.Now,
	}
}

// RunReminderPass evaluates before_due templates: a billing matches a
// template when it is due exactly today + triggerDays.
func (d *Dispatcher) RunReminderPass() {
	d.runPass(models.TriggerBeforeDue)
}

// RunOverduePass evaluates after_due templates: a billing matches a template
// when it was due exactly today - triggerDays.
func (d *Dispatcher) RunOverduePass() {
	d.runPass(models.TriggerAfterDue)
}

func (d *Dispatcher) runPass(kind models.TriggerKind) {
	today := models.DateOnly(d.Now())
	d.logger.Info("Starting notification pass ", "trigger ", kind, " today ", today.Format("2006-01-02"))

	templates, err := d.repo.ListActiveTemplates(kind)
	if err != nil {
		d.logger.Error("Failed to list active templates ", "trigger ", kind, " error ", err)
		return
	}

	for _, tpl := range templates {
		offset := tpl.TriggerDays
		if kind == models.TriggerAfterDue {
			offset = -offset
		}
		// Exact-date match: billings due precisely on the trigger date, never
		// a range. A missed run means a silently skipped reminder.
		triggerDate := today.AddDate(0, 0, offset)

		billings, err := d.repo.ListPendingBillingsDueOn(tpl.UserID, triggerDate)
		if err != nil {
			d.logger.Error("Failed to list billings for template ", "template ", tpl.ID, " error ", err)
			continue
		}
		for _, billing := range billings {
			tpl, billing := tpl, billing
			d.safeCall(func() { d.dispatch(tpl, billing) }, "dispatch")
		}
	}
	d.logger.Info("Notification pass finished ", "trigger ", kind)
}

func (d *Dispatcher) dispatch(tpl *models.MessageTemplate, billing *models.Billing) {
	customer, err := d.repo.GetCustomer(billing.CustomerID)
	if err != nil {
		d.logger.Error("Failed to get customer ", "customer ", billing.CustomerID, " error ", err)
		return
	}

	content := template.Render(tpl.Body, template.BillingValues(billing, customer))
	channel, recipient, sendErr := d.send(billing.UserID, customer, tpl.Name, content)

	history := &models.MessageHistory{
		PublicID:   uuid.NewString(),
		UserID:     billing.UserID,
		CustomerID: customer.ID,
		BillingID:  &billing.ID,
		TemplateID: &tpl.ID,
		Recipient:  recipient,
		Content:    content,
		Channel:    channel,
		Status:     models.MessageSent,
	}
	if sendErr != nil {
		d.logger.Error("Failed to deliver notification ", "billing ", billing.ID, " template ", tpl.ID, " channel ", channel, " error ", sendErr)
		history.Status = models.MessageFailed
	} else {
		sentAt := d.Now()
		history.SentAt = &sentAt
	}

	if err := d.repo.CreateMessageHistory(history); err != nil {
		d.logger.Error("Failed to record message history ", "billing ", billing.ID, " error ", err)
	}
}

// send attempts email first, falling back to the direct-message channel when
// the customer has no email address or the email send failed. It returns the
// channel actually used (or the last one attempted) and its recipient.
func (d *Dispatcher) send(userID int64, customer *models.Customer, subject, content string) (models.Channel, string, error) {
	var lastErr error

	if customer.Email != "" {
		if err := d.email.Send(customer.Email, subject, content); err == nil {
			return models.ChannelEmail, customer.Email, nil
		} else {
			d.logger.Warn("Email delivery failed, falling back ", "customer ", customer.ID, " error ", err)
			lastErr = err
		}
	}

	if customer.Phone != "" {
		recipient := provider.Address(customer.Phone)
		if err := d.whatsapp.Send(context.Background(), userID, customer.Phone, content); err != nil {
			return models.ChannelWhatsapp, recipient, err
		}
		return models.ChannelWhatsapp, recipient, nil
	}

	if lastErr != nil {
		return models.ChannelEmail, customer.Email, lastErr
	}
	return models.ChannelEmail, "", errNoDeliveryAddress
}

// safeCall runs a function with panic recovery so one bad pair never aborts
// the rest of the pass.
func (d *Dispatcher) safeCall(fn func(), context string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Function panicked",
				"context", context,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}
