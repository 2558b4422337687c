package billing

import (
	"fmt"
	"time"

	"github.com/monere-app/monere/internal/models"
	"github.com/monere-app/monere/internal/recurrence"
	"github.com/monere-app/monere/internal/template"
	"github.com/monere-app/monere/pkg/logger"
)

// calendarEventHour is the fixed time of day calendar entries are placed at.
const calendarEventHour = 9

// Generator creates the next occurrence of recurring billings. Only
// originals drive generation: a generated occurrence never spawns further
// occurrences.
type Generator struct {
	logger *logger.Logger
	repo   models.Repository

	Now func() time.Time
}

func NewGenerator(logger *logger.Logger, repo models.Repository) *Generator {
	return &Generator{logger: logger, repo: repo, Now: time.Now}
}

// Run walks all recurring originals once. A failure on one billing is logged
// and does not abort the others.
func (g *Generator) Run() {
	today := models.DateOnly(g.Now())
	originals, err := g.repo.ListRecurringOriginals()
	if err != nil {
		g.logger.Error("Failed to list recurring originals ", "error ", err)
		return
	}

	for _, original := range originals {
		if err := g.generate(original, today); err != nil {
			g.logger.Error("Failed to generate occurrence ", "billing ", original.ID, " error ", err)
		}
	}
}

func (g *Generator) generate(original *models.Billing, today time.Time) error {
	// Only act once the current occurrence's due date has arrived or passed.
	if models.DateOnly(original.DueDate).After(today) {
		return nil
	}

	next, err := recurrence.NextDueDate(original.DueDate, original.RecurrenceKind, original.RecurrenceInterval)
	if err != nil {
		return fmt.Errorf("failed to compute next due date: %w", err)
	}

	if original.RecurrenceEndDate != nil && next.After(models.DateOnly(*original.RecurrenceEndDate)) {
		g.logger.Info("Recurrence end date reached, no occurrence created ", "billing ", original.ID, " next ", next.Format("2006-01-02"))
		return nil
	}

	// Guard against duplicate generation when the original's due date stays
	// in the past across runs.
	if original.LastGeneratedDue != nil && !next.After(models.DateOnly(*original.LastGeneratedDue)) {
		g.logger.Debug("Occurrence already generated ", "billing ", original.ID, " due ", next.Format("2006-01-02"))
		return nil
	}

	occurrence := &models.Billing{
		UserID:             original.UserID,
		CustomerID:         original.CustomerID,
		Amount:             original.Amount,
		Description:        original.Description,
		DueDate:            next,
		Status:             models.BillingPending,
		RecurrenceKind:     original.RecurrenceKind,
		RecurrenceInterval: original.RecurrenceInterval,
		RecurrenceEndDate:  original.RecurrenceEndDate,
		ParentBillingID:    &original.ID,
		PaymentKey:         original.PaymentKey,
	}
	if err := g.repo.CreateBilling(occurrence); err != nil {
		return fmt.Errorf("failed to create occurrence: %w", err)
	}

	event := &models.CalendarEvent{
		UserID:    occurrence.UserID,
		BillingID: occurrence.ID,
		Title:     fmt.Sprintf("%s (%s)", occurrence.Description, template.FormatAmount(occurrence.Amount)),
		StartsAt:  next.Add(calendarEventHour * time.Hour),
	}
	if err := g.repo.CreateCalendarEvent(event); err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}

	if err := g.repo.UpdateBillingLastGeneratedDue(original.ID, next); err != nil {
		return fmt.Errorf("failed to record last generated due date: %w", err)
	}

	g.logger.Info("Generated recurring occurrence ", "original ", original.ID, " occurrence ", occurrence.ID, " due ", next.Format("2006-01-02"))
	return nil
}

// RecomputeOverdue logs the current overdue billing count. Overdue is a
// read-time predicate (pending with a past due date); nothing is persisted.
func (g *Generator) RecomputeOverdue() {
	count, err := g.repo.CountOverdueBillings(g.Now())
	if err != nil {
		g.logger.Error("Failed to count overdue billings ", "error ", err)
		return
	}
	g.logger.Info("Overdue billings recomputed ", "count ", count)
}
