package recurrence

import (
	"errors"
	"time"

	"github.com/monere-app/monere/internal/models"
)

var (
	// ErrUnsupportedRecurrenceKind is returned for kinds the calculator does
	// not handle, including "none".
	ErrUnsupportedRecurrenceKind = errors.New("unsupported recurrence kind")
	// ErrInvalidInterval is returned for intervals below 1.
	ErrInvalidInterval = errors.New("recurrence interval must be positive")
)

// NextDueDate computes the due date of the occurrence following current.
// Pure and deterministic; the result carries no time component.
func NextDueDate(current time.Time, kind models.RecurrenceKind, interval int) (time.Time, error) {
	if interval <= 0 {
		return time.Time{}, ErrInvalidInterval
	}
	current = models.DateOnly(current)
	switch kind {
	case models.RecurrenceDaily:
		return current.AddDate(0, 0, interval), nil
	case models.RecurrenceWeekly:
		return current.AddDate(0, 0, 7*interval), nil
	case models.RecurrenceMonthly:
		return addMonths(current, interval), nil
	case models.RecurrenceYearly:
		return addMonths(current, 12*interval), nil
	default:
		return time.Time{}, ErrUnsupportedRecurrenceKind
	}
}

// addMonths advances the date by whole calendar months, clamping the day of
// month to the last valid day of the target month (Jan 31 + 1 month lands on
// the last day of February, never on March).
func addMonths(d time.Time, months int) time.Time {
	day := d.Day()
	first := time.Date(d.Year(), d.Month()+time.Month(months), 1, 0, 0, 0, 0, d.Location())
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, d.Location())
}
