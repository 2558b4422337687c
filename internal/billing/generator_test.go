package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/monere-app/monere/internal/models"
	"github.com/monere-app/monere/pkg/logger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type generatorRepoStub struct {
	models.Repository

	originals []*models.Billing
	createErr error

	created       []*models.Billing
	events        []*models.CalendarEvent
	lastGenerated map[int64]time.Time
	overdueCount  int64
}

func (s *generatorRepoStub) ListRecurringOriginals() ([]*models.Billing, error) {
	return s.originals, nil
}

func (s *generatorRepoStub) CreateBilling(billing *models.Billing) error {
	if s.createErr != nil {
		return s.createErr
	}
	billing.ID = int64(len(s.created) + 100)
	s.created = append(s.created, billing)
	return nil
}

func (s *generatorRepoStub) CreateCalendarEvent(event *models.CalendarEvent) error {
	s.events = append(s.events, event)
	return nil
}

func (s *generatorRepoStub) UpdateBillingLastGeneratedDue(billingID int64, due time.Time) error {
	if s.lastGenerated == nil {
		s.lastGenerated = make(map[int64]time.Time)
	}
	s.lastGenerated[billingID] = due
	for _, original := range s.originals {
		if original.ID == billingID {
			d := due
			original.LastGeneratedDue = &d
		}
	}
	return nil
}

func (s *generatorRepoStub) CountOverdueBillings(today time.Time) (int64, error) {
	return s.overdueCount, nil
}

func newTestGenerator(repo *generatorRepoStub, today time.Time) *Generator {
	g := NewGenerator(logger.NewNop(), repo)
	g.Now = func() time.Time { return today }
	return g
}

func monthlyOriginal() *models.Billing {
	return &models.Billing{
		ID: 1, UserID: 7, CustomerID: 3,
		Amount: 250, Description: "Hosting",
		DueDate:            day(2025, time.March, 31),
		Status:             models.BillingPending,
		RecurrenceKind:     models.RecurrenceMonthly,
		RecurrenceInterval: 1,
		PaymentKey:         "key-1",
	}
}

func TestGeneratorCreatesMonthlyOccurrence(t *testing.T) {
	repo := &generatorRepoStub{originals: []*models.Billing{monthlyOriginal()}}
	g := newTestGenerator(repo, day(2025, time.March, 31))
	g.Run()

	if len(repo.created) != 1 {
		t.Fatalf("expected one occurrence, got %d", len(repo.created))
	}
	occ := repo.created[0]
	if !occ.DueDate.Equal(day(2025, time.April, 30)) {
		t.Fatalf("month-end should clamp: got %s, want 2025-04-30", occ.DueDate.Format(time.DateOnly))
	}
	if occ.ParentBillingID == nil || *occ.ParentBillingID != 1 {
		t.Fatalf("occurrence must reference its original, got %+v", occ.ParentBillingID)
	}
	if occ.Status != models.BillingPending {
		t.Fatalf("occurrence must start pending, got %s", occ.Status)
	}
	if occ.RecurrenceKind != models.RecurrenceMonthly || occ.RecurrenceInterval != 1 {
		t.Fatalf("occurrence must copy the parent's recurrence, got %s/%d", occ.RecurrenceKind, occ.RecurrenceInterval)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected one calendar event, got %d", len(repo.events))
	}
	event := repo.events[0]
	if event.BillingID != occ.ID {
		t.Fatalf("event should point at the new occurrence, got %d", event.BillingID)
	}
	if want := day(2025, time.April, 30).Add(9 * time.Hour); !event.StartsAt.Equal(want) {
		t.Fatalf("event should sit at the fixed hour: got %s", event.StartsAt)
	}

	if got := repo.lastGenerated[1]; !got.Equal(day(2025, time.April, 30)) {
		t.Fatalf("last generated due not recorded, got %s", got)
	}

	// A second run while the original's due date is still in the past must
	// not duplicate the occurrence.
	g.Run()
	if len(repo.created) != 1 {
		t.Fatalf("second run duplicated the occurrence: %d", len(repo.created))
	}
}

func TestGeneratorWaitsForDueDate(t *testing.T) {
	original := monthlyOriginal()
	original.DueDate = day(2025, time.April, 1)
	repo := &generatorRepoStub{originals: []*models.Billing{original}}
	newTestGenerator(repo, day(2025, time.March, 31)).Run()

	if len(repo.created) != 0 {
		t.Fatalf("nothing should be generated before the due date, got %d", len(repo.created))
	}
}

func TestGeneratorStopsAtRecurrenceEndDate(t *testing.T) {
	original := monthlyOriginal()
	original.DueDate = day(2025, time.January, 1)
	end := day(2025, time.January, 1)
	original.RecurrenceEndDate = &end
	repo := &generatorRepoStub{originals: []*models.Billing{original}}
	newTestGenerator(repo, day(2025, time.February, 15)).Run()

	if len(repo.created) != 0 || len(repo.events) != 0 {
		t.Fatalf("no occurrence may pass the end date: created=%d events=%d", len(repo.created), len(repo.events))
	}
}

func TestGeneratorSkipsAlreadyGeneratedDue(t *testing.T) {
	original := monthlyOriginal()
	generated := day(2025, time.April, 30)
	original.LastGeneratedDue = &generated
	repo := &generatorRepoStub{originals: []*models.Billing{original}}

	g := newTestGenerator(repo, day(2025, time.March, 31))
	g.Run()
	g.Run()

	if len(repo.created) != 0 {
		t.Fatalf("duplicate occurrence generated: %d", len(repo.created))
	}
}

func TestGeneratorIgnoresNonRecurringKind(t *testing.T) {
	original := monthlyOriginal()
	original.RecurrenceKind = models.RecurrenceNone
	repo := &generatorRepoStub{originals: []*models.Billing{original}}
	newTestGenerator(repo, day(2025, time.March, 31)).Run()

	if len(repo.created) != 0 {
		t.Fatalf("a none-kind billing must never spawn occurrences, got %d", len(repo.created))
	}
}

func TestGeneratorIsolatesFailures(t *testing.T) {
	bad := monthlyOriginal()
	bad.RecurrenceKind = "fortnightly"
	good := monthlyOriginal()
	good.ID = 2
	repo := &generatorRepoStub{originals: []*models.Billing{bad, good}}
	newTestGenerator(repo, day(2025, time.March, 31)).Run()

	if len(repo.created) != 1 {
		t.Fatalf("the valid original should still generate, got %d", len(repo.created))
	}
}

func TestGeneratorCreateErrorDoesNotPanic(t *testing.T) {
	repo := &generatorRepoStub{
		originals: []*models.Billing{monthlyOriginal()},
		createErr: errors.New("store down"),
	}
	newTestGenerator(repo, day(2025, time.March, 31)).Run()

	if len(repo.events) != 0 {
		t.Fatalf("no event may be created when the billing insert failed, got %d", len(repo.events))
	}
	if len(repo.lastGenerated) != 0 {
		t.Fatalf("last generated due must not advance on failure, got %v", repo.lastGenerated)
	}
}

func TestRecomputeOverdueWritesNothing(t *testing.T) {
	repo := &generatorRepoStub{overdueCount: 4}
	newTestGenerator(repo, day(2025, time.March, 31)).RecomputeOverdue()

	if len(repo.created) != 0 || len(repo.lastGenerated) != 0 {
		t.Fatal("overdue recompute must not persist anything")
	}
}
