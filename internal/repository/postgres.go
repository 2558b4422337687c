package repository

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/monere-app/monere/internal/models"
	"github.com/monere-app/monere/pkg/logger"
)

type PostgresDB struct {
	logger *logger.Logger

	Conn *gorm.DB
}

func NewPostgresDB(user, password, dbname, host string, port int, logger *logger.Logger) (models.Repository, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		host, user, password, dbname, port)

	// Configure GORM logger to suppress "record not found" messages
	gormLogger := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %s", err)
	}

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Billing{},
		&models.MessageTemplate{},
		&models.MessageHistory{},
		&models.ChannelInstance{},
		&models.CalendarEvent{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate models: %s", err)
	}
	logger.Info("Successfully connected to PostgreSQL!")
	return &PostgresDB{Conn: db, logger: logger}, nil
}

func (db *PostgresDB) Close() error {
	sqlDB, err := db.Conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %s", err)
	}
	return sqlDB.Close()
}

func (db *PostgresDB) ListRecurringOriginals() ([]*models.Billing, error) {
	var billings []*models.Billing
	if err := db.Conn.Where("recurrence_kind <> ? AND parent_billing_id IS NULL", models.RecurrenceNone).Find(&billings).Error; err != nil {
		return nil, fmt.Errorf("failed to list recurring originals: %s", err)
	}

	return billings, nil
}

func (db *PostgresDB) CreateBilling(billing *models.Billing) error {
	if err := db.Conn.Create(billing).Error; err != nil {
		return fmt.Errorf("failed to create billing: %s", err)
	}

	return nil
}

func (db *PostgresDB) UpdateBillingLastGeneratedDue(billingID int64, due time.Time) error {
	if err := db.Conn.Model(&models.Billing{}).Where("id = ?", billingID).Update("last_generated_due", models.DateOnly(due)).Error; err != nil {
		return fmt.Errorf("failed to update billing last generated due: %s", err)
	}

	return nil
}

func (db *PostgresDB) ListPendingBillingsDueOn(userID int64, due time.Time) ([]*models.Billing, error) {
	var billings []*models.Billing
	if err := db.Conn.Where("user_id = ? AND status = ? AND due_date = ?", userID, models.BillingPending, models.DateOnly(due)).Find(&billings).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending billings due on %s: %s", due.Format("2006-01-02"), err)
	}

	return billings, nil
}

func (db *PostgresDB) CountOverdueBillings(today time.Time) (int64, error) {
	var count int64
	if err := db.Conn.Model(&models.Billing{}).Where("status = ? AND due_date < ?", models.BillingPending, models.DateOnly(today)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count overdue billings: %s", err)
	}

	return count, nil
}

func (db *PostgresDB) GetCustomer(id int64) (*models.Customer, error) {
	var customer models.Customer
	if err := db.Conn.Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, fmt.Errorf("failed to get customer: %s", err)
	}

	return &customer, nil
}

func (db *PostgresDB) ListActiveTemplates(kind models.TriggerKind) ([]*models.MessageTemplate, error) {
	var templates []*models.MessageTemplate
	if err := db.Conn.Where("trigger_kind = ? AND active = ?", kind, true).Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("failed to list active templates: %s", err)
	}

	return templates, nil
}

func (db *PostgresDB) CreateMessageHistory(history *models.MessageHistory) error {
	if err := db.Conn.Create(history).Error; err != nil {
		return fmt.Errorf("failed to create message history: %s", err)
	}

	return nil
}

func (db *PostgresDB) ListDueScheduledMessages(now time.Time) ([]*models.MessageHistory, error) {
	var messages []*models.MessageHistory
	if err := db.Conn.Where("status = ? AND scheduled_for <= ?", models.MessageScheduled, now).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list due scheduled messages: %s", err)
	}

	return messages, nil
}

// MarkMessageSent flips a scheduled message to sent. The status guard in the
// WHERE clause keeps terminal records immutable.
func (db *PostgresDB) MarkMessageSent(id int64, sentAt time.Time) error {
	if err := db.Conn.Model(&models.MessageHistory{}).
		Where("id = ? AND status = ?", id, models.MessageScheduled).
		Updates(map[string]interface{}{"status": models.MessageSent, "sent_at": sentAt}).Error; err != nil {
		return fmt.Errorf("failed to mark message sent: %s", err)
	}

	return nil
}

func (db *PostgresDB) MarkMessageFailed(id int64) error {
	if err := db.Conn.Model(&models.MessageHistory{}).
		Where("id = ? AND status = ?", id, models.MessageScheduled).
		Update("status", models.MessageFailed).Error; err != nil {
		return fmt.Errorf("failed to mark message failed: %s", err)
	}

	return nil
}

func (db *PostgresDB) ListChannelInstances() ([]*models.ChannelInstance, error) {
	var instances []*models.ChannelInstance
	if err := db.Conn.Find(&instances).Error; err != nil {
		return nil, fmt.Errorf("failed to list channel instances: %s", err)
	}

	return instances, nil
}

func (db *PostgresDB) GetChannelInstance(id int64) (*models.ChannelInstance, error) {
	var instance models.ChannelInstance
	if err := db.Conn.Where("id = ?", id).First(&instance).Error; err != nil {
		return nil, fmt.Errorf("failed to get channel instance: %s", err)
	}

	return &instance, nil
}

// GetDefaultConnectedInstance prefers the owner's default instance when it is
// connected, falling back to any connected instance. Returns nil when the
// owner has no connected instance.
func (db *PostgresDB) GetDefaultConnectedInstance(userID int64) (*models.ChannelInstance, error) {
	var instance models.ChannelInstance
	err := db.Conn.Where("user_id = ? AND is_default = ? AND status = ?", userID, true, models.ChannelConnected).First(&instance).Error
	if err == nil {
		return &instance, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to get default channel instance: %s", err)
	}

	err = db.Conn.Where("user_id = ? AND status = ?", userID, models.ChannelConnected).First(&instance).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get connected channel instance: %s", err)
	}

	return &instance, nil
}

func (db *PostgresDB) UpdateChannelInstanceState(id int64, status models.ChannelStatus, usable bool) error {
	if err := db.Conn.Model(&models.ChannelInstance{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "usable": usable}).Error; err != nil {
		return fmt.Errorf("failed to update channel instance state: %s", err)
	}

	return nil
}

func (db *PostgresDB) CreateCalendarEvent(event *models.CalendarEvent) error {
	if err := db.Conn.Create(event).Error; err != nil {
		return fmt.Errorf("failed to create calendar event: %s", err)
	}

	return nil
}
