package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/monere-app/monere/internal/billing"
	"github.com/monere-app/monere/internal/channel"
	"github.com/monere-app/monere/internal/config"
	"github.com/monere-app/monere/internal/http_api"
	"github.com/monere-app/monere/internal/notificator"
	"github.com/monere-app/monere/internal/orchestrator"
	"github.com/monere-app/monere/internal/provider"
	"github.com/monere-app/monere/internal/repository"
	"github.com/monere-app/monere/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "monere",
		Usage: "Monere is a recurring-billing and notification-dispatch engine",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "postgres-user", Aliases: []string{"u"}, Usage: "Postgres user"},
			&cli.StringFlag{Name: "postgres-password", Aliases: []string{"p"}, Usage: "Postgres password"},
			&cli.StringFlag{Name: "postgres-host", Aliases: []string{"t"}, Usage: "Postgres host"},
			&cli.IntFlag{Name: "postgres-port", Aliases: []string{"P"}, Usage: "Postgres port"},
			&cli.StringFlag{Name: "postgres-db", Aliases: []string{"d"}, Usage: "Postgres database name"},
			&cli.StringFlag{Name: "provider-url", Aliases: []string{"w"}, Usage: "Direct-message provider base URL"},
			&cli.BoolFlag{Name: "development", Aliases: []string{"D"}, Usage: "Development mode"},
		},
		Action: func(c *cli.Context) error {
			return run(c)
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	// Load configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	// Override with flags if set
	if c.IsSet("postgres-user") {
		cfg.PostgresUser = c.String("postgres-user")
	}
	if c.IsSet("postgres-password") {
		cfg.PostgresPassword = c.String("postgres-password")
	}
	if c.IsSet("postgres-host") {
		cfg.PostgresHost = c.String("postgres-host")
	}
	if c.IsSet("postgres-port") {
		cfg.PostgresPort = c.Int("postgres-port")
	}
	if c.IsSet("postgres-db") {
		cfg.PostgresDB = c.String("postgres-db")
	}
	if c.IsSet("provider-url") {
		cfg.ProviderURL = c.String("provider-url")
	}
	if c.IsSet("development") {
		cfg.Development = c.Bool("development")
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}
	defer log.Sync()

	// Initialize database
	db, err := repository.NewPostgresDB(cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresHost, cfg.PostgresPort, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Initialize channels
	providerClient := provider.NewClient(cfg.ProviderURL, log)
	emailNotificator := notificator.NewEmailNotificator(log, cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPSender)
	whatsappNotificator := notificator.NewWhatsappNotificator(log, db, providerClient)

	// Initialize jobs
	dispatcher := notificator.NewDispatcher(log, db, emailNotificator, whatsappNotificator)
	generator := billing.NewGenerator(log, db)
	drainer := notificator.NewDrainer(log, db, providerClient)
	reconciler := channel.NewReconciler(log, db, providerClient)

	// Register and start the periodic jobs
	orch := orchestrator.New(log)
	jobs := []struct {
		name     string
		schedule string
		handler  func()
	}{
		{"billing-reminders", cfg.ReminderSchedule, dispatcher.RunReminderPass},
		{"overdue-notifications", cfg.OverdueSchedule, dispatcher.RunOverduePass},
		{"recurring-billings", cfg.RecurringSchedule, generator.Run},
		{"update-overdue-status", cfg.OverdueStatusSchedule, generator.RecomputeOverdue},
		{"scheduled-messages", cfg.ScheduledMessagesSchedule, drainer.Drain},
		{"channel-status-sync", cfg.ChannelSyncSchedule, reconciler.Run},
	}
	for _, job := range jobs {
		if err := orch.Register(job.name, job.schedule, job.handler); err != nil {
			return fmt.Errorf("failed to register job %s: %v", job.name, err)
		}
	}
	orch.Start()

	// Initialize API server
	apiServer := http_api.NewHTTPServer(orch, reconciler, cfg.APIPort, log)
	go apiServer.Start()

	// Wait for termination
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	orch.Stop()
	if err := apiServer.Shutdown(); err != nil {
		log.Error("Failed to shut down API server ", "error ", err)
	}

	return nil
}
