package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"equiprent-core/internal/clock"
	"equiprent-core/internal/config"
	"equiprent-core/internal/domain"
	"equiprent-core/internal/events"
	"equiprent-core/internal/jobs"
	"equiprent-core/internal/logger"
	"equiprent-core/internal/repository/memory"
	"equiprent-core/internal/scheduler"
	"equiprent-core/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'mark-overdue-rentals', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting equipment rental worker...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)

	// Initialize repositories
	equipmentRepo := memory.NewEquipmentRepository()
	rentalRepo := memory.NewRentalRepository()
	reservationRepo := memory.NewReservationRepository()

	// Initialize event bus with a logging subscriber
	bus := events.NewBus()
	bus.Subscribe(func(envelope events.Envelope) {
		logger.Info("Domain event",
			"event_type", envelope.EventType,
			"aggregate_id", envelope.AggregateID,
			"occurred_at", envelope.OccurredAt)
	})

	// Initialize services
	clk := clock.System()
	idgen := domain.IDGenerator(uuid.New)
	lateFeeRate := domain.MustMoney(cfg.Policy.DailyLateFeeCents)

	equipmentService := service.NewEquipmentService(equipmentRepo, bus, clk, idgen)
	rentalService := service.NewRentalService(rentalRepo, equipmentRepo, bus, clk, idgen, lateFeeRate)
	reservationService := service.NewReservationService(reservationRepo, equipmentRepo, rentalService, bus, clk, idgen)

	jobServices := &jobs.Services{
		Equipment:   equipmentService,
		Rental:      rentalService,
		Reservation: reservationService,
	}

	// Initialize job runner
	jobRunner := jobs.NewJobRunner(jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Worker scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down worker scheduler...")
	cronScheduler.Stop()
	logger.Info("Worker scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "mark-overdue-rentals":
		jobRunner.MarkOverdueRentals()
	case "expire-reservations":
		jobRunner.ExpireReservations()
	case "scan-maintenance-due":
		jobRunner.ScanMaintenanceDue()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - mark-overdue-rentals\n")
		fmt.Printf("  - expire-reservations\n")
		fmt.Printf("  - scan-maintenance-due\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
