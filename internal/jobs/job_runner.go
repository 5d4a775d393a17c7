package jobs

import (
	"equiprent-core/internal/config"
	"equiprent-core/internal/logger"
	"equiprent-core/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Equipment   service.EquipmentService
	Rental      service.RentalService
	Reservation service.ReservationService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
	}
}

// Config returns the runner's configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.MarkOverdueRentals()
	jr.ExpireReservations()
	jr.ScanMaintenanceDue()
}
