package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equiprent-core/internal/clock"
	"equiprent-core/internal/config"
	"equiprent-core/internal/domain"
	"equiprent-core/internal/events"
	"equiprent-core/internal/jobs"
	"equiprent-core/internal/repository"
	"equiprent-core/internal/repository/memory"
	"equiprent-core/internal/service"
)

type fixture struct {
	runner          *jobs.JobRunner
	clk             *clock.FixedClock
	rentalRepo      repository.RentalRepository
	reservationRepo repository.ReservationRepository
	services        *jobs.Services
}

func newFixture(now time.Time) *fixture {
	gen := domain.IDGenerator(uuid.New)
	bus := events.NewBus()
	clk := clock.Fixed(now)

	equipmentRepo := memory.NewEquipmentRepository()
	rentalRepo := memory.NewRentalRepository()
	reservationRepo := memory.NewReservationRepository()

	cfg := config.Default()
	rentals := service.NewRentalService(rentalRepo, equipmentRepo, bus, clk, gen, domain.MustMoney(cfg.Policy.DailyLateFeeCents))
	services := &jobs.Services{
		Equipment:   service.NewEquipmentService(equipmentRepo, bus, clk, gen),
		Rental:      rentals,
		Reservation: service.NewReservationService(reservationRepo, equipmentRepo, rentals, bus, clk, gen),
	}
	return &fixture{
		runner:          jobs.NewJobRunner(services, cfg),
		clk:             clk,
		rentalRepo:      rentalRepo,
		reservationRepo: reservationRepo,
		services:        services,
	}
}

func TestRunAllNightlyJobs(t *testing.T) {
	now := time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC)
	f := newFixture(now)
	ctx := context.Background()
	gen := domain.IDGenerator(uuid.New)

	equipment, err := f.services.Equipment.Register(ctx, "Hammer Drill", "", "power-tools", 2500, domain.ConditionGood, now.AddDate(0, -4, 0))
	require.NoError(t, err)
	rental, err := f.services.Rental.CreateRental(ctx, equipment.ID(), domain.NewMemberID(gen), now, now.AddDate(0, 0, 2))
	require.NoError(t, err)

	idle, err := f.services.Equipment.Register(ctx, "Circular Saw", "", "power-tools", 2000, domain.ConditionGood, now.AddDate(0, -4, 0))
	require.NoError(t, err)
	reservation, err := f.services.Reservation.CreateReservation(ctx, idle.ID(), domain.NewMemberID(gen), now.AddDate(0, 0, 1), now.AddDate(0, 0, 2))
	require.NoError(t, err)

	f.clk.Set(now.AddDate(0, 0, 4))
	f.runner.RunAllNightlyJobs()

	t.Run("Overdue rentals are transitioned", func(t *testing.T) {
		got, err := f.rentalRepo.GetByID(ctx, rental.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusOverdue, got.Status())
		assert.Equal(t, int64(2000), got.LateFee().Cents())
	})

	t.Run("Lapsed reservations are expired", func(t *testing.T) {
		got, err := f.reservationRepo.GetByID(ctx, reservation.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusExpired, got.Status())
	})

	t.Run("Second run changes nothing", func(t *testing.T) {
		f.runner.RunAllNightlyJobs()
		got, err := f.rentalRepo.GetByID(ctx, rental.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(2000), got.LateFee().Cents())
	})
}

func TestJobRunnerConfig(t *testing.T) {
	f := newFixture(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, f.runner.Config())
	assert.Equal(t, int64(1000), f.runner.Config().Policy.DailyLateFeeCents)
}
