package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"equiprent-core/internal/clock"
	"equiprent-core/internal/domain"
	"equiprent-core/internal/events"
	"equiprent-core/internal/repository"
	"equiprent-core/internal/repository/memory"
	"equiprent-core/internal/service"
)

var testGen = domain.IDGenerator(uuid.New)

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Save(ctx context.Context, equipment *domain.Equipment) error {
	args := m.Called(ctx, equipment)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id domain.EquipmentID) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ListByCategory(ctx context.Context, category string) ([]*domain.Equipment, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ListAvailable(ctx context.Context, category string) ([]*domain.Equipment, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ListNeedingMaintenance(ctx context.Context, now time.Time) ([]*domain.Equipment, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Delete(ctx context.Context, id domain.EquipmentID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Exists(ctx context.Context, id domain.EquipmentID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockEquipmentRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evts ...domain.Event) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}

// harness wires the services against in-memory adapters, a fixed clock and
// a bus that records every published envelope.
type harness struct {
	equipmentRepo   repository.EquipmentRepository
	rentalRepo      repository.RentalRepository
	reservationRepo repository.ReservationRepository
	equipment       service.EquipmentService
	rentals         service.RentalService
	reservations    service.ReservationService
	clk             *clock.FixedClock
	published       []events.Envelope
}

func newHarness(now time.Time) *harness {
	h := &harness{
		equipmentRepo:   memory.NewEquipmentRepository(),
		rentalRepo:      memory.NewRentalRepository(),
		reservationRepo: memory.NewReservationRepository(),
		clk:             clock.Fixed(now),
	}
	bus := events.NewBus()
	bus.Subscribe(func(e events.Envelope) { h.published = append(h.published, e) })

	gen := domain.IDGenerator(uuid.New)
	h.equipment = service.NewEquipmentService(h.equipmentRepo, bus, h.clk, gen)
	h.rentals = service.NewRentalService(h.rentalRepo, h.equipmentRepo, bus, h.clk, gen, domain.MustMoney(1000))
	h.reservations = service.NewReservationService(h.reservationRepo, h.equipmentRepo, h.rentals, bus, h.clk, gen)
	return h
}

func (h *harness) eventTypes() []string {
	types := make([]string, 0, len(h.published))
	for _, e := range h.published {
		types = append(types, e.EventType)
	}
	return types
}

func (h *harness) registerEquipment(t *testing.T, condition domain.Condition) *domain.Equipment {
	t.Helper()
	purchased := h.clk.Now().AddDate(0, -1, 0)
	e, err := h.equipment.Register(context.Background(), "Hammer Drill", "SDS-plus rotary hammer", "power-tools", 2500, condition, purchased)
	require.NoError(t, err)
	return e
}
