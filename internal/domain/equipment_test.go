package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equiprent-core/internal/domain"
)

var gen = domain.IDGenerator(uuid.New)

func newDrill(t *testing.T, condition domain.Condition) *domain.Equipment {
	t.Helper()
	purchased := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	e, err := domain.NewEquipment(gen, "Hammer Drill", "SDS-plus rotary hammer", "power-tools", domain.MustMoney(2500), condition, purchased)
	require.NoError(t, err)
	return e
}

func TestNewEquipment(t *testing.T) {
	t.Run("Rentable condition starts available", func(t *testing.T) {
		e := newDrill(t, domain.ConditionGood)
		assert.True(t, e.IsAvailable())
		assert.Equal(t, domain.EquipmentStatusAvailable, e.Status())
		assert.Nil(t, e.ActiveRentalID())
	})

	t.Run("Damaged condition starts unavailable", func(t *testing.T) {
		e := newDrill(t, domain.ConditionDamaged)
		assert.False(t, e.IsAvailable())
		assert.Equal(t, domain.EquipmentStatusUnavailable, e.Status())
	})

	t.Run("Empty name fails", func(t *testing.T) {
		_, err := domain.NewEquipment(gen, "  ", "desc", "power-tools", domain.ZeroMoney(), domain.ConditionGood, time.Now())
		assert.ErrorIs(t, err, domain.ErrEmptyName)
	})

	t.Run("Empty category fails", func(t *testing.T) {
		_, err := domain.NewEquipment(gen, "Drill", "desc", "", domain.ZeroMoney(), domain.ConditionGood, time.Now())
		assert.ErrorIs(t, err, domain.ErrEmptyCategory)
	})

	t.Run("Unknown condition fails", func(t *testing.T) {
		_, err := domain.NewEquipment(gen, "Drill", "desc", "power-tools", domain.ZeroMoney(), domain.Condition("RUSTY"), time.Now())
		assert.ErrorIs(t, err, domain.ErrUnknownCondition)
	})
}

func TestEquipmentRentReturnCycle(t *testing.T) {
	e := newDrill(t, domain.ConditionExcellent)
	rentalID := domain.NewRentalID(gen)

	t.Run("Mark as rented", func(t *testing.T) {
		require.NoError(t, e.MarkAsRented(rentalID))
		assert.False(t, e.IsAvailable())
		assert.Equal(t, domain.EquipmentStatusRented, e.Status())
		require.NotNil(t, e.ActiveRentalID())
		assert.True(t, e.ActiveRentalID().Equal(rentalID))
	})

	t.Run("Double rent fails", func(t *testing.T) {
		err := e.MarkAsRented(domain.NewRentalID(gen))
		var transitionErr *domain.TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "mark as rented", transitionErr.Op)
		assert.Equal(t, string(domain.EquipmentStatusRented), transitionErr.Status)
	})

	t.Run("Return in good condition restores availability", func(t *testing.T) {
		require.NoError(t, e.MarkAsReturned(domain.ConditionGood))
		assert.True(t, e.IsAvailable())
		assert.Equal(t, domain.ConditionGood, e.Condition())
		assert.Nil(t, e.ActiveRentalID())
	})

	t.Run("Return without rental fails", func(t *testing.T) {
		err := e.MarkAsReturned(domain.ConditionGood)
		var transitionErr *domain.TransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})
}

func TestEquipmentMarkAsRentedRequiresRentableCondition(t *testing.T) {
	e := newDrill(t, domain.ConditionDamaged)
	err := e.MarkAsRented(domain.NewRentalID(gen))
	var transitionErr *domain.TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Contains(t, transitionErr.Reason, "DAMAGED")

	t.Run("Condition wins over a stale availability flag", func(t *testing.T) {
		snap := e.Snapshot()
		snap.Available = true
		stale, err := domain.ReconstituteEquipment(snap)
		require.NoError(t, err)
		err = stale.MarkAsRented(domain.NewRentalID(gen))
		assert.ErrorAs(t, err, &transitionErr)
	})
}

func TestEquipmentReturnedDamagedStaysUnavailable(t *testing.T) {
	e := newDrill(t, domain.ConditionExcellent)
	require.NoError(t, e.MarkAsRented(domain.NewRentalID(gen)))
	require.NoError(t, e.MarkAsReturned(domain.ConditionDamaged))
	assert.False(t, e.IsAvailable())
	assert.Equal(t, domain.ConditionDamaged, e.Condition())
}

func TestEquipmentUpdateCondition(t *testing.T) {
	t.Run("Recomputes availability when idle", func(t *testing.T) {
		e := newDrill(t, domain.ConditionGood)
		require.NoError(t, e.UpdateCondition(domain.ConditionUnderRepair))
		assert.False(t, e.IsAvailable())
		require.NoError(t, e.UpdateCondition(domain.ConditionFair))
		assert.True(t, e.IsAvailable())
	})

	t.Run("Rented equipment stays unavailable", func(t *testing.T) {
		e := newDrill(t, domain.ConditionGood)
		require.NoError(t, e.MarkAsRented(domain.NewRentalID(gen)))
		require.NoError(t, e.UpdateCondition(domain.ConditionExcellent))
		assert.False(t, e.IsAvailable())
		assert.Equal(t, domain.EquipmentStatusRented, e.Status())
	})
}

func TestEquipmentMaintenance(t *testing.T) {
	purchased := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	e := newDrill(t, domain.ConditionGood)

	t.Run("Due 90 days after purchase", func(t *testing.T) {
		assert.False(t, e.NeedsMaintenance(purchased.AddDate(0, 0, 89)))
		assert.True(t, e.NeedsMaintenance(purchased.AddDate(0, 0, 90)))
	})

	t.Run("Maintenance resets the reference date", func(t *testing.T) {
		serviced := purchased.AddDate(0, 0, 60)
		e.RecordMaintenance(serviced)
		assert.False(t, e.NeedsMaintenance(purchased.AddDate(0, 0, 100)))
		assert.True(t, e.NeedsMaintenance(serviced.AddDate(0, 0, 90)))
	})
}

func TestEquipmentCalculateRentalCost(t *testing.T) {
	e := newDrill(t, domain.ConditionGood) // $25.00/day

	t.Run("Multiplies rate by days", func(t *testing.T) {
		cost, err := e.CalculateRentalCost(7)
		require.NoError(t, err)
		assert.Equal(t, int64(17500), cost.Cents())
	})

	t.Run("Zero days fails", func(t *testing.T) {
		_, err := e.CalculateRentalCost(0)
		assert.ErrorIs(t, err, domain.ErrNonPositiveDays)
	})

	t.Run("Zero rate is permitted", func(t *testing.T) {
		e.UpdateDailyRate(domain.ZeroMoney())
		cost, err := e.CalculateRentalCost(3)
		require.NoError(t, err)
		assert.True(t, cost.IsZero())
	})
}

func TestEquipmentSnapshotRoundTrip(t *testing.T) {
	e := newDrill(t, domain.ConditionExcellent)
	rentalID := domain.NewRentalID(gen)
	require.NoError(t, e.MarkAsRented(rentalID))
	e.RecordMaintenance(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

	restored, err := domain.ReconstituteEquipment(e.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, e.Snapshot(), restored.Snapshot())
	assert.True(t, restored.ActiveRentalID().Equal(rentalID))
	assert.Equal(t, e.Status(), restored.Status())
}
