package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equiprent-core/internal/domain"
)

func TestTypedIDs(t *testing.T) {
	gen := domain.IDGenerator(uuid.New)

	t.Run("Generated ids are distinct", func(t *testing.T) {
		a := domain.NewEquipmentID(gen)
		b := domain.NewEquipmentID(gen)
		assert.False(t, a.Equal(b))
		assert.False(t, a.IsZero())
	})

	t.Run("String round-trip", func(t *testing.T) {
		id := domain.NewRentalID(gen)
		parsed, err := domain.ParseRentalID(id.String())
		require.NoError(t, err)
		assert.True(t, id.Equal(parsed))
	})

	t.Run("Empty string fails", func(t *testing.T) {
		_, err := domain.ParseMemberID("")
		assert.ErrorIs(t, err, domain.ErrEmptyID)
	})

	t.Run("Nil uuid fails", func(t *testing.T) {
		_, err := domain.ParseReservationID(uuid.Nil.String())
		assert.ErrorIs(t, err, domain.ErrEmptyID)
	})

	t.Run("Garbage fails", func(t *testing.T) {
		_, err := domain.ParseDamageAssessmentID("not-a-uuid")
		assert.Error(t, err)
	})

	t.Run("Deterministic generator", func(t *testing.T) {
		fixed := uuid.MustParse("11111111-1111-1111-1111-111111111111")
		id := domain.NewEquipmentID(func() uuid.UUID { return fixed })
		assert.Equal(t, fixed.String(), id.String())
	})
}
