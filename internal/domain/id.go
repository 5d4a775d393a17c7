package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrEmptyID = errors.New("identifier cannot be empty")

// IDGenerator produces unique identifiers. Production wiring passes
// uuid.New; tests pass a deterministic generator.
type IDGenerator func() uuid.UUID

// ID is a typed identifier. The type parameter is a phantom tag that makes
// identifiers of different aggregate kinds distinct at compile time.
type ID[T any] struct {
	value uuid.UUID
}

func (id ID[T]) UUID() uuid.UUID {
	return id.value
}

func (id ID[T]) String() string {
	return id.value.String()
}

func (id ID[T]) IsZero() bool {
	return id.value == uuid.Nil
}

func (id ID[T]) Equal(other ID[T]) bool {
	return id.value == other.value
}

func newID[T any](gen IDGenerator) ID[T] {
	return ID[T]{value: gen()}
}

func parseID[T any](s string) (ID[T], error) {
	if s == "" {
		return ID[T]{}, ErrEmptyID
	}
	v, err := uuid.Parse(s)
	if err != nil {
		return ID[T]{}, fmt.Errorf("invalid identifier %q: %w", s, err)
	}
	if v == uuid.Nil {
		return ID[T]{}, ErrEmptyID
	}
	return ID[T]{value: v}, nil
}

type equipmentTag struct{}
type rentalTag struct{}
type memberTag struct{}
type reservationTag struct{}
type damageAssessmentTag struct{}

type EquipmentID = ID[equipmentTag]
type RentalID = ID[rentalTag]
type MemberID = ID[memberTag]
type ReservationID = ID[reservationTag]
type DamageAssessmentID = ID[damageAssessmentTag]

func NewEquipmentID(gen IDGenerator) EquipmentID { return newID[equipmentTag](gen) }
func NewRentalID(gen IDGenerator) RentalID       { return newID[rentalTag](gen) }
func NewMemberID(gen IDGenerator) MemberID       { return newID[memberTag](gen) }
func NewReservationID(gen IDGenerator) ReservationID {
	return newID[reservationTag](gen)
}
func NewDamageAssessmentID(gen IDGenerator) DamageAssessmentID {
	return newID[damageAssessmentTag](gen)
}

func ParseEquipmentID(s string) (EquipmentID, error) { return parseID[equipmentTag](s) }
func ParseRentalID(s string) (RentalID, error)       { return parseID[rentalTag](s) }
func ParseMemberID(s string) (MemberID, error)       { return parseID[memberTag](s) }
func ParseReservationID(s string) (ReservationID, error) {
	return parseID[reservationTag](s)
}
func ParseDamageAssessmentID(s string) (DamageAssessmentID, error) {
	return parseID[damageAssessmentTag](s)
}
