package repository

import (
	"context"
	"errors"
	"time"

	"equiprent-core/internal/domain"
)

// ErrNotFound is returned by lookups when no aggregate with the given id
// exists.
var ErrNotFound = errors.New("not found")

type EquipmentRepository interface {
	Save(ctx context.Context, equipment *domain.Equipment) error
	GetByID(ctx context.Context, id domain.EquipmentID) (*domain.Equipment, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Equipment, error)
	// ListAvailable returns available equipment, optionally filtered by
	// category. An empty category matches everything.
	ListAvailable(ctx context.Context, category string) ([]*domain.Equipment, error)
	ListNeedingMaintenance(ctx context.Context, now time.Time) ([]*domain.Equipment, error)
	Delete(ctx context.Context, id domain.EquipmentID) error
	Exists(ctx context.Context, id domain.EquipmentID) (bool, error)
	Count(ctx context.Context) (int, error)
}

type RentalRepository interface {
	Save(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id domain.RentalID) (*domain.Rental, error)
	ListByMember(ctx context.Context, memberID domain.MemberID) ([]*domain.Rental, error)
	ListByEquipment(ctx context.Context, equipmentID domain.EquipmentID) ([]*domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]*domain.Rental, error)
	// ListActive returns rentals in ACTIVE or OVERDUE status.
	ListActive(ctx context.Context) ([]*domain.Rental, error)
	// ListOverdue returns active rentals whose period has ended at now.
	ListOverdue(ctx context.Context, now time.Time) ([]*domain.Rental, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*domain.Rental, error)
	ListReturnedBetween(ctx context.Context, from, to time.Time) ([]*domain.Rental, error)
	Delete(ctx context.Context, id domain.RentalID) error
	Exists(ctx context.Context, id domain.RentalID) (bool, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status domain.RentalStatus) (int, error)
}

type ReservationRepository interface {
	Save(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id domain.ReservationID) (*domain.Reservation, error)
	ListByMember(ctx context.Context, memberID domain.MemberID) ([]*domain.Reservation, error)
	ListByEquipment(ctx context.Context, equipmentID domain.EquipmentID) ([]*domain.Reservation, error)
	ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error)
	ListActive(ctx context.Context, now time.Time) ([]*domain.Reservation, error)
	ListReadyToFulfill(ctx context.Context, now time.Time) ([]*domain.Reservation, error)
	// ListExpirable returns pending or confirmed reservations whose window
	// has ended at now.
	ListExpirable(ctx context.Context, now time.Time) ([]*domain.Reservation, error)
	// FindConflicting returns active reservations for the equipment whose
	// window overlaps the given period.
	FindConflicting(ctx context.Context, equipmentID domain.EquipmentID, period domain.DateRange, now time.Time) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id domain.ReservationID) error
	Exists(ctx context.Context, id domain.ReservationID) (bool, error)
	Count(ctx context.Context) (int, error)
}
