package service

import (
	"context"
	"time"

	"equiprent-core/internal/domain"
)

type EquipmentService interface {
	Register(ctx context.Context, name, description, category string, dailyRateCents int64, condition domain.Condition, purchaseDate time.Time) (*domain.Equipment, error)
	Get(ctx context.Context, id domain.EquipmentID) (*domain.Equipment, error)
	UpdateCondition(ctx context.Context, id domain.EquipmentID, condition domain.Condition) (*domain.Equipment, error)
	RecordMaintenance(ctx context.Context, id domain.EquipmentID) (*domain.Equipment, error)
	UpdateDailyRate(ctx context.Context, id domain.EquipmentID, rateCents int64) (*domain.Equipment, error)
	ListAvailable(ctx context.Context, category string) ([]*domain.Equipment, error)
	ListNeedingMaintenance(ctx context.Context) ([]*domain.Equipment, error)
}

type RentalService interface {
	CreateRental(ctx context.Context, equipmentID domain.EquipmentID, memberID domain.MemberID, start, end time.Time) (*domain.Rental, error)
	ReturnRental(ctx context.Context, rentalID domain.RentalID, observedCondition domain.Condition) (*domain.Rental, error)
	ExtendRental(ctx context.Context, rentalID domain.RentalID, additionalDays int) (*domain.Rental, error)
	CancelRental(ctx context.Context, rentalID domain.RentalID) (*domain.Rental, error)
	GetRental(ctx context.Context, rentalID domain.RentalID) (*domain.Rental, error)
	ListRentals(ctx context.Context, memberID domain.MemberID) ([]*domain.Rental, error)
	ListOverdueRentals(ctx context.Context) ([]*domain.Rental, error)
	// MarkOverdueRentals sweeps active rentals past their period end and
	// returns how many were transitioned.
	MarkOverdueRentals(ctx context.Context) (int, error)
}

type ReservationService interface {
	CreateReservation(ctx context.Context, equipmentID domain.EquipmentID, memberID domain.MemberID, start, end time.Time) (*domain.Reservation, error)
	ConfirmReservation(ctx context.Context, reservationID domain.ReservationID) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, reservationID domain.ReservationID, reason string) (*domain.Reservation, error)
	// FulfillReservation converts a confirmed reservation whose window has
	// begun into an active rental.
	FulfillReservation(ctx context.Context, reservationID domain.ReservationID) (*domain.Reservation, *domain.Rental, error)
	GetReservation(ctx context.Context, reservationID domain.ReservationID) (*domain.Reservation, error)
	ListReservations(ctx context.Context, memberID domain.MemberID) ([]*domain.Reservation, error)
	// ExpireReservations sweeps pending or confirmed reservations whose
	// window has ended and returns how many were transitioned.
	ExpireReservations(ctx context.Context) (int, error)
}
