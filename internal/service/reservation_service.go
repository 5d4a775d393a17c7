package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"equiprent-core/internal/clock"
	"equiprent-core/internal/domain"
	"equiprent-core/internal/events"
	"equiprent-core/internal/logger"
	"equiprent-core/internal/repository"
)

// ErrReservationConflict is returned when the requested period overlaps an
// active reservation for the same equipment.
var ErrReservationConflict = errors.New("reservation conflicts with an existing reservation")

type reservationService struct {
	reservationRepo repository.ReservationRepository
	equipmentRepo   repository.EquipmentRepository
	rentals         RentalService
	publisher       events.Publisher
	clk             clock.Clock
	idgen           domain.IDGenerator
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	equipmentRepo repository.EquipmentRepository,
	rentals RentalService,
	publisher events.Publisher,
	clk clock.Clock,
	idgen domain.IDGenerator,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		equipmentRepo:   equipmentRepo,
		rentals:         rentals,
		publisher:       publisher,
		clk:             clk,
		idgen:           idgen,
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, equipmentID domain.EquipmentID, memberID domain.MemberID, start, end time.Time) (*domain.Reservation, error) {
	period, err := domain.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	exists, err := s.equipmentRepo.Exists(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("equipment %s: %w", equipmentID, repository.ErrNotFound)
	}
	now := s.clk.Now()
	conflicts, err := s.reservationRepo.FindConflicting(ctx, equipmentID, period, now)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrReservationConflict
	}
	reservation, err := domain.NewReservation(s.idgen, equipmentID, memberID, period, now)
	if err != nil {
		return nil, err
	}
	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewReservationCreated(s.idgen, now, reservation))
	logger.Info("Reservation created", "reservation_id", reservation.ID(), "equipment_id", equipmentID, "member_id", memberID)
	return reservation, nil
}

func (s *reservationService) ConfirmReservation(ctx context.Context, reservationID domain.ReservationID) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	now := s.clk.Now()
	if err := reservation.Confirm(now); err != nil {
		return nil, err
	}
	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewReservationConfirmed(s.idgen, now, reservation))
	return reservation, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, reservationID domain.ReservationID, reason string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	now := s.clk.Now()
	if err := reservation.Cancel(now); err != nil {
		return nil, err
	}
	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewReservationCancelled(s.idgen, now, reservation, reason))
	logger.Info("Reservation cancelled", "reservation_id", reservationID, "reason", reason)
	return reservation, nil
}

func (s *reservationService) FulfillReservation(ctx context.Context, reservationID domain.ReservationID) (*domain.Reservation, *domain.Rental, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	now := s.clk.Now()
	if err := reservation.Fulfill(now); err != nil {
		return nil, nil, err
	}
	rental, err := s.rentals.CreateRental(ctx, reservation.EquipmentID(), reservation.MemberID(), reservation.Period().Start(), reservation.Period().End())
	if err != nil {
		// The fulfill transition above only mutated the in-memory copy;
		// nothing was persisted, so the reservation stays CONFIRMED.
		return nil, nil, fmt.Errorf("creating rental for reservation %s: %w", reservationID, err)
	}
	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		return nil, nil, err
	}
	s.publish(ctx, domain.NewReservationFulfilled(s.idgen, now, reservation, rental.ID()))
	logger.Info("Reservation fulfilled", "reservation_id", reservationID, "rental_id", rental.ID())
	return reservation, rental, nil
}

func (s *reservationService) GetReservation(ctx context.Context, reservationID domain.ReservationID) (*domain.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, reservationID)
}

func (s *reservationService) ListReservations(ctx context.Context, memberID domain.MemberID) ([]*domain.Reservation, error) {
	return s.reservationRepo.ListByMember(ctx, memberID)
}

func (s *reservationService) ExpireReservations(ctx context.Context) (int, error) {
	now := s.clk.Now()
	expirable, err := s.reservationRepo.ListExpirable(ctx, now)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, reservation := range expirable {
		if err := reservation.MarkAsExpired(now); err != nil {
			logger.Warn("Skipping reservation in expiry sweep", "reservation_id", reservation.ID(), "error", err)
			continue
		}
		if err := s.reservationRepo.Save(ctx, reservation); err != nil {
			return count, err
		}
		s.publish(ctx, domain.NewReservationExpired(s.idgen, now, reservation))
		count++
	}
	return count, nil
}

func (s *reservationService) publish(ctx context.Context, evts ...domain.Event) {
	if err := s.publisher.Publish(ctx, evts...); err != nil {
		logger.Error("Failed to publish reservation events", "error", err)
	}
}
