package service

import (
	"context"
	"fmt"
	"time"

	"equiprent-core/internal/clock"
	"equiprent-core/internal/domain"
	"equiprent-core/internal/events"
	"equiprent-core/internal/logger"
	"equiprent-core/internal/repository"
)

type rentalService struct {
	rentalRepo    repository.RentalRepository
	equipmentRepo repository.EquipmentRepository
	publisher     events.Publisher
	clk           clock.Clock
	idgen         domain.IDGenerator
	lateFeeRate   domain.Money
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	equipmentRepo repository.EquipmentRepository,
	publisher events.Publisher,
	clk clock.Clock,
	idgen domain.IDGenerator,
	dailyLateFeeRate domain.Money,
) RentalService {
	return &rentalService{
		rentalRepo:    rentalRepo,
		equipmentRepo: equipmentRepo,
		publisher:     publisher,
		clk:           clk,
		idgen:         idgen,
		lateFeeRate:   dailyLateFeeRate,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, equipmentID domain.EquipmentID, memberID domain.MemberID, start, end time.Time) (*domain.Rental, error) {
	period, err := domain.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("loading equipment %s: %w", equipmentID, err)
	}
	baseCost, err := equipment.CalculateRentalCost(period.DayCount())
	if err != nil {
		return nil, err
	}
	now := s.clk.Now()
	rental, err := domain.NewRental(s.idgen, equipmentID, memberID, period, baseCost, equipment.Condition(), now)
	if err != nil {
		return nil, err
	}
	if err := equipment.MarkAsRented(rental.ID()); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}
	if err := s.rentalRepo.Save(ctx, rental); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewRentalCreated(s.idgen, now, rental, equipment.DailyRate()))
	logger.Info("Rental created", "rental_id", rental.ID(), "equipment_id", equipmentID, "member_id", memberID, "total_cost", rental.TotalCost())
	return rental, nil
}

func (s *rentalService) ReturnRental(ctx context.Context, rentalID domain.RentalID, observedCondition domain.Condition) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	damageFee, err := rental.DamageFee(observedCondition)
	if err != nil {
		return nil, err
	}
	now := s.clk.Now()
	if err := rental.Return(observedCondition, damageFee, now); err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.GetByID(ctx, rental.EquipmentID())
	if err != nil {
		return nil, fmt.Errorf("loading equipment %s: %w", rental.EquipmentID(), err)
	}
	if err := equipment.MarkAsReturned(observedCondition); err != nil {
		return nil, err
	}
	if err := s.rentalRepo.Save(ctx, rental); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewRentalReturned(s.idgen, now, rental, damageFee))
	logger.Info("Rental returned", "rental_id", rentalID, "condition", observedCondition, "damage_fee", damageFee, "total_cost", rental.TotalCost())
	return rental, nil
}

func (s *rentalService) ExtendRental(ctx context.Context, rentalID domain.RentalID, additionalDays int) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.GetByID(ctx, rental.EquipmentID())
	if err != nil {
		return nil, fmt.Errorf("loading equipment %s: %w", rental.EquipmentID(), err)
	}
	additionalCost, err := equipment.CalculateRentalCost(additionalDays)
	if err != nil {
		return nil, err
	}
	if err := rental.ExtendPeriod(additionalDays, additionalCost); err != nil {
		return nil, err
	}
	if err := s.rentalRepo.Save(ctx, rental); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewRentalExtended(s.idgen, s.clk.Now(), rental, additionalDays))
	logger.Info("Rental extended", "rental_id", rentalID, "additional_days", additionalDays, "new_end", rental.Period().End())
	return rental, nil
}

func (s *rentalService) CancelRental(ctx context.Context, rentalID domain.RentalID) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if err := rental.Cancel(); err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.GetByID(ctx, rental.EquipmentID())
	if err != nil {
		return nil, fmt.Errorf("loading equipment %s: %w", rental.EquipmentID(), err)
	}
	// Release the equipment if this rental is the one holding it.
	if ref := equipment.ActiveRentalID(); ref != nil && ref.Equal(rentalID) {
		if err := equipment.MarkAsReturned(equipment.Condition()); err != nil {
			return nil, err
		}
		if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
			return nil, err
		}
	}
	if err := s.rentalRepo.Save(ctx, rental); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewRentalCancelled(s.idgen, s.clk.Now(), rental))
	logger.Info("Rental cancelled", "rental_id", rentalID)
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID domain.RentalID) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, rentalID)
}

func (s *rentalService) ListRentals(ctx context.Context, memberID domain.MemberID) ([]*domain.Rental, error) {
	return s.rentalRepo.ListByMember(ctx, memberID)
}

func (s *rentalService) ListOverdueRentals(ctx context.Context) ([]*domain.Rental, error) {
	return s.rentalRepo.ListOverdue(ctx, s.clk.Now())
}

func (s *rentalService) MarkOverdueRentals(ctx context.Context) (int, error) {
	now := s.clk.Now()
	overdue, err := s.rentalRepo.ListOverdue(ctx, now)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, rental := range overdue {
		if err := rental.MarkAsOverdue(s.lateFeeRate, now); err != nil {
			logger.Warn("Skipping rental in overdue sweep", "rental_id", rental.ID(), "error", err)
			continue
		}
		if err := s.rentalRepo.Save(ctx, rental); err != nil {
			return count, err
		}
		s.publish(ctx, domain.NewRentalOverdue(s.idgen, now, rental))
		count++
	}
	return count, nil
}

func (s *rentalService) publish(ctx context.Context, evts ...domain.Event) {
	if err := s.publisher.Publish(ctx, evts...); err != nil {
		logger.Error("Failed to publish rental events", "error", err)
	}
}
