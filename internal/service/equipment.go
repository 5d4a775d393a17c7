package service

import (
	"context"
	"time"

	"equiprent-core/internal/clock"
	"equiprent-core/internal/domain"
	"equiprent-core/internal/events"
	"equiprent-core/internal/logger"
	"equiprent-core/internal/repository"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	publisher     events.Publisher
	clk           clock.Clock
	idgen         domain.IDGenerator
}

func NewEquipmentService(
	equipmentRepo repository.EquipmentRepository,
	publisher events.Publisher,
	clk clock.Clock,
	idgen domain.IDGenerator,
) EquipmentService {
	return &equipmentService{
		equipmentRepo: equipmentRepo,
		publisher:     publisher,
		clk:           clk,
		idgen:         idgen,
	}
}

func (s *equipmentService) Register(ctx context.Context, name, description, category string, dailyRateCents int64, condition domain.Condition, purchaseDate time.Time) (*domain.Equipment, error) {
	rate, err := domain.NewMoney(dailyRateCents)
	if err != nil {
		return nil, err
	}
	equipment, err := domain.NewEquipment(s.idgen, name, description, category, rate, condition, purchaseDate)
	if err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}
	logger.Info("Equipment registered", "equipment_id", equipment.ID(), "category", category, "condition", condition)
	return equipment, nil
}

func (s *equipmentService) Get(ctx context.Context, id domain.EquipmentID) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *equipmentService) UpdateCondition(ctx context.Context, id domain.EquipmentID, condition domain.Condition) (*domain.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	old := equipment.Condition()
	if err := equipment.UpdateCondition(condition); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewEquipmentConditionChanged(s.idgen, s.clk.Now(), equipment, old))
	return equipment, nil
}

func (s *equipmentService) RecordMaintenance(ctx context.Context, id domain.EquipmentID) (*domain.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.clk.Now()
	equipment.RecordMaintenance(now)
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewMaintenanceRecorded(s.idgen, now, equipment, now))
	return equipment, nil
}

func (s *equipmentService) UpdateDailyRate(ctx context.Context, id domain.EquipmentID, rateCents int64) (*domain.Equipment, error) {
	rate, err := domain.NewMoney(rateCents)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	equipment.UpdateDailyRate(rate)
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *equipmentService) ListAvailable(ctx context.Context, category string) ([]*domain.Equipment, error) {
	return s.equipmentRepo.ListAvailable(ctx, category)
}

func (s *equipmentService) ListNeedingMaintenance(ctx context.Context) ([]*domain.Equipment, error) {
	return s.equipmentRepo.ListNeedingMaintenance(ctx, s.clk.Now())
}

func (s *equipmentService) publish(ctx context.Context, evts ...domain.Event) {
	if err := s.publisher.Publish(ctx, evts...); err != nil {
		logger.Error("Failed to publish equipment events", "error", err)
	}
}
