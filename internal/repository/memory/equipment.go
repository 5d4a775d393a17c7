package memory

import (
	"context"
	"sync"
	"time"

	"equiprent-core/internal/domain"
	"equiprent-core/internal/repository"
)

// equipmentRepository is a mutex-guarded in-memory adapter. It stores
// snapshots and reconstitutes on read, so callers never share mutable
// entity state with the store.
type equipmentRepository struct {
	mu    sync.RWMutex
	items map[string]domain.EquipmentSnapshot
}

func NewEquipmentRepository() repository.EquipmentRepository {
	return &equipmentRepository{items: make(map[string]domain.EquipmentSnapshot)}
}

func (r *equipmentRepository) Save(_ context.Context, equipment *domain.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := equipment.Snapshot()
	r.items[snap.ID] = snap
	return nil
}

func (r *equipmentRepository) GetByID(_ context.Context, id domain.EquipmentID) (*domain.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.items[id.String()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return domain.ReconstituteEquipment(snap)
}

func (r *equipmentRepository) ListByCategory(_ context.Context, category string) ([]*domain.Equipment, error) {
	return r.list(func(snap domain.EquipmentSnapshot) bool {
		return snap.Category == category
	})
}

func (r *equipmentRepository) ListAvailable(_ context.Context, category string) ([]*domain.Equipment, error) {
	return r.list(func(snap domain.EquipmentSnapshot) bool {
		if !snap.Available {
			return false
		}
		return category == "" || snap.Category == category
	})
}

func (r *equipmentRepository) ListNeedingMaintenance(_ context.Context, now time.Time) ([]*domain.Equipment, error) {
	result, err := r.list(func(domain.EquipmentSnapshot) bool { return true })
	if err != nil {
		return nil, err
	}
	var due []*domain.Equipment
	for _, e := range result {
		if e.NeedsMaintenance(now) {
			due = append(due, e)
		}
	}
	return due, nil
}

func (r *equipmentRepository) Delete(_ context.Context, id domain.EquipmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id.String()]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id.String())
	return nil
}

func (r *equipmentRepository) Exists(_ context.Context, id domain.EquipmentID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id.String()]
	return ok, nil
}

func (r *equipmentRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func (r *equipmentRepository) list(match func(domain.EquipmentSnapshot) bool) ([]*domain.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domain.Equipment
	for _, snap := range r.items {
		if !match(snap) {
			continue
		}
		e, err := domain.ReconstituteEquipment(snap)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}
