package memory

import (
	"context"
	"sync"
	"time"

	"equiprent-core/internal/domain"
	"equiprent-core/internal/repository"
)

type rentalRepository struct {
	mu    sync.RWMutex
	items map[string]domain.RentalSnapshot
}

func NewRentalRepository() repository.RentalRepository {
	return &rentalRepository{items: make(map[string]domain.RentalSnapshot)}
}

func (r *rentalRepository) Save(_ context.Context, rental *domain.Rental) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := rental.Snapshot()
	r.items[snap.ID] = snap
	return nil
}

func (r *rentalRepository) GetByID(_ context.Context, id domain.RentalID) (*domain.Rental, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.items[id.String()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return domain.ReconstituteRental(snap)
}

func (r *rentalRepository) ListByMember(_ context.Context, memberID domain.MemberID) ([]*domain.Rental, error) {
	return r.list(func(snap domain.RentalSnapshot) bool {
		return snap.MemberID == memberID.String()
	})
}

func (r *rentalRepository) ListByEquipment(_ context.Context, equipmentID domain.EquipmentID) ([]*domain.Rental, error) {
	return r.list(func(snap domain.RentalSnapshot) bool {
		return snap.EquipmentID == equipmentID.String()
	})
}

func (r *rentalRepository) ListByStatus(_ context.Context, status domain.RentalStatus) ([]*domain.Rental, error) {
	return r.list(func(snap domain.RentalSnapshot) bool {
		return snap.Status == status
	})
}

func (r *rentalRepository) ListActive(_ context.Context) ([]*domain.Rental, error) {
	return r.list(func(snap domain.RentalSnapshot) bool {
		return snap.Status == domain.RentalStatusActive || snap.Status == domain.RentalStatusOverdue
	})
}

func (r *rentalRepository) ListOverdue(_ context.Context, now time.Time) ([]*domain.Rental, error) {
	return r.list(func(snap domain.RentalSnapshot) bool {
		return snap.Status == domain.RentalStatusActive && !now.Before(snap.PeriodEnd)
	})
}

func (r *rentalRepository) ListCreatedBetween(_ context.Context, from, to time.Time) ([]*domain.Rental, error) {
	return r.list(func(snap domain.RentalSnapshot) bool {
		return !snap.CreatedAt.Before(from) && !snap.CreatedAt.After(to)
	})
}

func (r *rentalRepository) ListReturnedBetween(_ context.Context, from, to time.Time) ([]*domain.Rental, error) {
	return r.list(func(snap domain.RentalSnapshot) bool {
		if snap.ReturnedAt == nil {
			return false
		}
		return !snap.ReturnedAt.Before(from) && !snap.ReturnedAt.After(to)
	})
}

func (r *rentalRepository) Delete(_ context.Context, id domain.RentalID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id.String()]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id.String())
	return nil
}

func (r *rentalRepository) Exists(_ context.Context, id domain.RentalID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id.String()]
	return ok, nil
}

func (r *rentalRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func (r *rentalRepository) CountByStatus(_ context.Context, status domain.RentalStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, snap := range r.items {
		if snap.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *rentalRepository) list(match func(domain.RentalSnapshot) bool) ([]*domain.Rental, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domain.Rental
	for _, snap := range r.items {
		if !match(snap) {
			continue
		}
		rt, err := domain.ReconstituteRental(snap)
		if err != nil {
			return nil, err
		}
		result = append(result, rt)
	}
	return result, nil
}
