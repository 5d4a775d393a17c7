package memory

import (
	"context"
	"sync"
	"time"

	"equiprent-core/internal/domain"
	"equiprent-core/internal/repository"
)

type reservationRepository struct {
	mu    sync.RWMutex
	items map[string]domain.ReservationSnapshot
}

func NewReservationRepository() repository.ReservationRepository {
	return &reservationRepository{items: make(map[string]domain.ReservationSnapshot)}
}

func (r *reservationRepository) Save(_ context.Context, reservation *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := reservation.Snapshot()
	r.items[snap.ID] = snap
	return nil
}

func (r *reservationRepository) GetByID(_ context.Context, id domain.ReservationID) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.items[id.String()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return domain.ReconstituteReservation(snap)
}

func (r *reservationRepository) ListByMember(_ context.Context, memberID domain.MemberID) ([]*domain.Reservation, error) {
	return r.list(func(rv *domain.Reservation) bool {
		return rv.MemberID().Equal(memberID)
	})
}

func (r *reservationRepository) ListByEquipment(_ context.Context, equipmentID domain.EquipmentID) ([]*domain.Reservation, error) {
	return r.list(func(rv *domain.Reservation) bool {
		return rv.EquipmentID().Equal(equipmentID)
	})
}

func (r *reservationRepository) ListByStatus(_ context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error) {
	return r.list(func(rv *domain.Reservation) bool {
		return rv.Status() == status
	})
}

func (r *reservationRepository) ListActive(_ context.Context, now time.Time) ([]*domain.Reservation, error) {
	return r.list(func(rv *domain.Reservation) bool {
		return rv.IsActive(now)
	})
}

func (r *reservationRepository) ListReadyToFulfill(_ context.Context, now time.Time) ([]*domain.Reservation, error) {
	return r.list(func(rv *domain.Reservation) bool {
		return rv.IsReadyToFulfill(now)
	})
}

func (r *reservationRepository) ListExpirable(_ context.Context, now time.Time) ([]*domain.Reservation, error) {
	return r.list(func(rv *domain.Reservation) bool {
		switch rv.Status() {
		case domain.ReservationStatusPending, domain.ReservationStatusConfirmed:
			return rv.Period().HasEnded(now)
		default:
			return false
		}
	})
}

func (r *reservationRepository) FindConflicting(_ context.Context, equipmentID domain.EquipmentID, period domain.DateRange, now time.Time) ([]*domain.Reservation, error) {
	return r.list(func(rv *domain.Reservation) bool {
		return rv.EquipmentID().Equal(equipmentID) && rv.IsActive(now) && rv.Overlaps(period)
	})
}

func (r *reservationRepository) Delete(_ context.Context, id domain.ReservationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id.String()]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id.String())
	return nil
}

func (r *reservationRepository) Exists(_ context.Context, id domain.ReservationID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id.String()]
	return ok, nil
}

func (r *reservationRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func (r *reservationRepository) list(match func(*domain.Reservation) bool) ([]*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domain.Reservation
	for _, snap := range r.items {
		rv, err := domain.ReconstituteReservation(snap)
		if err != nil {
			return nil, err
		}
		if match(rv) {
			result = append(result, rv)
		}
	}
	return result, nil
}
