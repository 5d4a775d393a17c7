package domain

import (
	"errors"
	"time"
)

var ErrPeriodNotFuture = errors.New("reservation period must be in the future")

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusFulfilled ReservationStatus = "FULFILLED"
	ReservationStatusExpired   ReservationStatus = "EXPIRED"
)

var reservationStatuses = map[ReservationStatus]bool{
	ReservationStatusPending:   true,
	ReservationStatusConfirmed: true,
	ReservationStatusCancelled: true,
	ReservationStatusFulfilled: true,
	ReservationStatusExpired:   true,
}

// Reservation is a future booking of one piece of equipment for one member.
// CANCELLED, FULFILLED and EXPIRED are terminal.
type Reservation struct {
	id          ReservationID
	equipmentID EquipmentID
	memberID    MemberID
	period      DateRange
	status      ReservationStatus
	createdAt   time.Time
	confirmedAt *time.Time
	cancelledAt *time.Time
	fulfilledAt *time.Time
}

// NewReservation books equipment for a strictly future period.
func NewReservation(gen IDGenerator, equipmentID EquipmentID, memberID MemberID, period DateRange, now time.Time) (*Reservation, error) {
	if equipmentID.IsZero() || memberID.IsZero() {
		return nil, ErrEmptyID
	}
	if period.HasStarted(now) {
		return nil, ErrPeriodNotFuture
	}
	return &Reservation{
		id:          NewReservationID(gen),
		equipmentID: equipmentID,
		memberID:    memberID,
		period:      period,
		status:      ReservationStatusPending,
		createdAt:   now,
	}, nil
}

func (rv *Reservation) ID() ReservationID         { return rv.id }
func (rv *Reservation) EquipmentID() EquipmentID  { return rv.equipmentID }
func (rv *Reservation) MemberID() MemberID        { return rv.memberID }
func (rv *Reservation) Period() DateRange         { return rv.period }
func (rv *Reservation) Status() ReservationStatus { return rv.status }
func (rv *Reservation) CreatedAt() time.Time      { return rv.createdAt }

func (rv *Reservation) ConfirmedAt() *time.Time { return copyTime(rv.confirmedAt) }
func (rv *Reservation) CancelledAt() *time.Time { return copyTime(rv.cancelledAt) }
func (rv *Reservation) FulfilledAt() *time.Time { return copyTime(rv.fulfilledAt) }

// Confirm accepts a pending reservation. It fails once the booked window has
// already begun.
func (rv *Reservation) Confirm(now time.Time) error {
	if rv.status != ReservationStatusPending {
		return newTransitionError("confirm reservation", string(rv.status), "only pending reservations can be confirmed")
	}
	if rv.period.HasStarted(now) {
		return newTransitionError("confirm reservation", string(rv.status), "reservation window has already started")
	}
	rv.status = ReservationStatusConfirmed
	rv.confirmedAt = &now
	return nil
}

// Cancel withdraws a pending or confirmed reservation before its window has
// ended.
func (rv *Reservation) Cancel(now time.Time) error {
	if rv.status != ReservationStatusPending && rv.status != ReservationStatusConfirmed {
		return newTransitionError("cancel reservation", string(rv.status), "only pending or confirmed reservations can be cancelled")
	}
	if rv.period.HasEnded(now) {
		return newTransitionError("cancel reservation", string(rv.status), "reservation window has already ended")
	}
	rv.status = ReservationStatusCancelled
	rv.cancelledAt = &now
	return nil
}

// Fulfill converts a confirmed reservation into a rental. It is only legal
// once the booked window has begun; the rental itself is created by the
// orchestration layer.
func (rv *Reservation) Fulfill(now time.Time) error {
	if rv.status != ReservationStatusConfirmed {
		return newTransitionError("fulfill reservation", string(rv.status), "only confirmed reservations can be fulfilled")
	}
	if !rv.period.HasStarted(now) {
		return newTransitionError("fulfill reservation", string(rv.status), "reservation window has not started")
	}
	rv.status = ReservationStatusFulfilled
	rv.fulfilledAt = &now
	return nil
}

// MarkAsExpired writes off a pending or confirmed reservation whose window
// has ended without fulfillment.
func (rv *Reservation) MarkAsExpired(now time.Time) error {
	if rv.status != ReservationStatusPending && rv.status != ReservationStatusConfirmed {
		return newTransitionError("expire reservation", string(rv.status), "only pending or confirmed reservations can expire")
	}
	if !rv.period.HasEnded(now) {
		return newTransitionError("expire reservation", string(rv.status), "reservation window has not ended")
	}
	rv.status = ReservationStatusExpired
	return nil
}

// IsActive reports whether the reservation still holds a claim on its window.
func (rv *Reservation) IsActive(now time.Time) bool {
	if rv.status != ReservationStatusPending && rv.status != ReservationStatusConfirmed {
		return false
	}
	return !rv.period.HasEnded(now)
}

// IsReadyToFulfill reports whether the reservation can be converted into a
// rental right now.
func (rv *Reservation) IsReadyToFulfill(now time.Time) bool {
	return rv.status == ReservationStatusConfirmed && rv.period.HasStarted(now)
}

// Overlaps reports whether the reservation's window overlaps the given
// period. Used by conflict detection before booking the same equipment.
func (rv *Reservation) Overlaps(otherPeriod DateRange) bool {
	return rv.period.Overlaps(otherPeriod)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// ReservationSnapshot is the exported view of a Reservation, used by storage
// adapters and reconstitution.
type ReservationSnapshot struct {
	ID          string
	EquipmentID string
	MemberID    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      ReservationStatus
	CreatedAt   time.Time
	ConfirmedAt *time.Time
	CancelledAt *time.Time
	FulfilledAt *time.Time
}

func (rv *Reservation) Snapshot() ReservationSnapshot {
	return ReservationSnapshot{
		ID:          rv.id.String(),
		EquipmentID: rv.equipmentID.String(),
		MemberID:    rv.memberID.String(),
		PeriodStart: rv.period.Start(),
		PeriodEnd:   rv.period.End(),
		Status:      rv.status,
		CreatedAt:   rv.createdAt,
		ConfirmedAt: copyTime(rv.confirmedAt),
		CancelledAt: copyTime(rv.cancelledAt),
		FulfilledAt: copyTime(rv.fulfilledAt),
	}
}

// ReconstituteReservation rebuilds a Reservation from a stored snapshot.
// The future-period rule applies at creation only, so reconstitution accepts
// windows that have since begun.
func ReconstituteReservation(snap ReservationSnapshot) (*Reservation, error) {
	id, err := ParseReservationID(snap.ID)
	if err != nil {
		return nil, err
	}
	equipmentID, err := ParseEquipmentID(snap.EquipmentID)
	if err != nil {
		return nil, err
	}
	memberID, err := ParseMemberID(snap.MemberID)
	if err != nil {
		return nil, err
	}
	period, err := NewDateRange(snap.PeriodStart, snap.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if !reservationStatuses[snap.Status] {
		return nil, newTransitionError("reconstitute reservation", string(snap.Status), "unknown status")
	}
	return &Reservation{
		id:          id,
		equipmentID: equipmentID,
		memberID:    memberID,
		period:      period,
		status:      snap.Status,
		createdAt:   snap.CreatedAt,
		confirmedAt: copyTime(snap.ConfirmedAt),
		cancelledAt: copyTime(snap.CancelledAt),
		fulfilledAt: copyTime(snap.FulfilledAt),
	}, nil
}
