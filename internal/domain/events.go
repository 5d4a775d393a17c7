package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable fact emitted after a state transition. Events carry
// their own identity, occurrence time and the id of the owning aggregate;
// delivery is the event bus's concern.
type Event interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
}

// header carries the fields shared by every event. It stays unexported so
// payload marshalling sees only the event-specific fields.
type header struct {
	id          uuid.UUID
	occurredAt  time.Time
	aggregateID string
}

func newHeader(gen IDGenerator, now time.Time, aggregateID string) header {
	return header{id: gen(), occurredAt: now, aggregateID: aggregateID}
}

func (h header) EventID() uuid.UUID    { return h.id }
func (h header) OccurredAt() time.Time { return h.occurredAt }
func (h header) AggregateID() string   { return h.aggregateID }

const (
	EventTypeRentalCreated             = "RENTAL_CREATED"
	EventTypeRentalReturned            = "RENTAL_RETURNED"
	EventTypeRentalOverdue             = "RENTAL_OVERDUE"
	EventTypeRentalExtended            = "RENTAL_EXTENDED"
	EventTypeRentalCancelled           = "RENTAL_CANCELLED"
	EventTypeReservationCreated        = "RESERVATION_CREATED"
	EventTypeReservationConfirmed      = "RESERVATION_CONFIRMED"
	EventTypeReservationCancelled      = "RESERVATION_CANCELLED"
	EventTypeReservationFulfilled      = "RESERVATION_FULFILLED"
	EventTypeReservationExpired        = "RESERVATION_EXPIRED"
	EventTypeEquipmentConditionChanged = "EQUIPMENT_CONDITION_CHANGED"
	EventTypeMaintenanceRecorded       = "MAINTENANCE_RECORDED"
)

type RentalCreated struct {
	header
	RentalID       string    `json:"rental_id"`
	EquipmentID    string    `json:"equipment_id"`
	MemberID       string    `json:"member_id"`
	PeriodStart    time.Time `json:"period_start"`
	PeriodEnd      time.Time `json:"period_end"`
	DailyRateCents int64     `json:"daily_rate_cents"`
}

func (RentalCreated) EventType() string { return EventTypeRentalCreated }

func NewRentalCreated(gen IDGenerator, now time.Time, r *Rental, dailyRate Money) RentalCreated {
	return RentalCreated{
		header:         newHeader(gen, now, r.ID().String()),
		RentalID:       r.ID().String(),
		EquipmentID:    r.EquipmentID().String(),
		MemberID:       r.MemberID().String(),
		PeriodStart:    r.Period().Start(),
		PeriodEnd:      r.Period().End(),
		DailyRateCents: dailyRate.Cents(),
	}
}

type RentalReturned struct {
	header
	RentalID          string    `json:"rental_id"`
	EquipmentID       string    `json:"equipment_id"`
	ConditionAtReturn Condition `json:"condition_at_return"`
	LateFeeCents      int64     `json:"late_fee_cents"`
	DamageFeeCents    int64     `json:"damage_fee_cents"`
	TotalCostCents    int64     `json:"total_cost_cents"`
}

func (RentalReturned) EventType() string { return EventTypeRentalReturned }

func NewRentalReturned(gen IDGenerator, now time.Time, r *Rental, damageFee Money) RentalReturned {
	ev := RentalReturned{
		header:         newHeader(gen, now, r.ID().String()),
		RentalID:       r.ID().String(),
		EquipmentID:    r.EquipmentID().String(),
		LateFeeCents:   r.LateFee().Cents(),
		DamageFeeCents: damageFee.Cents(),
		TotalCostCents: r.TotalCost().Cents(),
	}
	if c := r.ConditionAtReturn(); c != nil {
		ev.ConditionAtReturn = *c
	}
	return ev
}

type RentalOverdue struct {
	header
	RentalID     string `json:"rental_id"`
	EquipmentID  string `json:"equipment_id"`
	MemberID     string `json:"member_id"`
	LateFeeCents int64  `json:"late_fee_cents"`
}

func (RentalOverdue) EventType() string { return EventTypeRentalOverdue }

func NewRentalOverdue(gen IDGenerator, now time.Time, r *Rental) RentalOverdue {
	return RentalOverdue{
		header:       newHeader(gen, now, r.ID().String()),
		RentalID:     r.ID().String(),
		EquipmentID:  r.EquipmentID().String(),
		MemberID:     r.MemberID().String(),
		LateFeeCents: r.LateFee().Cents(),
	}
}

type RentalExtended struct {
	header
	RentalID       string    `json:"rental_id"`
	AdditionalDays int       `json:"additional_days"`
	NewPeriodEnd   time.Time `json:"new_period_end"`
	TotalCostCents int64     `json:"total_cost_cents"`
}

func (RentalExtended) EventType() string { return EventTypeRentalExtended }

func NewRentalExtended(gen IDGenerator, now time.Time, r *Rental, additionalDays int) RentalExtended {
	return RentalExtended{
		header:         newHeader(gen, now, r.ID().String()),
		RentalID:       r.ID().String(),
		AdditionalDays: additionalDays,
		NewPeriodEnd:   r.Period().End(),
		TotalCostCents: r.TotalCost().Cents(),
	}
}

type RentalCancelled struct {
	header
	RentalID    string `json:"rental_id"`
	EquipmentID string `json:"equipment_id"`
}

func (RentalCancelled) EventType() string { return EventTypeRentalCancelled }

func NewRentalCancelled(gen IDGenerator, now time.Time, r *Rental) RentalCancelled {
	return RentalCancelled{
		header:      newHeader(gen, now, r.ID().String()),
		RentalID:    r.ID().String(),
		EquipmentID: r.EquipmentID().String(),
	}
}

type ReservationCreated struct {
	header
	ReservationID string    `json:"reservation_id"`
	EquipmentID   string    `json:"equipment_id"`
	MemberID      string    `json:"member_id"`
	PeriodStart   time.Time `json:"period_start"`
	PeriodEnd     time.Time `json:"period_end"`
}

func (ReservationCreated) EventType() string { return EventTypeReservationCreated }

func NewReservationCreated(gen IDGenerator, now time.Time, rv *Reservation) ReservationCreated {
	return ReservationCreated{
		header:        newHeader(gen, now, rv.ID().String()),
		ReservationID: rv.ID().String(),
		EquipmentID:   rv.EquipmentID().String(),
		MemberID:      rv.MemberID().String(),
		PeriodStart:   rv.Period().Start(),
		PeriodEnd:     rv.Period().End(),
	}
}

type ReservationConfirmed struct {
	header
	ReservationID string `json:"reservation_id"`
}

func (ReservationConfirmed) EventType() string { return EventTypeReservationConfirmed }

func NewReservationConfirmed(gen IDGenerator, now time.Time, rv *Reservation) ReservationConfirmed {
	return ReservationConfirmed{
		header:        newHeader(gen, now, rv.ID().String()),
		ReservationID: rv.ID().String(),
	}
}

type ReservationCancelled struct {
	header
	ReservationID string `json:"reservation_id"`
	Reason        string `json:"reason,omitempty"`
}

func (ReservationCancelled) EventType() string { return EventTypeReservationCancelled }

func NewReservationCancelled(gen IDGenerator, now time.Time, rv *Reservation, reason string) ReservationCancelled {
	return ReservationCancelled{
		header:        newHeader(gen, now, rv.ID().String()),
		ReservationID: rv.ID().String(),
		Reason:        reason,
	}
}

type ReservationFulfilled struct {
	header
	ReservationID string `json:"reservation_id"`
	RentalID      string `json:"rental_id"`
}

func (ReservationFulfilled) EventType() string { return EventTypeReservationFulfilled }

func NewReservationFulfilled(gen IDGenerator, now time.Time, rv *Reservation, rentalID RentalID) ReservationFulfilled {
	return ReservationFulfilled{
		header:        newHeader(gen, now, rv.ID().String()),
		ReservationID: rv.ID().String(),
		RentalID:      rentalID.String(),
	}
}

type ReservationExpired struct {
	header
	ReservationID string `json:"reservation_id"`
}

func (ReservationExpired) EventType() string { return EventTypeReservationExpired }

func NewReservationExpired(gen IDGenerator, now time.Time, rv *Reservation) ReservationExpired {
	return ReservationExpired{
		header:        newHeader(gen, now, rv.ID().String()),
		ReservationID: rv.ID().String(),
	}
}

type EquipmentConditionChanged struct {
	header
	EquipmentID  string    `json:"equipment_id"`
	OldCondition Condition `json:"old_condition"`
	NewCondition Condition `json:"new_condition"`
}

func (EquipmentConditionChanged) EventType() string { return EventTypeEquipmentConditionChanged }

func NewEquipmentConditionChanged(gen IDGenerator, now time.Time, e *Equipment, old Condition) EquipmentConditionChanged {
	return EquipmentConditionChanged{
		header:       newHeader(gen, now, e.ID().String()),
		EquipmentID:  e.ID().String(),
		OldCondition: old,
		NewCondition: e.Condition(),
	}
}

type MaintenanceRecorded struct {
	header
	EquipmentID string    `json:"equipment_id"`
	Date        time.Time `json:"date"`
}

func (MaintenanceRecorded) EventType() string { return EventTypeMaintenanceRecorded }

func NewMaintenanceRecorded(gen IDGenerator, now time.Time, e *Equipment, date time.Time) MaintenanceRecorded {
	return MaintenanceRecorded{
		header:      newHeader(gen, now, e.ID().String()),
		EquipmentID: e.ID().String(),
		Date:        date,
	}
}
