package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName     = errors.New("equipment name cannot be empty")
	ErrEmptyCategory = errors.New("equipment category cannot be empty")
)

// MaintenanceInterval is how long equipment may go without maintenance
// before it is flagged.
const MaintenanceInterval = 90 * day

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentStatusRented      EquipmentStatus = "RENTED"
	EquipmentStatusUnavailable EquipmentStatus = "UNAVAILABLE"
)

// Equipment holds the condition and availability of a single rentable item.
// Availability is false whenever the condition is not rentable or a rental
// is in progress.
type Equipment struct {
	id                EquipmentID
	name              string
	description       string
	category          string
	dailyRate         Money
	condition         Condition
	available         bool
	activeRentalID    *RentalID
	purchaseDate      time.Time
	lastMaintenanceAt *time.Time
}

// NewEquipment registers a new item. Initial availability is derived from
// the condition.
func NewEquipment(gen IDGenerator, name, description, category string, dailyRate Money, condition Condition, purchaseDate time.Time) (*Equipment, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(category) == "" {
		return nil, ErrEmptyCategory
	}
	if !condition.Valid() {
		return nil, ErrUnknownCondition
	}
	return &Equipment{
		id:           NewEquipmentID(gen),
		name:         name,
		description:  description,
		category:     category,
		dailyRate:    dailyRate,
		condition:    condition,
		available:    condition.IsRentable(),
		purchaseDate: purchaseDate,
	}, nil
}

func (e *Equipment) ID() EquipmentID    { return e.id }
func (e *Equipment) Name() string       { return e.name }
func (e *Equipment) Description() string { return e.description }
func (e *Equipment) Category() string   { return e.category }
func (e *Equipment) DailyRate() Money   { return e.dailyRate }
func (e *Equipment) Condition() Condition { return e.condition }
func (e *Equipment) IsAvailable() bool  { return e.available }
func (e *Equipment) PurchaseDate() time.Time { return e.purchaseDate }

// ActiveRentalID returns the in-progress rental reference, or nil.
func (e *Equipment) ActiveRentalID() *RentalID {
	if e.activeRentalID == nil {
		return nil
	}
	id := *e.activeRentalID
	return &id
}

// LastMaintenanceAt returns the last recorded maintenance date, or nil.
func (e *Equipment) LastMaintenanceAt() *time.Time {
	if e.lastMaintenanceAt == nil {
		return nil
	}
	t := *e.lastMaintenanceAt
	return &t
}

// Status derives the current availability state.
func (e *Equipment) Status() EquipmentStatus {
	switch {
	case e.activeRentalID != nil:
		return EquipmentStatusRented
	case e.available:
		return EquipmentStatusAvailable
	default:
		return EquipmentStatusUnavailable
	}
}

// MarkAsRented hands the equipment out to a rental. It fails unless the
// equipment is currently available.
func (e *Equipment) MarkAsRented(rentalID RentalID) error {
	if rentalID.IsZero() {
		return ErrEmptyID
	}
	if e.activeRentalID != nil {
		return newTransitionError("mark as rented", string(e.Status()), "a rental is already in progress")
	}
	if !e.condition.IsRentable() {
		return newTransitionError("mark as rented", string(e.Status()), "equipment condition "+string(e.condition)+" is not rentable")
	}
	if !e.available {
		return newTransitionError("mark as rented", string(e.Status()), "equipment is not available")
	}
	e.available = false
	e.activeRentalID = &rentalID
	return nil
}

// MarkAsReturned takes the equipment back with its observed condition and
// recomputes availability.
func (e *Equipment) MarkAsReturned(newCondition Condition) error {
	if !newCondition.Valid() {
		return ErrUnknownCondition
	}
	if e.activeRentalID == nil {
		return newTransitionError("mark as returned", string(e.Status()), "no rental is in progress")
	}
	e.activeRentalID = nil
	e.condition = newCondition
	e.available = newCondition.IsRentable()
	return nil
}

// UpdateCondition records a new condition. Availability is recomputed only
// when no rental is in progress; a rented item stays unavailable.
func (e *Equipment) UpdateCondition(newCondition Condition) error {
	if !newCondition.Valid() {
		return ErrUnknownCondition
	}
	e.condition = newCondition
	if e.activeRentalID == nil {
		e.available = newCondition.IsRentable()
	}
	return nil
}

// RecordMaintenance stores the maintenance date unconditionally.
func (e *Equipment) RecordMaintenance(date time.Time) {
	e.lastMaintenanceAt = &date
}

// NeedsMaintenance reports whether the maintenance interval has elapsed
// since the last maintenance, or since purchase if none was recorded.
func (e *Equipment) NeedsMaintenance(now time.Time) bool {
	reference := e.purchaseDate
	if e.lastMaintenanceAt != nil {
		reference = *e.lastMaintenanceAt
	}
	return now.Sub(reference) >= MaintenanceInterval
}

// UpdateDailyRate sets a new daily rate. Zero is permitted, for promotions;
// negative rates are unrepresentable by Money.
func (e *Equipment) UpdateDailyRate(rate Money) {
	e.dailyRate = rate
}

// CalculateRentalCost prices a rental of the given length at the current
// daily rate.
func (e *Equipment) CalculateRentalCost(days int) (Money, error) {
	if days <= 0 {
		return Money{}, ErrNonPositiveDays
	}
	return e.dailyRate.Multiply(float64(days))
}

// EquipmentSnapshot is the exported view of an Equipment, used by storage
// adapters and reconstitution.
type EquipmentSnapshot struct {
	ID                string
	Name              string
	Description       string
	Category          string
	DailyRateCents    int64
	Condition         Condition
	Available         bool
	ActiveRentalID    string
	PurchaseDate      time.Time
	LastMaintenanceAt *time.Time
}

func (e *Equipment) Snapshot() EquipmentSnapshot {
	snap := EquipmentSnapshot{
		ID:             e.id.String(),
		Name:           e.name,
		Description:    e.description,
		Category:       e.category,
		DailyRateCents: e.dailyRate.Cents(),
		Condition:      e.condition,
		Available:      e.available,
		PurchaseDate:   e.purchaseDate,
	}
	if e.activeRentalID != nil {
		snap.ActiveRentalID = e.activeRentalID.String()
	}
	if e.lastMaintenanceAt != nil {
		t := *e.lastMaintenanceAt
		snap.LastMaintenanceAt = &t
	}
	return snap
}

// ReconstituteEquipment rebuilds an Equipment from a stored snapshot.
func ReconstituteEquipment(snap EquipmentSnapshot) (*Equipment, error) {
	id, err := ParseEquipmentID(snap.ID)
	if err != nil {
		return nil, err
	}
	rate, err := NewMoney(snap.DailyRateCents)
	if err != nil {
		return nil, err
	}
	if !snap.Condition.Valid() {
		return nil, ErrUnknownCondition
	}
	e := &Equipment{
		id:           id,
		name:         snap.Name,
		description:  snap.Description,
		category:     snap.Category,
		dailyRate:    rate,
		condition:    snap.Condition,
		available:    snap.Available,
		purchaseDate: snap.PurchaseDate,
	}
	if snap.ActiveRentalID != "" {
		rentalID, err := ParseRentalID(snap.ActiveRentalID)
		if err != nil {
			return nil, err
		}
		e.activeRentalID = &rentalID
	}
	if snap.LastMaintenanceAt != nil {
		t := *snap.LastMaintenanceAt
		e.lastMaintenanceAt = &t
	}
	return e, nil
}
