package domain

import (
	"math"
	"time"
)

type RentalStatus string

const (
	// RentalStatusReserved is a legal stored value but no transition in this
	// package produces it.
	RentalStatusReserved  RentalStatus = "RESERVED"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusOverdue   RentalStatus = "OVERDUE"
	RentalStatusReturned  RentalStatus = "RETURNED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

var rentalStatuses = map[RentalStatus]bool{
	RentalStatusReserved:  true,
	RentalStatusActive:    true,
	RentalStatusOverdue:   true,
	RentalStatusReturned:  true,
	RentalStatusCancelled: true,
}

// DefaultDailyLateFee is the late-fee rate applied by Return when the
// caller has not marked the rental overdue at an explicit rate.
var DefaultDailyLateFee = Money{cents: 1_000}

// DamageFeeStep is the flat fee per condition step of degradation beyond
// ordinary wear.
var DamageFeeStep = Money{cents: 5_000}

// freeWearSteps is the number of condition steps treated as ordinary wear.
const freeWearSteps = 1

// Rental is an in-progress loan of one piece of equipment to one member.
// Total cost always equals base cost + late fee + damage fee, except for
// cancelled rentals where it is forced to zero.
type Rental struct {
	id                RentalID
	equipmentID       EquipmentID
	memberID          MemberID
	period            DateRange
	status            RentalStatus
	baseCost          Money
	lateFee           Money
	damageFee         Money
	totalCost         Money
	conditionAtStart  Condition
	conditionAtReturn *Condition
	returnedAt        *time.Time
	createdAt         time.Time
}

// NewRental starts a loan in ACTIVE status. Unlike reservations, rental
// periods carry no future/past restriction.
func NewRental(gen IDGenerator, equipmentID EquipmentID, memberID MemberID, period DateRange, baseCost Money, conditionAtStart Condition, now time.Time) (*Rental, error) {
	if equipmentID.IsZero() || memberID.IsZero() {
		return nil, ErrEmptyID
	}
	if !conditionAtStart.Valid() {
		return nil, ErrUnknownCondition
	}
	return &Rental{
		id:               NewRentalID(gen),
		equipmentID:      equipmentID,
		memberID:         memberID,
		period:           period,
		status:           RentalStatusActive,
		baseCost:         baseCost,
		lateFee:          ZeroMoney(),
		damageFee:        ZeroMoney(),
		totalCost:        baseCost,
		conditionAtStart: conditionAtStart,
		createdAt:        now,
	}, nil
}

func (r *Rental) ID() RentalID                { return r.id }
func (r *Rental) EquipmentID() EquipmentID    { return r.equipmentID }
func (r *Rental) MemberID() MemberID          { return r.memberID }
func (r *Rental) Period() DateRange           { return r.period }
func (r *Rental) Status() RentalStatus        { return r.status }
func (r *Rental) BaseCost() Money             { return r.baseCost }
func (r *Rental) LateFee() Money              { return r.lateFee }
func (r *Rental) TotalCost() Money            { return r.totalCost }
func (r *Rental) ConditionAtStart() Condition { return r.conditionAtStart }
func (r *Rental) CreatedAt() time.Time        { return r.createdAt }

func (r *Rental) ConditionAtReturn() *Condition {
	if r.conditionAtReturn == nil {
		return nil
	}
	c := *r.conditionAtReturn
	return &c
}

func (r *Rental) ReturnedAt() *time.Time {
	if r.returnedAt == nil {
		return nil
	}
	t := *r.returnedAt
	return &t
}

// DurationDays returns the rental period length in days.
func (r *Rental) DurationDays() int {
	return r.period.DayCount()
}

// IsOverdue reports whether the rental is still active past its period end.
func (r *Rental) IsOverdue(now time.Time) bool {
	return r.status == RentalStatusActive && r.period.HasEnded(now)
}

// daysLate counts full or partial days elapsed since the period end.
func (r *Rental) daysLate(now time.Time) int {
	return int(math.Ceil(now.Sub(r.period.End()).Hours() / 24))
}

// MarkAsOverdue transitions an active rental past its end date to OVERDUE,
// accruing a late fee at the given daily rate.
func (r *Rental) MarkAsOverdue(dailyLateFeeRate Money, now time.Time) error {
	if r.status != RentalStatusActive {
		return newTransitionError("mark as overdue", string(r.status), "only active rentals can become overdue")
	}
	if !r.period.HasEnded(now) {
		return newTransitionError("mark as overdue", string(r.status), "rental period has not ended")
	}
	fee, err := dailyLateFeeRate.Multiply(float64(r.daysLate(now)))
	if err != nil {
		return err
	}
	r.status = RentalStatusOverdue
	r.lateFee = fee
	r.recomputeTotal()
	return nil
}

// Return completes the loan. Lateness is charged at DefaultDailyLateFee,
// replacing any previously accrued fee, and the damage fee supplied by the
// caller is added on top.
func (r *Rental) Return(conditionAtReturn Condition, damageFee Money, now time.Time) error {
	if r.status == RentalStatusReturned || r.status == RentalStatusCancelled {
		return newTransitionError("return rental", string(r.status), "rental is already completed")
	}
	if !conditionAtReturn.Valid() {
		return ErrUnknownCondition
	}
	lateFee := ZeroMoney()
	if r.period.HasEnded(now) {
		fee, err := DefaultDailyLateFee.Multiply(float64(r.daysLate(now)))
		if err != nil {
			return err
		}
		lateFee = fee
	}
	r.status = RentalStatusReturned
	r.lateFee = lateFee
	r.damageFee = damageFee
	r.conditionAtReturn = &conditionAtReturn
	r.returnedAt = &now
	r.recomputeTotal()
	return nil
}

// ExtendPeriod lengthens the loan and re-activates it. Extending an overdue
// rental clears the accrued late fee; extension is how a member buys out
// lateness.
func (r *Rental) ExtendPeriod(additionalDays int, additionalCost Money) error {
	if r.status != RentalStatusActive && r.status != RentalStatusOverdue {
		return newTransitionError("extend period", string(r.status), "only active or overdue rentals can be extended")
	}
	if additionalDays <= 0 {
		return ErrNonPositiveDays
	}
	extended, err := r.period.Extend(additionalDays)
	if err != nil {
		return err
	}
	r.period = extended
	r.baseCost = r.baseCost.Add(additionalCost)
	r.lateFee = ZeroMoney()
	r.status = RentalStatusActive
	r.recomputeTotal()
	return nil
}

// Cancel voids the loan and waives all accrued cost. Completed rentals
// cannot be cancelled.
func (r *Rental) Cancel() error {
	if r.status == RentalStatusReturned || r.status == RentalStatusCancelled {
		return newTransitionError("cancel rental", string(r.status), "completed rentals cannot be cancelled")
	}
	r.status = RentalStatusCancelled
	r.totalCost = ZeroMoney()
	return nil
}

// DamageFee prices the condition degradation observed at return. A single
// step of degradation is ordinary wear and free; each further step costs a
// flat DamageFeeStep. Pure query; callers invoke it before Return and pass
// the result in.
func (r *Rental) DamageFee(observedCondition Condition) (Money, error) {
	if !observedCondition.Valid() {
		return Money{}, ErrUnknownCondition
	}
	diff := observedCondition.Rank() - r.conditionAtStart.Rank()
	if diff <= freeWearSteps {
		return ZeroMoney(), nil
	}
	return DamageFeeStep.Multiply(float64(diff - freeWearSteps))
}

func (r *Rental) recomputeTotal() {
	r.totalCost = r.baseCost.Add(r.lateFee).Add(r.damageFee)
}

// RentalSnapshot is the exported view of a Rental, used by storage adapters
// and reconstitution.
type RentalSnapshot struct {
	ID                string
	EquipmentID       string
	MemberID          string
	PeriodStart       time.Time
	PeriodEnd         time.Time
	Status            RentalStatus
	BaseCostCents     int64
	LateFeeCents      int64
	DamageFeeCents    int64
	TotalCostCents    int64
	ConditionAtStart  Condition
	ConditionAtReturn *Condition
	ReturnedAt        *time.Time
	CreatedAt         time.Time
}

func (r *Rental) Snapshot() RentalSnapshot {
	snap := RentalSnapshot{
		ID:               r.id.String(),
		EquipmentID:      r.equipmentID.String(),
		MemberID:         r.memberID.String(),
		PeriodStart:      r.period.Start(),
		PeriodEnd:        r.period.End(),
		Status:           r.status,
		BaseCostCents:    r.baseCost.Cents(),
		LateFeeCents:     r.lateFee.Cents(),
		DamageFeeCents:   r.damageFee.Cents(),
		TotalCostCents:   r.totalCost.Cents(),
		ConditionAtStart: r.conditionAtStart,
		CreatedAt:        r.createdAt,
	}
	if r.conditionAtReturn != nil {
		c := *r.conditionAtReturn
		snap.ConditionAtReturn = &c
	}
	if r.returnedAt != nil {
		t := *r.returnedAt
		snap.ReturnedAt = &t
	}
	return snap
}

// ReconstituteRental rebuilds a Rental from a stored snapshot.
func ReconstituteRental(snap RentalSnapshot) (*Rental, error) {
	id, err := ParseRentalID(snap.ID)
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
	if !rentalStatuses[snap.Status] {
		return nil, newTransitionError("reconstitute rental", string(snap.Status), "unknown status")
	}
	baseCost, err := NewMoney(snap.BaseCostCents)
	if err != nil {
		return nil, err
	}
	lateFee, err := NewMoney(snap.LateFeeCents)
	if err != nil {
		return nil, err
	}
	damageFee, err := NewMoney(snap.DamageFeeCents)
	if err != nil {
		return nil, err
	}
	totalCost, err := NewMoney(snap.TotalCostCents)
	if err != nil {
		return nil, err
	}
	if !snap.ConditionAtStart.Valid() {
		return nil, ErrUnknownCondition
	}
	r := &Rental{
		id:               id,
		equipmentID:      equipmentID,
		memberID:         memberID,
		period:           period,
		status:           snap.Status,
		baseCost:         baseCost,
		lateFee:          lateFee,
		damageFee:        damageFee,
		totalCost:        totalCost,
		conditionAtStart: snap.ConditionAtStart,
		createdAt:        snap.CreatedAt,
	}
	if snap.ConditionAtReturn != nil {
		if !snap.ConditionAtReturn.Valid() {
			return nil, ErrUnknownCondition
		}
		c := *snap.ConditionAtReturn
		r.conditionAtReturn = &c
	}
	if snap.ReturnedAt != nil {
		t := *snap.ReturnedAt
		r.returnedAt = &t
	}
	return r, nil
}
