package domain

import "errors"

var ErrUnknownCondition = errors.New("unknown condition")

// Condition is the ranked equipment-condition scale. Lower ranks are better;
// the rank order drives both rentability checks and damage-fee computation.
type Condition string

const (
	ConditionExcellent   Condition = "EXCELLENT"
	ConditionGood        Condition = "GOOD"
	ConditionFair        Condition = "FAIR"
	ConditionPoor        Condition = "POOR"
	ConditionDamaged     Condition = "DAMAGED"
	ConditionUnderRepair Condition = "UNDER_REPAIR"
)

var conditionRanks = map[Condition]int{
	ConditionExcellent:   0,
	ConditionGood:        1,
	ConditionFair:        2,
	ConditionPoor:        3,
	ConditionDamaged:     4,
	ConditionUnderRepair: 5,
}

// Rank returns the position of the condition on the ordered scale,
// EXCELLENT=0 through UNDER_REPAIR=5. Unknown conditions return -1.
func (c Condition) Rank() int {
	rank, ok := conditionRanks[c]
	if !ok {
		return -1
	}
	return rank
}

func (c Condition) Valid() bool {
	_, ok := conditionRanks[c]
	return ok
}

// IsRentable reports whether equipment in this condition may be handed out.
// Only EXCELLENT, GOOD and FAIR qualify.
func (c Condition) IsRentable() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair:
		return true
	default:
		return false
	}
}
