package service

import (
	"fmt"
	"math"

	"github.com/diillson/op-bridge-go/internal/domain/entity"
	"github.com/diillson/op-bridge-go/internal/shared/types"
)

// PeriodLabel names a period in validation messages.
func PeriodLabel(mode entity.ComparisonMode, isBase bool) string {
	if !isBase {
		return "Current month"
	}
	if mode == entity.ModeTarget {
		return "Target"
	}
	return "Previous month"
}

// ValidateInput checks the mode, that every required item is non-zero in
// both snapshots, and that amounts and the resulting OP are finite.
// Current-period messages come first.
func ValidateInput(in entity.BridgeInput) error {
	if !in.Mode.Valid() {
		return fmt.Errorf("%w: %q", types.ErrInvalidMode, in.Mode)
	}

	var msgs []string
	check := func(s entity.FinancialSnapshot, period string) {
		for _, li := range entity.RequiredItems {
			if s.Get(li) == 0 {
				msgs = append(msgs, fmt.Sprintf("%s %s is not entered", period, li.Label()))
			}
		}
		finite := true
		for _, li := range entity.AllItems {
			if !isFinite(s.Get(li)) {
				msgs = append(msgs, fmt.Sprintf("%s %s is not a finite number", period, li.Label()))
				finite = false
			}
		}
		if finite && !isFinite(ComputeOperatingProfit(s)) {
			msgs = append(msgs, fmt.Sprintf("%s operating profit is out of range", period))
		}
	}
	check(in.Now, PeriodLabel(in.Mode, false))
	check(in.Base, PeriodLabel(in.Mode, true))

	if len(msgs) > 0 {
		return &types.ValidationError{Messages: msgs}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
