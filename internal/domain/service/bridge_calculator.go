// Package service holds the pure operating-profit bridge calculations.
package service

import "github.com/diillson/op-bridge-go/internal/domain/entity"

const (
	LabelBaseOP = "Comparison OP"
	LabelNowOP  = "Current OP"
)

// ComputeOperatingProfit returns sales minus the seven cost items.
func ComputeOperatingProfit(s entity.FinancialSnapshot) float64 {
	costs := s.MaterialCost +
		s.ConsumablesCost +
		s.TransportCost +
		s.LaborCost +
		s.DepreciationCost +
		s.OtherFixedCost +
		s.SGACost
	return s.Sales - costs
}

// ComputeBridge compares two snapshots and builds the waterfall that walks
// the base OP to the current OP: sales impact first, then each cost item in
// fixed order with its delta negated.
func ComputeBridge(base, now entity.FinancialSnapshot) entity.BridgeResult {
	baseOP := ComputeOperatingProfit(base)
	nowOP := ComputeOperatingProfit(now)

	var delta entity.Delta
	for _, li := range entity.AllItems {
		delta.Set(li, now.Get(li)-base.Get(li))
	}
	delta.OP = nowOP - baseOP

	bars := make([]entity.WaterfallBar, 0, len(entity.AllItems)+2)
	bars = append(bars, entity.WaterfallBar{
		Label:   LabelBaseOP,
		Value:   baseOP,
		Start:   0,
		End:     baseOP,
		IsTotal: true,
		Color:   entity.ColorGray,
	})

	cumulative := baseOP
	for _, li := range entity.AllItems {
		impact := delta.Get(li)
		// Aumento de custo reduz o lucro.
		if li.IsCost() {
			// 0 - x em vez de -x: custo inalterado dá 0, não -0
			impact = 0 - impact
		}
		bars = append(bars, entity.WaterfallBar{
			Label: li.ShortLabel(),
			Item:  li,
			Value: impact,
			Start: cumulative,
			End:   cumulative + impact,
			Color: impactColor(impact),
		})
		cumulative += impact
	}

	finalColor := entity.ColorBlue
	if nowOP < 0 {
		finalColor = entity.ColorRed
	}
	// Total bars are anchored to zero, not to the running cumulative.
	bars = append(bars, entity.WaterfallBar{
		Label:   LabelNowOP,
		Value:   nowOP,
		Start:   0,
		End:     nowOP,
		IsTotal: true,
		Color:   finalColor,
	})

	return entity.BridgeResult{
		Base:      entity.PeriodResult{OP: baseOP, Items: base},
		Now:       entity.PeriodResult{OP: nowOP, Items: now},
		Delta:     delta,
		Waterfall: bars,
	}
}

// WaterfallDrift returns the gap between the running total after the last
// incremental bar and the independently computed current OP.
func WaterfallDrift(r entity.BridgeResult) float64 {
	cumulative := r.Base.OP
	for _, bar := range r.Waterfall {
		if !bar.IsTotal {
			cumulative = bar.End
		}
	}
	return r.Now.OP - cumulative
}

func impactColor(impact float64) entity.BarColor {
	if impact >= 0 {
		return entity.ColorGreen
	}
	return entity.ColorRed
}
