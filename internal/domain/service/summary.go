package service

import (
	"fmt"
	"sort"

	"github.com/diillson/op-bridge-go/internal/domain/entity"
	"github.com/diillson/op-bridge-go/pkg/numfmt"
)

const LabelOperatingProfit = "Operating Profit"

// Quantidade de fatores exibidos no rodapé da cascata.
const (
	MaxWorseningFactors = 2
	MaxImprovingFactors = 1
)

// ChangeRatio returns (now-base)/base*100. ok is false when base is zero.
func ChangeRatio(base, now float64) (ratio float64, ok bool) {
	if base == 0 {
		return 0, false
	}
	return (now - base) / base * 100, true
}

// ToneOf classifies a difference. For cost rows an increase is bad.
func ToneOf(diff float64, isCost bool) entity.Tone {
	switch {
	case diff == 0:
		return entity.ToneNeutral
	case isCost && diff > 0, !isCost && diff < 0:
		return entity.ToneBad
	default:
		return entity.ToneGood
	}
}

// HeadlineTone colours the OP change headline: no change counts as good.
func HeadlineTone(deltaOP float64) entity.Tone {
	if deltaOP >= 0 {
		return entity.ToneGood
	}
	return entity.ToneBad
}

// BuildSummaryRows produces the P&L comparison table: sales, the seven
// costs and operating profit.
func BuildSummaryRows(r entity.BridgeResult) []entity.SummaryRow {
	rows := make([]entity.SummaryRow, 0, len(entity.AllItems)+1)
	for _, li := range entity.AllItems {
		rows = append(rows, summaryRow(li, li.Label(), r.Base.Items.Get(li), r.Now.Items.Get(li), li.IsCost(), !li.IsCost()))
	}
	rows = append(rows, summaryRow("", LabelOperatingProfit, r.Base.OP, r.Now.OP, false, true))
	return rows
}

func summaryRow(li entity.LineItem, label string, base, now float64, isCost, bold bool) entity.SummaryRow {
	diff := now - base
	row := entity.SummaryRow{
		Item:   li,
		Label:  label,
		Base:   base,
		Now:    now,
		Diff:   diff,
		IsCost: isCost,
		Bold:   bold,
		Tone:   ToneOf(diff, isCost),
	}
	if ratio, ok := ChangeRatio(base, now); ok {
		row.Ratio = &ratio
	}
	return row
}

// KeyFactors picks the largest negative movements (worst first) and the
// largest positive ones from the incremental waterfall bars.
func KeyFactors(bars []entity.WaterfallBar, maxWorsening, maxImproving int) entity.KeyFactors {
	var bad, good []entity.Factor
	for _, bar := range bars {
		if bar.IsTotal {
			continue
		}
		f := entity.Factor{Label: bar.Label, Item: bar.Item, Impact: bar.Value}
		switch {
		case bar.Value < 0:
			bad = append(bad, f)
		case bar.Value > 0:
			good = append(good, f)
		}
	}

	sort.SliceStable(bad, func(i, j int) bool { return bad[i].Impact < bad[j].Impact })
	sort.SliceStable(good, func(i, j int) bool { return good[i].Impact > good[j].Impact })

	if len(bad) > maxWorsening {
		bad = bad[:maxWorsening]
	}
	if len(good) > maxImproving {
		good = good[:maxImproving]
	}
	return entity.KeyFactors{Worsening: bad, Improving: good}
}

// FactorMessages renders the key factors as report sentences. Amounts are in
// thousand-currency-units.
func FactorMessages(f entity.KeyFactors) (worsening, improving []string) {
	for _, w := range f.Worsening {
		worsening = append(worsening, fmt.Sprintf("%s likely pushed OP down by %s thousand.", w.Label, numfmt.Amount(-w.Impact)))
	}
	for _, g := range f.Improving {
		improving = append(improving, fmt.Sprintf("%s appears to have added %s thousand to OP.", g.Label, numfmt.Amount(g.Impact)))
	}
	return worsening, improving
}
