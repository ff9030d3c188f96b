package entity

// BarColor is the display category of a waterfall bar.
type BarColor string

const (
	ColorGreen BarColor = "green"
	ColorRed   BarColor = "red"
	ColorGray  BarColor = "gray"
	ColorBlue  BarColor = "blue"
)

// PeriodResult pairs a period's operating profit with its source snapshot.
type PeriodResult struct {
	OP    float64           `json:"op" yaml:"op"`
	Items FinancialSnapshot `json:"items" yaml:"items"`
}

// Delta holds the field-wise difference now - base plus the OP difference.
type Delta struct {
	FinancialSnapshot `yaml:",inline"`
	OP                float64 `json:"op" yaml:"op"`
}

// WaterfallBar is one segment of the OP bridge chart.
type WaterfallBar struct {
	Label   string   `json:"label" yaml:"label"`
	Item    LineItem `json:"item,omitempty" yaml:"item,omitempty"`
	Value   float64  `json:"value" yaml:"value"`
	Start   float64  `json:"start" yaml:"start"`
	End     float64  `json:"end" yaml:"end"`
	IsTotal bool     `json:"is_total" yaml:"is_total"`
	Color   BarColor `json:"color" yaml:"color"`
}

// BridgeResult is the outcome of comparing two snapshots.
type BridgeResult struct {
	Base      PeriodResult   `json:"base" yaml:"base"`
	Now       PeriodResult   `json:"now" yaml:"now"`
	Delta     Delta          `json:"delta" yaml:"delta"`
	Waterfall []WaterfallBar `json:"waterfall" yaml:"waterfall"`
}
