package entity

import "time"

// ComparisonMode selects what the base period represents.
type ComparisonMode string

const (
	ModePreviousMonth ComparisonMode = "prev"
	ModeTarget        ComparisonMode = "target"
)

// Valid reports whether the mode is one of the known values.
func (m ComparisonMode) Valid() bool {
	return m == ModePreviousMonth || m == ModeTarget
}

// Label is the report subtitle, e.g. "vs Previous Month".
func (m ComparisonMode) Label() string {
	if m == ModeTarget {
		return "vs Target"
	}
	return "vs Previous Month"
}

// BaseLabel names the base column.
func (m ComparisonMode) BaseLabel() string {
	if m == ModeTarget {
		return "Target"
	}
	return "Previous Month"
}

// ReportMeta carries the descriptive fields printed in report headers.
type ReportMeta struct {
	YearMonth string         `json:"year_month" yaml:"year_month"`
	SiteName  string         `json:"site_name" yaml:"site_name"`
	Mode      ComparisonMode `json:"mode" yaml:"mode"`
}

// SiteOrDefault returns the site name or a placeholder when empty.
func (m ReportMeta) SiteOrDefault() string {
	if m.SiteName == "" {
		return "(no site name)"
	}
	return m.SiteName
}

// BridgeInput is the form state: metadata plus the two snapshots.
type BridgeInput struct {
	Mode      ComparisonMode    `json:"mode" yaml:"mode" toml:"mode"`
	YearMonth string            `json:"year_month" yaml:"year_month" toml:"year_month"`
	SiteName  string            `json:"site_name" yaml:"site_name" toml:"site_name"`
	Base      FinancialSnapshot `json:"base" yaml:"base" toml:"base"`
	Now       FinancialSnapshot `json:"now" yaml:"now" toml:"now"`
}

// Meta extracts the report metadata.
func (in BridgeInput) Meta() ReportMeta {
	return ReportMeta{YearMonth: in.YearMonth, SiteName: in.SiteName, Mode: in.Mode}
}

// Tone classifies a difference as good or bad for profit.
type Tone string

const (
	ToneGood    Tone = "good"
	ToneBad     Tone = "bad"
	ToneNeutral Tone = "neutral"
)

// SummaryRow is one line of the P&L comparison table.
type SummaryRow struct {
	Item   LineItem `json:"item,omitempty"`
	Label  string   `json:"label"`
	Base   float64  `json:"base"`
	Now    float64  `json:"now"`
	Diff   float64  `json:"diff"`
	Ratio  *float64 `json:"ratio,omitempty"`
	IsCost bool     `json:"is_cost"`
	Bold   bool     `json:"bold"`
	Tone   Tone     `json:"tone"`
}

// Factor is a single non-total waterfall movement.
type Factor struct {
	Label  string   `json:"label"`
	Item   LineItem `json:"item"`
	Impact float64  `json:"impact"`
}

// KeyFactors are the main drivers behind the OP change.
type KeyFactors struct {
	Worsening []Factor `json:"worsening"`
	Improving []Factor `json:"improving"`
}

// BridgeReport is everything the renderers need.
type BridgeReport struct {
	ID          string       `json:"id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Meta        ReportMeta   `json:"meta"`
	Result      BridgeResult `json:"result"`
	Rows        []SummaryRow `json:"rows"`
	Factors     KeyFactors   `json:"factors"`
}
