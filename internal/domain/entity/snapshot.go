package entity

import "strings"

// LineItem identifies one of the eight fixed P&L line items.
type LineItem string

const (
	ItemSales            LineItem = "sales"
	ItemMaterialCost     LineItem = "material_cost"
	ItemConsumablesCost  LineItem = "consumables_cost"
	ItemTransportCost    LineItem = "transport_cost"
	ItemLaborCost        LineItem = "labor_cost"
	ItemDepreciationCost LineItem = "depreciation_cost"
	ItemOtherFixedCost   LineItem = "other_fixed_cost"
	ItemSGACost          LineItem = "sga_cost"
)

// CostItems lists the cost line items in bridge order.
var CostItems = []LineItem{
	ItemMaterialCost,
	ItemConsumablesCost,
	ItemTransportCost,
	ItemLaborCost,
	ItemDepreciationCost,
	ItemOtherFixedCost,
	ItemSGACost,
}

// AllItems lists every line item, sales first.
var AllItems = append([]LineItem{ItemSales}, CostItems...)

// RequiredItems must be non-zero in both periods before a bridge is built.
var RequiredItems = []LineItem{ItemSales, ItemMaterialCost, ItemLaborCost, ItemSGACost}

var itemLabels = map[LineItem][2]string{
	ItemSales:            {"Sales", "Sales"},
	ItemMaterialCost:     {"Material Cost", "Material"},
	ItemConsumablesCost:  {"Consumables", "Consumables"},
	ItemTransportCost:    {"Transport", "Transport"},
	ItemLaborCost:        {"Labor Cost", "Labor"},
	ItemDepreciationCost: {"Depreciation", "Depreciation"},
	ItemOtherFixedCost:   {"Other Fixed Costs", "Fixed Exp."},
	ItemSGACost:          {"SG&A", "SG&A"},
}

// Label returns the name used in summary tables.
func (li LineItem) Label() string {
	if l, ok := itemLabels[li]; ok {
		return l[0]
	}
	return string(li)
}

// ShortLabel returns the name used under waterfall bars.
func (li LineItem) ShortLabel() string {
	if l, ok := itemLabels[li]; ok {
		return l[1]
	}
	return string(li)
}

// IsCost reports whether an increase of the item reduces operating profit.
func (li LineItem) IsCost() bool {
	return li != ItemSales
}

// IsRequired reports whether the item must be entered for both periods.
func (li LineItem) IsRequired() bool {
	for _, r := range RequiredItems {
		if r == li {
			return true
		}
	}
	return false
}

// ParseLineItem aceita a chave canônica, camelCase ou o rótulo de exibição.
func ParseLineItem(s string) (LineItem, bool) {
	key := normalizeItemKey(s)
	if key == "" {
		return "", false
	}
	for _, li := range AllItems {
		if key == normalizeItemKey(string(li)) ||
			key == normalizeItemKey(li.Label()) ||
			key == normalizeItemKey(li.ShortLabel()) {
			return li, true
		}
	}
	return "", false
}

func normalizeItemKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FinancialSnapshot holds one period's line items in thousand-currency-units.
type FinancialSnapshot struct {
	Sales            float64 `json:"sales" yaml:"sales" toml:"sales"`
	MaterialCost     float64 `json:"material_cost" yaml:"material_cost" toml:"material_cost"`
	ConsumablesCost  float64 `json:"consumables_cost" yaml:"consumables_cost" toml:"consumables_cost"`
	TransportCost    float64 `json:"transport_cost" yaml:"transport_cost" toml:"transport_cost"`
	LaborCost        float64 `json:"labor_cost" yaml:"labor_cost" toml:"labor_cost"`
	DepreciationCost float64 `json:"depreciation_cost" yaml:"depreciation_cost" toml:"depreciation_cost"`
	OtherFixedCost   float64 `json:"other_fixed_cost" yaml:"other_fixed_cost" toml:"other_fixed_cost"`
	SGACost          float64 `json:"sga_cost" yaml:"sga_cost" toml:"sga_cost"`
}

// Get returns the amount of a line item. Unknown items yield 0.
func (s FinancialSnapshot) Get(li LineItem) float64 {
	switch li {
	case ItemSales:
		return s.Sales
	case ItemMaterialCost:
		return s.MaterialCost
	case ItemConsumablesCost:
		return s.ConsumablesCost
	case ItemTransportCost:
		return s.TransportCost
	case ItemLaborCost:
		return s.LaborCost
	case ItemDepreciationCost:
		return s.DepreciationCost
	case ItemOtherFixedCost:
		return s.OtherFixedCost
	case ItemSGACost:
		return s.SGACost
	}
	return 0
}

// Set stores the amount of a line item. Unknown items are ignored.
func (s *FinancialSnapshot) Set(li LineItem, v float64) {
	switch li {
	case ItemSales:
		s.Sales = v
	case ItemMaterialCost:
		s.MaterialCost = v
	case ItemConsumablesCost:
		s.ConsumablesCost = v
	case ItemTransportCost:
		s.TransportCost = v
	case ItemLaborCost:
		s.LaborCost = v
	case ItemDepreciationCost:
		s.DepreciationCost = v
	case ItemOtherFixedCost:
		s.OtherFixedCost = v
	case ItemSGACost:
		s.SGACost = v
	}
}
