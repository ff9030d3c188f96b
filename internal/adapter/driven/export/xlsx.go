package export

import (
	"fmt"

	"github.com/tealeg/xlsx/v2"

	"github.com/diillson/op-bridge-go/internal/domain/entity"
)

const (
	sheetSummary   = "Summary"
	sheetWaterfall = "Waterfall"
	amountFormat   = "#,##0"
)

// buildWorkbook gera a planilha com as abas de resumo e de cascata.
func buildWorkbook(report entity.BridgeReport) (*xlsx.File, error) {
	file := xlsx.NewFile()

	summary, err := file.AddSheet(sheetSummary)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet %q: %w", sheetSummary, err)
	}
	addStringRow(summary, "Site", report.Meta.SiteOrDefault())
	addStringRow(summary, "Year-Month", report.Meta.YearMonth)
	addStringRow(summary, "Comparison", report.Meta.Mode.Label())
	addStringRow(summary, "Item", report.Meta.Mode.BaseLabel(), "Current Month", "Diff", "Ratio (%)")
	for _, r := range report.Rows {
		row := summary.AddRow()
		row.AddCell().SetString(r.Label)
		row.AddCell().SetFloatWithFormat(r.Base, amountFormat)
		row.AddCell().SetFloatWithFormat(r.Now, amountFormat)
		row.AddCell().SetFloatWithFormat(r.Diff, amountFormat)
		if r.Ratio != nil {
			row.AddCell().SetFloatWithFormat(*r.Ratio, "0.0")
		} else {
			row.AddCell().SetString("-")
		}
	}

	waterfall, err := file.AddSheet(sheetWaterfall)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet %q: %w", sheetWaterfall, err)
	}
	addStringRow(waterfall, "Label", "Value", "Start", "End", "Total", "Color")
	for _, b := range report.Result.Waterfall {
		row := waterfall.AddRow()
		row.AddCell().SetString(b.Label)
		row.AddCell().SetFloatWithFormat(b.Value, amountFormat)
		row.AddCell().SetFloatWithFormat(b.Start, amountFormat)
		row.AddCell().SetFloatWithFormat(b.End, amountFormat)
		row.AddCell().SetBool(b.IsTotal)
		row.AddCell().SetString(string(b.Color))
	}

	return file, nil
}

func addStringRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
