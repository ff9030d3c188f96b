package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/op-bridge-go/internal/domain/entity"
	"github.com/diillson/op-bridge-go/internal/domain/service"
	"github.com/diillson/op-bridge-go/pkg/numfmt"
)

const (
	pdfChartScale = 0.32
	pdfChartLeft  = 20.0
	pdfChartTop   = 30.0
)

var (
	headerColor     = [3]int{40, 40, 40}
	headerTextColor = [3]int{255, 255, 255}
	bodyTextColor   = [3]int{50, 50, 50}
	lineColor       = [3]int{200, 200, 200}
	goodTextColor   = [3]int{0, 128, 0}
	badTextColor    = [3]int{192, 0, 0}
	mutedTextColor  = [3]int{128, 128, 128}
)

func toneColor(t entity.Tone) [3]int {
	switch t {
	case entity.ToneGood:
		return goodTextColor
	case entity.ToneBad:
		return badTextColor
	}
	return mutedTextColor
}

// buildPDF monta as duas páginas (resumo e cascata) em A4 paisagem.
func buildPDF(report entity.BridgeReport) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Operating Profit Bridge", false)
	pdf.SetCreationDate(report.GeneratedAt)
	// layout fixo de duas páginas; o rodapé fica abaixo da margem inferior
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	setText := func(c [3]int) { pdf.SetTextColor(c[0], c[1], c[2]) }

	header := func(title, subtitle string) {
		pdf.AddPage()
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		setText(headerTextColor)
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr("  "+title), "", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
		setText(bodyTextColor)
		meta := fmt.Sprintf("  %s   |   %s   |   %s   |   Unit: thousand", subtitle, report.Meta.SiteOrDefault(), report.Meta.YearMonth)
		pdf.CellFormat(0, 8, tr(meta), "", 1, "L", true, 0, "")
		pdf.Ln(6)
	}

	footer := func(page int) {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		setText(mutedTextColor)
		footerText := fmt.Sprintf("Generated by OP Bridge (Go) | report %s | %s", report.ID, report.GeneratedAt.Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", page), "", 0, "R", false, 0, "")
	}

	// Página 1: resumo de P&L
	header("Monthly P&L Summary", "Current month "+report.Meta.Mode.Label())

	pdf.SetFont("Arial", "B", 16)
	delta := report.Result.Delta.OP
	setText(toneColor(service.HeadlineTone(delta)))
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Operating profit change: %s", numfmt.Signed(delta))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{85, 48, 48, 48, 48}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(243, 244, 246)
	setText(bodyTextColor)
	for i, h := range []string{"Item", report.Meta.Mode.BaseLabel(), "Current Month", "Diff", "Ratio"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 8, tr(h), "B", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	for _, row := range report.Rows {
		style := ""
		if row.Bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		setText(bodyTextColor)
		pdf.CellFormat(widths[0], 8, tr(row.Label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, numfmt.Amount(row.Base), "B", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 8, numfmt.Amount(row.Now), "B", 0, "R", false, 0, "")
		setText(toneColor(row.Tone))
		pdf.CellFormat(widths[3], 8, numfmt.Signed(row.Diff), "B", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 8, numfmt.RatioPtr(row.Ratio), "B", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	setText(mutedTextColor)
	pdf.Cell(0, 6, "For cost items an increase worsens profit, so positive differences are shown in red.")
	footer(1)

	// Página 2: cascata
	header("Operating Profit Bridge (waterfall)", "Current month "+report.Meta.Mode.Label())
	drawChart(pdf, tr, layoutWaterfall(report.Result.Waterfall))

	worse, better := service.FactorMessages(report.Factors)
	y := pdfChartTop + chartHeight*pdfChartScale + 6
	drawFactorBox(pdf, tr, 15, y, "Main worsening factors", worse, badTextColor)
	drawFactorBox(pdf, tr, 150, y, "Main improving factors", better, goodTextColor)
	footer(2)

	return pdf
}

func drawChart(pdf *gofpdf.Fpdf, tr func(string) string, layout chartLayout) {
	s := pdfChartScale
	px := func(x float64) float64 { return pdfChartLeft + x*s }
	py := func(y float64) float64 { return pdfChartTop + y*s }

	pdf.SetLineWidth(0.2)
	pdf.SetFont("Arial", "", 7)
	for _, g := range layout.Grid {
		pdf.SetDrawColor(240, 240, 240)
		pdf.Line(px(padLeft), py(g.Y), px(layout.Width-padRight), py(g.Y))
		pdf.SetTextColor(153, 153, 153)
		pdf.Text(px(padLeft-10)-pdf.GetStringWidth(g.Label), py(g.Y+4), g.Label)
	}

	pdf.SetDrawColor(102, 102, 102)
	pdf.Line(px(padLeft), py(layout.ZeroY), px(layout.Width-padRight), py(layout.ZeroY))

	for _, b := range layout.Bars {
		c := b.Color.rgb
		pdf.SetFillColor(c[0], c[1], c[2])
		pdf.Rect(px(b.X), py(b.Y), b.W*s, b.H*s, "F")

		if b.Connector != nil {
			pdf.SetDrawColor(203, 213, 225)
			pdf.SetDashPattern([]float64{1.2, 0.6}, 0)
			pdf.Line(px(b.Connector.X1), py(b.Connector.Y), px(b.Connector.X2), py(b.Connector.Y))
			pdf.SetDashPattern([]float64{}, 0)
		}

		centre := px(b.X + b.W/2)
		pdf.SetFont("Arial", "B", 7)
		pdf.SetTextColor(55, 65, 81)
		label := tr(b.Label)
		pdf.Text(centre-pdf.GetStringWidth(label)/2, py(layout.Height-20), label)

		pdf.SetFont("Arial", "", 7)
		pdf.SetTextColor(31, 41, 55)
		pdf.Text(centre-pdf.GetStringWidth(b.ValueLabel)/2, py(b.Y-6), b.ValueLabel)
	}
}

func drawFactorBox(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, title string, lines []string, titleColor [3]int) {
	pdf.SetXY(x, y)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(titleColor[0], titleColor[1], titleColor[2])
	pdf.CellFormat(130, 7, tr(title), "B", 2, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	if len(lines) == 0 {
		pdf.SetTextColor(mutedTextColor[0], mutedTextColor[1], mutedTextColor[2])
		pdf.CellFormat(130, 6, "None", "", 2, "L", false, 0, "")
		return
	}
	for _, l := range lines {
		pdf.CellFormat(130, 6, tr("- "+l), "", 2, "L", false, 0, "")
	}
}
