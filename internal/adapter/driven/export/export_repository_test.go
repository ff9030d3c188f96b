package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/diillson/op-bridge-go/internal/domain/entity"
	"github.com/diillson/op-bridge-go/internal/domain/service"
)

func sampleReport() entity.BridgeReport {
	base := entity.FinancialSnapshot{Sales: 1000, MaterialCost: 300, LaborCost: 200, SGACost: 100}
	now := entity.FinancialSnapshot{Sales: 1100, MaterialCost: 350, LaborCost: 200, SGACost: 100}
	result := service.ComputeBridge(base, now)
	return entity.BridgeReport{
		ID:          "test-report",
		GeneratedAt: time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
		Meta:        entity.ReportMeta{YearMonth: "2026-01", SiteName: "Osaka <Plant>", Mode: entity.ModePreviousMonth},
		Result:      result,
		Rows:        service.BuildSummaryRows(result),
		Factors:     service.KeyFactors(result.Waterfall, 3, 2),
	}
}

func fixedClock(t *testing.T) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return time.Date(2026, 2, 3, 10, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { timeNow = prev })
}

func TestLayoutWaterfall(t *testing.T) {
	layout := layoutWaterfall(sampleReport().Result.Waterfall)

	// max 500, min 0, buffer 50 -> y range [-50, 550]
	assert.Equal(t, chartWidth, layout.Width)
	assert.InDelta(t, 315.0, layout.ZeroY, 1e-9)
	require.Len(t, layout.Grid, 5)
	assert.InDelta(t, 340.0, layout.Grid[0].Y, 1e-9)
	assert.InDelta(t, 40.0, layout.Grid[4].Y, 1e-9)

	require.Len(t, layout.Bars, 10)
	first := layout.Bars[0]
	assert.InDelta(t, 70.65, first.X, 1e-9)
	assert.InDelta(t, 49.7, first.W, 1e-9)
	assert.InDelta(t, 115.0, first.Y, 1e-9)
	assert.InDelta(t, 200.0, first.H, 1e-9)
	assert.Equal(t, "#9ca3af", first.Color.hex)
	require.NotNil(t, first.Connector)
	assert.InDelta(t, 115.0, first.Connector.Y, 1e-9)
	assert.InDelta(t, 120.35, first.Connector.X1, 1e-9)
	assert.InDelta(t, 152.3, first.Connector.X2, 1e-9)

	// consumables não mudou: altura mínima de 1
	assert.InDelta(t, 1.0, layout.Bars[3].H, 1e-9)
	assert.Equal(t, "#ef4444", layout.Bars[2].Color.hex)
	assert.Equal(t, "-50", layout.Bars[2].ValueLabel)

	last := layout.Bars[9]
	assert.Nil(t, last.Connector)
	assert.Equal(t, "#3b82f6", last.Color.hex)
}

func TestLayoutWaterfall_AllZero(t *testing.T) {
	layout := layoutWaterfall(service.ComputeBridge(entity.FinancialSnapshot{}, entity.FinancialSnapshot{}).Waterfall)

	// range vazio usa 1000 como padrão
	assert.InDelta(t, 190.0, layout.ZeroY, 1e-9)
	for _, b := range layout.Bars {
		assert.InDelta(t, 1.0, b.H, 1e-9)
	}
}

func TestLayoutWaterfall_NoBars(t *testing.T) {
	layout := layoutWaterfall(nil)
	assert.Empty(t, layout.Bars)
	assert.Len(t, layout.Grid, 5)
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExportRepository().RenderSVG(&buf, sampleReport()))

	svg := buf.String()
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
	assert.Equal(t, 10, strings.Count(svg, "<g>"))
	assert.Equal(t, 9, strings.Count(svg, "stroke-dasharray"))
	assert.Contains(t, svg, ">Comparison OP<")
	assert.Contains(t, svg, ">Fixed Exp.<")
	assert.Contains(t, svg, ">100</text>")
	assert.Contains(t, svg, "#22c55e")
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExportRepository().RenderHTML(&buf, sampleReport()))

	page := buf.String()
	assert.Contains(t, page, "Osaka &lt;Plant&gt;")
	assert.NotContains(t, page, "Osaka <Plant>")
	assert.Contains(t, page, "<svg")
	assert.Contains(t, page, "<h4>Main worsening factors</h4>")
	assert.Contains(t, page, "<li>Material likely pushed OP down by 50 thousand.</li>")
	assert.Contains(t, page, "<li>Sales appears to have added 100 thousand to OP.</li>")
	assert.Contains(t, page, `class="good">+50`)
	assert.Contains(t, page, "<th>Previous Month</th>")
}

func TestRenderHTML_UnchangedOPIsGood(t *testing.T) {
	report := sampleReport()
	result := service.ComputeBridge(report.Result.Base.Items, report.Result.Base.Items)
	report.Result = result
	report.Rows = service.BuildSummaryRows(result)

	var buf bytes.Buffer
	require.NoError(t, NewExportRepository().RenderHTML(&buf, report))
	assert.Contains(t, buf.String(), `class="headline good">OP change: 0`)
}

func TestCommentaryMarkdown_Empty(t *testing.T) {
	md := commentaryMarkdown(entity.KeyFactors{})
	assert.Equal(t, 2, strings.Count(md, "_None_"))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `a\_b \*c\* &lt;d&gt;`, escapeMarkdown("a_b *c* <d>"))
}

func TestGenerateFilename(t *testing.T) {
	fixedClock(t)
	dir := filepath.Join(t.TempDir(), "nested", "out")

	name, err := generateFilename("op_bridge", dir, "csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "op_bridge_20260203_100405.csv"), name)
	assert.DirExists(t, dir)
}

func TestExportToCSV(t *testing.T) {
	fixedClock(t)
	path, err := NewExportRepository().ExportToCSV(sampleReport(), "bridge", t.TempDir())
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Report ID", "test-report"}, records[0])
	// linhas em branco são ignoradas pelo csv.Reader
	assert.Equal(t, []string{"Item", "Previous Month", "Current Month", "Diff", "Ratio"}, records[4])
	assert.Equal(t, []string{"Sales", "1000", "1100", "100", "10.0%"}, records[5])
	assert.Equal(t, []string{"Operating Profit", "400", "450", "50", "12.5%"}, records[13])
	assert.Equal(t, []string{"Label", "Value", "Start", "End", "Total", "Color"}, records[14])
	assert.Equal(t, []string{"Current OP", "450", "0", "450", "true", "blue"}, records[len(records)-1])
}

func TestExportToJSON(t *testing.T) {
	fixedClock(t)
	path, err := NewExportRepository().ExportToJSON(sampleReport(), "bridge", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded entity.BridgeReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "test-report", decoded.ID)
	assert.InDelta(t, 50.0, decoded.Result.Delta.OP, 1e-9)
	assert.Len(t, decoded.Result.Waterfall, 10)
}

func TestExportToPDF(t *testing.T) {
	fixedClock(t)
	path, err := NewExportRepository().ExportToPDF(sampleReport(), "bridge", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.True(t, strings.HasSuffix(path, "bridge_20260203_100405.pdf"))
}

func TestExportToXLSX(t *testing.T) {
	fixedClock(t)
	path, err := NewExportRepository().ExportToXLSX(sampleReport(), "bridge", t.TempDir())
	require.NoError(t, err)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Contains(t, f.Sheet, sheetSummary)
	require.Contains(t, f.Sheet, sheetWaterfall)

	summary := f.Sheet[sheetSummary]
	salesRow := summary.Rows[4]
	assert.Equal(t, "Sales", salesRow.Cells[0].String())
	sales, err := salesRow.Cells[2].Float()
	require.NoError(t, err)
	assert.InDelta(t, 1100.0, sales, 1e-9)

	waterfall := f.Sheet[sheetWaterfall]
	assert.Len(t, waterfall.Rows, 11)
	assert.Equal(t, "Comparison OP", waterfall.Rows[1].Cells[0].String())
}

func TestExportToHTMLAndSVG(t *testing.T) {
	fixedClock(t)
	repo := NewExportRepository()
	dir := t.TempDir()

	htmlPath, err := repo.ExportToHTML(sampleReport(), "bridge", dir)
	require.NoError(t, err)
	svgPath, err := repo.ExportToSVG(sampleReport(), "bridge", dir)
	require.NoError(t, err)

	page, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<!doctype html>")

	svg, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(svg, []byte("<svg")))
}
