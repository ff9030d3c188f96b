package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/diillson/op-bridge-go/internal/domain/entity"
	"github.com/diillson/op-bridge-go/internal/domain/service"
	"github.com/diillson/op-bridge-go/pkg/numfmt"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Operating Profit Bridge - {{.Meta.SiteOrDefault}} {{.Meta.YearMonth}}</title>
<style>
body{font-family:Arial,Helvetica,sans-serif;color:#1f2937;max-width:1024px;margin:24px auto}
header{display:flex;justify-content:space-between;border-bottom:2px solid #9ca3af;margin-bottom:16px}
table{border-collapse:collapse;width:100%}td,th{border-bottom:1px solid #e5e7eb;padding:6px 12px;text-align:right}
th{background:#f3f4f6}td.left,th.left{text-align:left}
tr.bold{background:#f9fafb;font-weight:bold}
.good{color:#16a34a;font-weight:bold}.bad{color:#dc2626;font-weight:bold}.neutral{color:#6b7280}
.headline{font-size:1.2em}.note{font-size:.8em;color:#9ca3af}
section{page-break-after:always;margin-bottom:32px}
</style></head><body>
<section>
<header><div><h2>Monthly P&amp;L Summary</h2><div>(Current month {{.Meta.Mode.Label}})</div></div>
<div><div class="headline {{.DeltaTone}}">OP change: {{.DeltaOP}} <small>thousand</small></div>
<div><strong>{{.Meta.SiteOrDefault}}</strong></div><div>{{.Meta.YearMonth}} / Unit: thousand</div></div></header>
<table><thead><tr><th class="left">Item</th><th>{{.Meta.Mode.BaseLabel}}</th><th>Current Month</th><th>Diff</th><th>Ratio</th></tr></thead>
<tbody>{{range .Rows}}<tr{{if .Bold}} class="bold"{{end}}><td class="left">{{.Label}}</td><td>{{.Base}}</td><td>{{.Now}}</td><td class="{{.Tone}}">{{.Diff}}</td><td class="{{.Tone}}">{{.Ratio}}</td></tr>
{{end}}</tbody></table>
<p class="note">For cost items an increase worsens profit, so positive differences are shown in red.</p>
</section>
<section>
<header><h2>Operating Profit Bridge (waterfall)</h2><div><div>{{.Meta.SiteOrDefault}}</div><div>{{.Meta.YearMonth}}</div></div></header>
{{.Chart}}
<div class="commentary">{{.Commentary}}</div>
</section>
</body></html>
`))

type htmlRow struct {
	Label, Base, Now, Diff, Ratio string
	Tone                          entity.Tone
	Bold                          bool
}

type htmlView struct {
	Meta       entity.ReportMeta
	DeltaOP    string
	DeltaTone  entity.Tone
	Rows       []htmlRow
	Chart      template.HTML
	Commentary template.HTML
}

// writeHTML renderiza o relatório completo: tabela, SVG embutido e
// comentários em Markdown convertidos pelo goldmark.
func writeHTML(w io.Writer, report entity.BridgeReport) error {
	var chart bytes.Buffer
	if err := writeSVG(&chart, layoutWaterfall(report.Result.Waterfall)); err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}

	var commentary bytes.Buffer
	if err := goldmark.Convert([]byte(commentaryMarkdown(report.Factors)), &commentary); err != nil {
		return fmt.Errorf("error rendering commentary: %w", err)
	}

	view := htmlView{
		Meta:       report.Meta,
		DeltaOP:    numfmt.Signed(report.Result.Delta.OP),
		DeltaTone:  service.HeadlineTone(report.Result.Delta.OP),
		Chart:      template.HTML(chart.String()),
		Commentary: template.HTML(commentary.String()),
	}
	for _, row := range report.Rows {
		view.Rows = append(view.Rows, htmlRow{
			Label: row.Label,
			Base:  numfmt.Amount(row.Base),
			Now:   numfmt.Amount(row.Now),
			Diff:  numfmt.Signed(row.Diff),
			Ratio: numfmt.RatioPtr(row.Ratio),
			Tone:  row.Tone,
			Bold:  row.Bold,
		})
	}

	if err := reportTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("error executing report template: %w", err)
	}
	return nil
}

// commentaryMarkdown monta o rodapé de fatores principais em Markdown.
func commentaryMarkdown(f entity.KeyFactors) string {
	worse, better := service.FactorMessages(f)

	var sb strings.Builder
	writeList := func(title string, items []string) {
		sb.WriteString("#### " + title + "\n\n")
		if len(items) == 0 {
			sb.WriteString("_None_\n\n")
			return
		}
		for _, it := range items {
			sb.WriteString("- " + escapeMarkdown(it) + "\n")
		}
		sb.WriteString("\n")
	}
	writeList("Main worsening factors", worse)
	writeList("Main improving factors", better)
	return sb.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
