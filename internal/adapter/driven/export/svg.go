package export

import (
	"bufio"
	"fmt"
	"html"
	"io"
)

// writeSVG emite o gráfico de cascata como SVG autocontido.
func writeSVG(w io.Writer, layout chartLayout) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%g" height="%g" font-family="Arial, Helvetica, sans-serif">`+"\n",
		layout.Width, layout.Height, layout.Width, layout.Height)
	fmt.Fprintf(bw, `<rect x="0" y="0" width="%g" height="%g" fill="#ffffff"/>`+"\n", layout.Width, layout.Height)

	for _, g := range layout.Grid {
		fmt.Fprintf(bw, `<line x1="%g" y1="%.2f" x2="%g" y2="%.2f" stroke="#f0f0f0" stroke-width="1"/>`+"\n",
			padLeft, g.Y, layout.Width-padRight, g.Y)
		fmt.Fprintf(bw, `<text x="%g" y="%.2f" font-size="10" text-anchor="end" fill="#999999">%s</text>`+"\n",
			padLeft-10, g.Y+4, html.EscapeString(g.Label))
	}

	fmt.Fprintf(bw, `<line x1="%g" y1="%.2f" x2="%g" y2="%.2f" stroke="#666666" stroke-width="1"/>`+"\n",
		padLeft, layout.ZeroY, layout.Width-padRight, layout.ZeroY)

	for _, b := range layout.Bars {
		fmt.Fprintf(bw, `<g><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" rx="2"/>`,
			b.X, b.Y, b.W, b.H, b.Color.hex)
		if b.Connector != nil {
			fmt.Fprintf(bw, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#cbd5e1" stroke-width="1" stroke-dasharray="4 2"/>`,
				b.Connector.X1, b.Connector.Y, b.Connector.X2, b.Connector.Y)
		}
		fmt.Fprintf(bw, `<text x="%.2f" y="%g" font-size="11" text-anchor="middle" fill="#374151" font-weight="bold">%s</text>`,
			b.X+b.W/2, layout.Height-20, html.EscapeString(b.Label))
		fmt.Fprintf(bw, `<text x="%.2f" y="%.2f" font-size="10" text-anchor="middle" fill="#1f2937">%s</text></g>`+"\n",
			b.X+b.W/2, b.Y-6, html.EscapeString(b.ValueLabel))
	}

	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}
