package export

import (
	"math"

	"github.com/diillson/op-bridge-go/internal/domain/entity"
	"github.com/diillson/op-bridge-go/pkg/numfmt"
)

const (
	chartWidth  = 800.0
	chartHeight = 400.0

	padTop    = 40.0
	padRight  = 30.0
	padBottom = 60.0
	padLeft   = 60.0
)

type barPalette struct {
	hex string
	rgb [3]int
}

var palette = map[entity.BarColor]barPalette{
	entity.ColorGreen: {"#22c55e", [3]int{34, 197, 94}},
	entity.ColorRed:   {"#ef4444", [3]int{239, 68, 68}},
	entity.ColorBlue:  {"#3b82f6", [3]int{59, 130, 246}},
	entity.ColorGray:  {"#9ca3af", [3]int{156, 163, 175}},
}

func paletteFor(c entity.BarColor) barPalette {
	if p, ok := palette[c]; ok {
		return p
	}
	return palette[entity.ColorGray]
}

type gridLine struct {
	Y     float64
	Label string
}

type connector struct {
	X1, X2, Y float64
}

type barShape struct {
	X, Y, W, H float64
	Color      barPalette
	Label      string
	ValueLabel string
	Connector  *connector
}

// chartLayout posiciona a cascata num canvas de 800x400 unidades.
// SVG usa as unidades diretamente; o PDF as escala para milímetros.
type chartLayout struct {
	Width, Height float64
	ZeroY         float64
	Grid          []gridLine
	Bars          []barShape
}

func layoutWaterfall(bars []entity.WaterfallBar) chartLayout {
	minVal, maxVal := 0.0, 0.0
	for _, b := range bars {
		minVal = math.Min(minVal, math.Min(b.Start, b.End))
		maxVal = math.Max(maxVal, math.Max(b.Start, b.End))
	}

	rng := maxVal - minVal
	if rng == 0 {
		rng = 1000
	}
	buffer := rng * 0.1
	yMax := math.Max(maxVal+buffer, 0)
	yMin := math.Min(minVal-buffer, 0)
	plotHeight := chartHeight - padTop - padBottom
	plotRange := yMax - yMin

	getY := func(v float64) float64 {
		return chartHeight - padBottom - (v-yMin)/plotRange*plotHeight
	}

	layout := chartLayout{
		Width:  chartWidth,
		Height: chartHeight,
		ZeroY:  getY(0),
	}

	for _, pct := range []float64{0, 0.25, 0.5, 0.75, 1} {
		v := yMin + plotRange*pct
		layout.Grid = append(layout.Grid, gridLine{Y: getY(v), Label: numfmt.Tick(v)})
	}

	if len(bars) == 0 {
		return layout
	}

	plotWidth := chartWidth - padLeft - padRight
	step := plotWidth / float64(len(bars))
	barWidth := step * 0.7

	for i, b := range bars {
		x := padLeft + float64(i)*step + (step-barWidth)/2
		yTop := getY(math.Max(b.Start, b.End))
		yBottom := getY(math.Min(b.Start, b.End))

		shape := barShape{
			X:          x,
			Y:          yTop,
			W:          barWidth,
			H:          math.Max(math.Abs(yBottom-yTop), 1),
			Color:      paletteFor(b.Color),
			Label:      b.Label,
			ValueLabel: numfmt.Amount(b.Value),
		}
		if i < len(bars)-1 {
			// liga o topo desta barra à próxima, avançando meio vão sobre ela
			gap := step - barWidth
			shape.Connector = &connector{
				X1: x + barWidth,
				X2: x + barWidth + gap + gap/2,
				Y:  getY(b.End),
			}
		}
		layout.Bars = append(layout.Bars, shape)
	}

	return layout
}
