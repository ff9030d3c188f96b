package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/pterm/pterm"

	"github.com/diillson/op-bridge-go/internal/shared/types"
	"github.com/diillson/op-bridge-go/pkg/numfmt"
)

// waterfallWidth é a largura, em caracteres, da área de barras.
const waterfallWidth = 40

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Prompt pede um valor ao usuário, exibindo o valor atual como padrão.
func (c *Console) Prompt(label string, defaultValue string) (string, error) {
	return pterm.DefaultInteractiveTextInput.
		WithDefaultValue(defaultValue).
		Show(label)
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithRightAlignment().
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// DisplayWaterfall desenha a cascata do lucro operacional como barras
// horizontais, cada uma deslocada até o seu ponto de partida.
func (c *Console) DisplayWaterfall(title string, bars []types.ChartBar) {
	if len(bars) == 0 {
		pterm.Warning.Println("No waterfall data to display")
		return
	}

	tableData := pterm.TableData{
		{"Item", "Impact", "", "Running Total"},
	}
	for _, bar := range bars {
		value := numfmt.Signed(bar.Value)
		if bar.IsTotal {
			value = numfmt.Amount(bar.Value)
		}
		tableData = append(tableData, []string{
			bar.Label,
			value,
			colorize(bar.Color, WaterfallBarText(bars, bar)),
			numfmt.Amount(bar.End),
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)

	fmt.Println("\n" + panel)
}

// WaterfallBarText devolve a barra em texto puro: espaços até o início e
// blocos até o fim, numa escala comum a todas as barras.
func WaterfallBarText(all []types.ChartBar, bar types.ChartBar) string {
	lo, hi := 0.0, 0.0
	for _, b := range all {
		lo = math.Min(lo, math.Min(b.Start, b.End))
		hi = math.Max(hi, math.Max(b.Start, b.End))
	}
	span := hi - lo
	if math.IsInf(span, 0) || math.IsNaN(span) {
		return ""
	}
	if span == 0 {
		span = 1
	}

	col := func(v float64) int {
		return int(math.Round((v - lo) / span * waterfallWidth))
	}
	from := col(math.Min(bar.Start, bar.End))
	to := col(math.Max(bar.Start, bar.End))
	if to <= from {
		to = from + 1
	}
	return strings.Repeat(" ", from) + strings.Repeat("█", to-from)
}

func colorize(name, text string) string {
	switch name {
	case "green":
		return pterm.FgGreen.Sprint(text)
	case "red":
		return pterm.FgRed.Sprint(text)
	case "blue":
		return pterm.FgBlue.Sprint(text)
	default:
		return pterm.FgGray.Sprint(text)
	}
}
