package types

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle

	CreateTable() TableInterface
	DisplayWaterfall(title string, bars []ChartBar)

	Prompt(label string, defaultValue string) (string, error)
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// ChartBar representa uma barra da cascata para exibição no terminal.
type ChartBar struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	IsTotal bool    `json:"is_total"`
	Color   string  `json:"color"`
}
