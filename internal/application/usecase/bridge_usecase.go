package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/diillson/op-bridge-go/internal/domain/entity"
	"github.com/diillson/op-bridge-go/internal/domain/repository"
	"github.com/diillson/op-bridge-go/internal/domain/service"
	"github.com/diillson/op-bridge-go/internal/shared/types"
	"github.com/diillson/op-bridge-go/pkg/numfmt"
)

const (
	// tentativas para um campo obrigatório no modo interativo
	maxPromptAttempts = 3
	driftTolerance    = 1e-6
)

// BridgeUseCase orchestrates loading, computing, displaying and exporting
// the operating-profit bridge.
type BridgeUseCase struct {
	inputRepo  repository.InputRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	newStorage repository.StorageFactory
	console    types.ConsoleInterface

	now   func() time.Time
	newID func() string
}

// NewBridgeUseCase creates a new bridge use case.
func NewBridgeUseCase(
	inputRepo repository.InputRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	newStorage repository.StorageFactory,
	console types.ConsoleInterface,
) *BridgeUseCase {
	return &BridgeUseCase{
		inputRepo:  inputRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		newStorage: newStorage,
		console:    console,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// RunReport executa o fluxo completo da CLI.
func (uc *BridgeUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	if args.ConfigFile != "" {
		cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return err
		}
		mergeConfig(args, cfg)
	}
	if args.ReportName != "" && len(args.ReportType) == 0 {
		args.ReportType = []string{"csv"}
	}

	input, err := uc.loadInput(args)
	if err != nil {
		return err
	}

	status := uc.console.Status("Computing operating profit bridge...")
	report, err := uc.BuildReport(input)
	status.Stop()
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			for _, msg := range verr.Messages {
				uc.console.LogError("%s", msg)
			}
		}
		return err
	}

	uc.displayReport(report)

	if args.ReportName == "" {
		return nil
	}
	paths := uc.exportReports(report, args)
	if args.S3Bucket != "" && len(paths) > 0 {
		uc.publishReports(ctx, report, paths, args)
	}
	return nil
}

// loadInput obtém os dados do arquivo, do modo interativo ou de ambos
// (o arquivo serve de valor padrão para os prompts).
func (uc *BridgeUseCase) loadInput(args *types.CLIArgs) (entity.BridgeInput, error) {
	var input entity.BridgeInput
	if args.Input != "" {
		loaded, err := uc.inputRepo.LoadSnapshots(args.Input)
		if err != nil {
			return entity.BridgeInput{}, err
		}
		input = loaded
	} else if !args.Interactive {
		return entity.BridgeInput{}, types.ErrNoInputData
	}

	if args.Mode != "" {
		input.Mode = entity.ComparisonMode(strings.ToLower(args.Mode))
	}
	if args.YearMonth != "" {
		input.YearMonth = args.YearMonth
	}
	if args.SiteName != "" {
		input.SiteName = args.SiteName
	}

	if args.Interactive {
		return uc.CollectInteractive(input)
	}
	return input, nil
}

// BuildReport validates the input, computes the bridge and assembles every
// view the renderers need.
func (uc *BridgeUseCase) BuildReport(input entity.BridgeInput) (entity.BridgeReport, error) {
	if input.Mode == "" {
		input.Mode = entity.ModePreviousMonth
	}
	if err := service.ValidateInput(input); err != nil {
		return entity.BridgeReport{}, err
	}

	result := service.ComputeBridge(input.Base, input.Now)
	if drift := service.WaterfallDrift(result); math.Abs(drift) > driftTolerance {
		uc.console.LogWarning("Waterfall does not close: running total differs from current OP by %g", drift)
	}

	return entity.BridgeReport{
		ID:          uc.newID(),
		GeneratedAt: uc.now(),
		Meta:        input.Meta(),
		Result:      result,
		Rows:        service.BuildSummaryRows(result),
		Factors:     service.KeyFactors(result.Waterfall, service.MaxWorseningFactors, service.MaxImprovingFactors),
	}, nil
}

// RenderSVG writes the waterfall chart of a built report.
func (uc *BridgeUseCase) RenderSVG(w io.Writer, report entity.BridgeReport) error {
	return uc.exportRepo.RenderSVG(w, report)
}

// RenderHTML writes the full HTML report page.
func (uc *BridgeUseCase) RenderHTML(w io.Writer, report entity.BridgeReport) error {
	return uc.exportRepo.RenderHTML(w, report)
}

// CollectInteractive pergunta os metadados e os 16 valores, usando os dados
// de seed como padrão.
func (uc *BridgeUseCase) CollectInteractive(seed entity.BridgeInput) (entity.BridgeInput, error) {
	input := seed
	uc.console.LogInfo("Enter amounts in thousands. Leave blank for zero.")

	defaultMode := string(seed.Mode)
	if defaultMode == "" {
		defaultMode = string(entity.ModePreviousMonth)
	}
	for attempt := 0; ; attempt++ {
		raw, err := uc.console.Prompt("Comparison mode (prev/target)", defaultMode)
		if err != nil {
			return entity.BridgeInput{}, fmt.Errorf("error reading comparison mode: %w", err)
		}
		mode := entity.ComparisonMode(strings.ToLower(strings.TrimSpace(raw)))
		if mode.Valid() {
			input.Mode = mode
			break
		}
		if attempt+1 >= maxPromptAttempts {
			return entity.BridgeInput{}, fmt.Errorf("%w: %q", types.ErrInvalidMode, raw)
		}
		uc.console.LogWarning("Please answer 'prev' or 'target'")
	}

	defaultMonth := seed.YearMonth
	if defaultMonth == "" {
		defaultMonth = uc.now().Format("2006-01")
	}
	ym, err := uc.console.Prompt("Year-month", defaultMonth)
	if err != nil {
		return entity.BridgeInput{}, fmt.Errorf("error reading year-month: %w", err)
	}
	input.YearMonth = strings.TrimSpace(ym)

	site, err := uc.console.Prompt("Site name", seed.SiteName)
	if err != nil {
		return entity.BridgeInput{}, fmt.Errorf("error reading site name: %w", err)
	}
	input.SiteName = strings.TrimSpace(site)

	periods := []struct {
		isBase   bool
		snapshot *entity.FinancialSnapshot
	}{
		{isBase: true, snapshot: &input.Base},
		{isBase: false, snapshot: &input.Now},
	}
	for _, p := range periods {
		period := service.PeriodLabel(input.Mode, p.isBase)
		uc.console.Println(pterm.FgYellow.Sprint(period))
		for _, li := range entity.AllItems {
			v, err := uc.promptAmount(period, li, p.snapshot.Get(li))
			if err != nil {
				return entity.BridgeInput{}, err
			}
			p.snapshot.Set(li, v)
		}
	}

	return input, nil
}

func (uc *BridgeUseCase) promptAmount(period string, li entity.LineItem, current float64) (float64, error) {
	field := numfmt.NewField(current)
	label := fmt.Sprintf("%s %s", period, li.Label())
	if li.IsRequired() {
		label += " *"
	}

	for attempt := 1; ; attempt++ {
		raw, err := uc.console.Prompt(label, field.Raw())
		if err != nil {
			return 0, fmt.Errorf("error reading %s: %w", label, err)
		}
		field.Edit(raw)
		v := field.Commit()
		if v != 0 || !li.IsRequired() || attempt >= maxPromptAttempts {
			return v, nil
		}
		uc.console.LogWarning("%s %s is required", period, li.Label())
	}
}

// displayReport mostra a tabela de resumo, a cascata e os fatores.
func (uc *BridgeUseCase) displayReport(report entity.BridgeReport) {
	meta := report.Meta
	uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Monthly P&L Summary | %s | %s | current month %s",
		meta.SiteOrDefault(), meta.YearMonth, meta.Mode.Label()))

	table := uc.console.CreateTable()
	table.AddColumn("Item")
	table.AddColumn(meta.Mode.BaseLabel())
	table.AddColumn("Current Month")
	table.AddColumn("Diff")
	table.AddColumn("Ratio")
	for _, row := range report.Rows {
		label := row.Label
		if row.Bold {
			label = pterm.Bold.Sprint(label)
		}
		table.AddRow(
			label,
			numfmt.Amount(row.Base),
			numfmt.Amount(row.Now),
			toneSprint(row.Tone, numfmt.Signed(row.Diff)),
			toneSprint(row.Tone, numfmt.RatioPtr(row.Ratio)),
		)
	}
	uc.console.Print(table.Render())

	delta := report.Result.Delta.OP
	uc.console.Printf("Operating profit change: %s thousand (unit: thousand)\n",
		toneSprint(service.HeadlineTone(delta), numfmt.Signed(delta)))

	uc.console.DisplayWaterfall("Operating Profit Bridge", toChartBars(report.Result.Waterfall))

	worse, better := service.FactorMessages(report.Factors)
	uc.printFactors("Main worsening factors", worse, pterm.FgRed)
	uc.printFactors("Main improving factors", better, pterm.FgGreen)
}

func (uc *BridgeUseCase) printFactors(title string, lines []string, color pterm.Color) {
	uc.console.Println(color.Sprint(title))
	if len(lines) == 0 {
		uc.console.Println("  None")
		return
	}
	for _, l := range lines {
		uc.console.Println("  - " + l)
	}
}

// exportReports grava cada tipo pedido e devolve os caminhos gerados.
func (uc *BridgeUseCase) exportReports(report entity.BridgeReport, args *types.CLIArgs) []string {
	var paths []string
	for _, reportType := range args.ReportType {
		var (
			path string
			err  error
			name = strings.ToUpper(reportType)
		)
		switch strings.ToLower(reportType) {
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
		case "xlsx":
			path, err = uc.exportRepo.ExportToXLSX(report, args.ReportName, args.Dir)
		case "html":
			path, err = uc.exportRepo.ExportToHTML(report, args.ReportName, args.Dir)
		case "svg":
			path, err = uc.exportRepo.ExportToSVG(report, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unsupported report type: %s", reportType)
			continue
		}
		if err != nil {
			uc.console.LogError("Failed to export to %s: %s", name, err)
			continue
		}
		uc.console.LogSuccess("Successfully exported to %s: %s", name, path)
		paths = append(paths, path)
	}
	return paths
}

// publishReports envia os arquivos exportados para o S3. Falhas não
// interrompem a execução.
func (uc *BridgeUseCase) publishReports(ctx context.Context, report entity.BridgeReport, paths []string, args *types.CLIArgs) {
	if uc.newStorage == nil {
		uc.console.LogWarning("%s", types.ErrStorageUnavailable)
		return
	}
	storage := uc.newStorage(args.AWSProfile)
	for _, path := range paths {
		uri, err := storage.Upload(ctx, args.S3Bucket, objectKey(args.S3Prefix, report.ID, path), path)
		if err != nil {
			uc.console.LogError("Failed to upload %s: %s", filepath.Base(path), err)
			continue
		}
		uc.console.LogSuccess("Uploaded report to %s", uri)
	}
}

// objectKey monta a chave <prefix>/<reportID>/<arquivo>.
func objectKey(prefix, reportID, localPath string) string {
	parts := make([]string, 0, 3)
	if p := strings.Trim(prefix, "/"); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, reportID, filepath.Base(localPath))
	return strings.Join(parts, "/")
}

// mergeConfig preenche os argumentos vazios com os valores do arquivo.
// Flags da linha de comando têm precedência.
func mergeConfig(args *types.CLIArgs, cfg *types.Config) {
	if cfg == nil {
		return
	}
	setIfEmpty := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	setIfEmpty(&args.Input, cfg.Input)
	setIfEmpty(&args.Mode, cfg.Mode)
	setIfEmpty(&args.YearMonth, cfg.YearMonth)
	setIfEmpty(&args.SiteName, cfg.SiteName)
	setIfEmpty(&args.ReportName, cfg.ReportName)
	setIfEmpty(&args.Dir, cfg.Dir)
	setIfEmpty(&args.S3Bucket, cfg.S3Bucket)
	setIfEmpty(&args.S3Prefix, cfg.S3Prefix)
	setIfEmpty(&args.AWSProfile, cfg.AWSProfile)
	if len(args.ReportType) == 0 {
		args.ReportType = cfg.ReportType
	}
}

func toneSprint(t entity.Tone, text string) string {
	switch t {
	case entity.ToneGood:
		return pterm.FgGreen.Sprint(text)
	case entity.ToneBad:
		return pterm.FgRed.Sprint(text)
	}
	return pterm.FgGray.Sprint(text)
}

// toChartBars converte as barras do domínio para o tipo de exibição.
func toChartBars(bars []entity.WaterfallBar) []types.ChartBar {
	out := make([]types.ChartBar, len(bars))
	for i, b := range bars {
		out[i] = types.ChartBar{
			Label:   b.Label,
			Value:   b.Value,
			Start:   b.Start,
			End:     b.End,
			IsTotal: b.IsTotal,
			Color:   string(b.Color),
		}
	}
	return out
}
