package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/diillson/op-bridge-go/internal/domain/entity"
	"github.com/diillson/op-bridge-go/internal/domain/repository"
	"github.com/diillson/op-bridge-go/pkg/numfmt"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Exportação para arquivo ---

func (r *ExportRepositoryImpl) ExportToCSV(report entity.BridgeReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	records := [][]string{
		{"Report ID", report.ID},
		{"Year-Month", report.Meta.YearMonth},
		{"Site", report.Meta.SiteOrDefault()},
		{"Comparison", report.Meta.Mode.Label()},
		{},
		{"Item", report.Meta.Mode.BaseLabel(), "Current Month", "Diff", "Ratio"},
	}
	for _, row := range report.Rows {
		records = append(records, []string{
			row.Label,
			formatFloat(row.Base),
			formatFloat(row.Now),
			formatFloat(row.Diff),
			numfmt.RatioPtr(row.Ratio),
		})
	}

	records = append(records, []string{}, []string{"Label", "Value", "Start", "End", "Total", "Color"})
	for _, bar := range report.Result.Waterfall {
		records = append(records, []string{
			bar.Label,
			formatFloat(bar.Value),
			formatFloat(bar.Start),
			formatFloat(bar.End),
			strconv.FormatBool(bar.IsTotal),
			string(bar.Color),
		})
	}

	if err := writer.WriteAll(records); err != nil {
		return "", fmt.Errorf("error writing CSV data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(report entity.BridgeReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(report entity.BridgeReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := buildPDF(report)
	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToXLSX(report entity.BridgeReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	file, err := buildWorkbook(report)
	if err != nil {
		return "", err
	}
	if err := file.Save(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToHTML(report entity.BridgeReport, filename, outputDir string) (string, error) {
	return writeToFile(filename, outputDir, "html", func(w io.Writer) error {
		return writeHTML(w, report)
	})
}

func (r *ExportRepositoryImpl) ExportToSVG(report entity.BridgeReport, filename, outputDir string) (string, error) {
	return writeToFile(filename, outputDir, "svg", func(w io.Writer) error {
		return writeSVG(w, layoutWaterfall(report.Result.Waterfall))
	})
}

// --- Renderização em memória (servidor HTTP) ---

func (r *ExportRepositoryImpl) RenderSVG(w io.Writer, report entity.BridgeReport) error {
	return writeSVG(w, layoutWaterfall(report.Result.Waterfall))
}

func (r *ExportRepositoryImpl) RenderHTML(w io.Writer, report entity.BridgeReport) error {
	return writeHTML(w, report)
}

// --- Funções Auxiliares ---

var timeNow = time.Now

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := timeNow().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func writeToFile(base, dir, ext string, render func(io.Writer) error) (string, error) {
	outputFilename, err := generateFilename(base, dir, ext)
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating %s file: %w", ext, err)
	}
	if err := render(file); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("error closing %s file: %w", ext, err)
	}

	return filepath.Abs(outputFilename)
}

// formatFloat escreve valores sem separador de milhar para que planilhas
// consigam reimportar o CSV.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
