package input

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tealeg/xlsx/v2"

	"github.com/diillson/op-bridge-go/internal/adapter/driven/config"
	"github.com/diillson/op-bridge-go/internal/domain/entity"
	"github.com/diillson/op-bridge-go/internal/domain/repository"
	"github.com/diillson/op-bridge-go/internal/shared/types"
	"github.com/diillson/op-bridge-go/pkg/numfmt"
)

// InputRepositoryImpl implementa o InputRepository.
type InputRepositoryImpl struct{}

// NewInputRepository cria uma nova implementação do InputRepository.
func NewInputRepository() repository.InputRepository {
	return &InputRepositoryImpl{}
}

// LoadSnapshots lê os dois períodos de um documento TOML/YAML/JSON ou de uma
// planilha CSV/XLSX com as colunas item, base, now.
func (r *InputRepositoryImpl) LoadSnapshots(filePath string) (entity.BridgeInput, error) {
	var in entity.BridgeInput

	if config.IsStructuredFile(filePath) {
		if err := config.DecodeFile(filePath, &in); err != nil {
			return entity.BridgeInput{}, err
		}
		return in, nil
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		rows, err = readCSV(filePath)
	case ".xlsx":
		rows, err = readXLSX(filePath)
	default:
		return entity.BridgeInput{}, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, filepath.Ext(filePath))
	}
	if err != nil {
		return entity.BridgeInput{}, err
	}

	return parseRows(rows)
}

func readCSV(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV file: %w", err)
	}
	return rows, nil
}

func readXLSX(filePath string) ([][]string, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening XLSX file: %w", err)
	}
	if len(f.Sheets) == 0 {
		return nil, types.ErrEmptySpreadsheet
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// parseRows interpreta linhas "item,base,now". Linhas de metadados
// (mode, year_month, site_name) trazem o valor na segunda coluna.
func parseRows(rows [][]string) (entity.BridgeInput, error) {
	var in entity.BridgeInput
	found := 0

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		key := strings.TrimSpace(row[0])
		if key == "" || strings.HasPrefix(key, "#") {
			continue
		}

		if applyMeta(&in, key, cellAt(row, 1)) {
			continue
		}

		li, ok := entity.ParseLineItem(key)
		if !ok {
			// primeira linha não reconhecida é tratada como cabeçalho
			if i == 0 || strings.EqualFold(key, "item") {
				continue
			}
			return entity.BridgeInput{}, fmt.Errorf("%w: %q (row %d)", types.ErrUnknownLineItem, key, i+1)
		}

		base, err := numfmt.ParseAmount(cellAt(row, 1))
		if err != nil {
			return entity.BridgeInput{}, fmt.Errorf("%s base (row %d): %w", key, i+1, err)
		}
		now, err := numfmt.ParseAmount(cellAt(row, 2))
		if err != nil {
			return entity.BridgeInput{}, fmt.Errorf("%s now (row %d): %w", key, i+1, err)
		}
		in.Base.Set(li, base)
		in.Now.Set(li, now)
		found++
	}

	if found == 0 {
		return entity.BridgeInput{}, types.ErrEmptySpreadsheet
	}
	return in, nil
}

func applyMeta(in *entity.BridgeInput, key, value string) bool {
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case "mode":
		in.Mode = entity.ComparisonMode(strings.ToLower(value))
	case "year_month", "yearmonth", "month":
		in.YearMonth = value
	case "site_name", "sitename", "site":
		in.SiteName = value
	default:
		return false
	}
	return true
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
