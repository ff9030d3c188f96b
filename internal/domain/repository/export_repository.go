package repository

import (
	"io"

	"github.com/diillson/op-bridge-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(report entity.BridgeReport, filename string, outputDir string) (string, error)
	ExportToJSON(report entity.BridgeReport, filename string, outputDir string) (string, error)
	ExportToPDF(report entity.BridgeReport, filename string, outputDir string) (string, error)
	ExportToXLSX(report entity.BridgeReport, filename string, outputDir string) (string, error)
	ExportToHTML(report entity.BridgeReport, filename string, outputDir string) (string, error)
	ExportToSVG(report entity.BridgeReport, filename string, outputDir string) (string, error)

	// In-memory renderers used by the HTTP server
	RenderSVG(w io.Writer, report entity.BridgeReport) error
	RenderHTML(w io.Writer, report entity.BridgeReport) error
}
