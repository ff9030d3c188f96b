package types

import (
	"errors"
	"strings"
)

var (
	ErrNoInputData        = errors.New("no input data: use --input <file> or --interactive")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrInvalidMode        = errors.New("invalid comparison mode: expected 'prev' or 'target'")
	ErrEmptySpreadsheet   = errors.New("spreadsheet has no data rows")
	ErrUnknownLineItem    = errors.New("unknown line item")
	ErrStorageUnavailable = errors.New("report storage is not configured")
)

// ValidationError agrupa as mensagens de campos obrigatórios não preenchidos.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "input validation failed: " + strings.Join(e.Messages, "; ")
}
