package repository

import (
	"github.com/diillson/op-bridge-go/internal/domain/entity"
)

// InputRepository loads the two snapshots to compare from a data file.
type InputRepository interface {
	LoadSnapshots(filePath string) (entity.BridgeInput, error)
}
