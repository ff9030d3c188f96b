package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/diillson/op-bridge-go/internal/domain/repository"
	"github.com/diillson/op-bridge-go/internal/shared/types"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	var config types.Config
	if err := DecodeFile(filePath, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// IsStructuredFile indica se a extensão é de um documento TOML, YAML ou JSON.
func IsStructuredFile(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".toml", ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// DecodeFile lê um documento TOML, YAML ou JSON em v, escolhendo o formato
// pela extensão do arquivo.
func DecodeFile(filePath string, v interface{}) error {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error accessing file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	switch fileExtension {
	case ".toml":
		if err := decodeTOML(fileData, v); err != nil {
			return fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, v); err != nil {
			return fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, v); err != nil {
			return fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, fileExtension)
	}

	return nil
}

// decodeTOML passa o documento por um mapa genérico e depois por JSON, para
// que inteiros TOML ("sales = 1000") caiam em campos float64.
func decodeTOML(data []byte, v interface{}) error {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(tree.ToMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
