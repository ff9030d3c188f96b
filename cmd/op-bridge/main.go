package main

import (
	"fmt"
	"os"

	"github.com/diillson/op-bridge-go/internal/adapter/driven/config"
	"github.com/diillson/op-bridge-go/internal/adapter/driven/export"
	"github.com/diillson/op-bridge-go/internal/adapter/driven/input"
	"github.com/diillson/op-bridge-go/internal/adapter/driven/storage"
	"github.com/diillson/op-bridge-go/internal/adapter/driving/cli"
	"github.com/diillson/op-bridge-go/internal/application/usecase"
	"github.com/diillson/op-bridge-go/pkg/console"
	"github.com/diillson/op-bridge-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	inputRepo := input.NewInputRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	bridgeUseCase := usecase.NewBridgeUseCase(
		inputRepo,
		exportRepo,
		configRepo,
		storage.NewS3Repository,
		consoleImpl,
	)

	app.SetBridgeUseCase(bridgeUseCase)
	app.SetConfigRepository(configRepo)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
