package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diillson/op-bridge-go/internal/adapter/driving/web"
	"github.com/diillson/op-bridge-go/internal/application/usecase"
	"github.com/diillson/op-bridge-go/internal/domain/repository"
	"github.com/diillson/op-bridge-go/internal/shared/types"
	"github.com/diillson/op-bridge-go/pkg/version"
)

const (
	defaultHost = "127.0.0.1"
	defaultPort = "8080"

	envHost = "OPBRIDGE_HOST"
	envPort = "OPBRIDGE_PORT"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	bridgeUseCase *usecase.BridgeUseCase
	configRepo    repository.ConfigRepository
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:          "op-bridge",
		Short:        "Operating profit bridge (P&L comparison and waterfall) CLI",
		Version:      formattedVersion,
		SilenceUsage: true,
		RunE:         app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "OP Bridge version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("input", "i", "", "Snapshot data file (YAML, JSON, TOML, CSV or XLSX)")
	rootCmd.PersistentFlags().StringP("mode", "m", "", "Comparison mode: prev (previous month) or target")
	rootCmd.PersistentFlags().StringP("year-month", "M", "", "Reporting month, e.g. 2026-01")
	rootCmd.PersistentFlags().StringP("site", "s", "", "Site (plant or office) name printed in the report headers")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Specify report types: csv, json, pdf, xlsx, html, svg (default: csv)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().BoolP("interactive", "I", false, "Prompt for the metadata and the 16 amounts")
	rootCmd.PersistentFlags().String("s3-bucket", "", "Upload exported reports to this S3 bucket")
	rootCmd.PersistentFlags().String("s3-prefix", "", "Key prefix for uploaded reports")
	rootCmd.PersistentFlags().String("aws-profile", "", "AWS shared config profile used for uploads")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP report server",
		RunE:  app.runServe,
	}
	serveCmd.Flags().String("host", "", "Listen host (env "+envHost+", default "+defaultHost+")")
	serveCmd.Flags().String("port", "", "Listen port (env "+envPort+", default "+defaultPort+")")
	serveCmd.Flags().Duration("shutdown-timeout", 10*time.Second, "Grace period for in-flight requests on shutdown")
	rootCmd.AddCommand(serveCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	input, _ := flags.GetString("input")
	mode, _ := flags.GetString("mode")
	yearMonth, _ := flags.GetString("year-month")
	site, _ := flags.GetString("site")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	interactive, _ := flags.GetBool("interactive")
	s3Bucket, _ := flags.GetString("s3-bucket")
	s3Prefix, _ := flags.GetString("s3-prefix")
	awsProfile, _ := flags.GetString("aws-profile")

	// Vazio fica vazio para que o arquivo de configuração possa definir o diretório
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		Input:       input,
		Mode:        mode,
		YearMonth:   yearMonth,
		SiteName:    site,
		ReportName:  reportName,
		ReportType:  reportType,
		Dir:         dir,
		Interactive: interactive,
		S3Bucket:    s3Bucket,
		S3Prefix:    s3Prefix,
		AWSProfile:  awsProfile,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner()

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.bridgeUseCase.RunReport(ctx, cliArgs)
}

// runServe sobe o servidor HTTP. O endereço vem das flags, do ambiente
// (.env incluso) ou do arquivo de configuração, nessa ordem.
func (app *CLIApp) runServe(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("no .env file loaded")
	}

	var server types.ServerConfig
	if configFile, _ := cmd.Flags().GetString("config-file"); configFile != "" && app.configRepo != nil {
		cfg, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return err
		}
		server = cfg.Server
	}

	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetString("port")
	timeout, _ := cmd.Flags().GetDuration("shutdown-timeout")
	addr := resolveAddr(host, port, server)

	api := web.NewWebAPI(logger, web.Config{
		Addr:            addr,
		ShutdownTimeout: timeout,
		Reports:         app.bridgeUseCase,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := api.Start(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func resolveAddr(flagHost, flagPort string, cfg types.ServerConfig) string {
	pick := func(values ...string) string {
		for _, v := range values {
			if v != "" {
				return v
			}
		}
		return ""
	}
	host := pick(flagHost, os.Getenv(envHost), cfg.Host, defaultHost)
	port := pick(flagPort, os.Getenv(envPort), cfg.Port, defaultPort)
	return net.JoinHostPort(host, port)
}

// SetBridgeUseCase sets the bridge use case for the CLI app.
func (app *CLIApp) SetBridgeUseCase(useCase *usecase.BridgeUseCase) {
	app.bridgeUseCase = useCase
}

// SetConfigRepository sets the repository used by `serve` to read the
// server section of the configuration file.
func (app *CLIApp) SetConfigRepository(repo repository.ConfigRepository) {
	app.configRepo = repo
}
