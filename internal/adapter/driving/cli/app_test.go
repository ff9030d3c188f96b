package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/op-bridge-go/internal/shared/types"
)

func TestParseArgs(t *testing.T) {
	app := NewCLIApp("test")
	cmd := app.rootCmd
	require.NoError(t, cmd.ParseFlags([]string{
		"-i", "data.xlsx",
		"--mode", "target",
		"-M", "2026-01",
		"--site", "Osaka",
		"-n", "bridge",
		"-y", "pdf,xlsx",
		"-d", "out",
		"-I",
		"--s3-bucket", "reports",
		"--aws-profile", "finance",
	}))

	args, err := app.parseArgs(cmd)
	require.NoError(t, err)

	wantDir, _ := filepath.Abs("out")
	assert.Equal(t, &types.CLIArgs{
		Input:       "data.xlsx",
		Mode:        "target",
		YearMonth:   "2026-01",
		SiteName:    "Osaka",
		ReportName:  "bridge",
		ReportType:  []string{"pdf", "xlsx"},
		Dir:         wantDir,
		Interactive: true,
		S3Bucket:    "reports",
		AWSProfile:  "finance",
	}, args)
}

func TestParseArgs_EmptyDirStaysEmpty(t *testing.T) {
	app := NewCLIApp("test")
	require.NoError(t, app.rootCmd.ParseFlags(nil))

	args, err := app.parseArgs(app.rootCmd)
	require.NoError(t, err)
	assert.Empty(t, args.Dir)
	assert.Empty(t, args.ReportType)
}

func TestResolveAddr(t *testing.T) {
	t.Setenv(envHost, "")
	t.Setenv(envPort, "")

	assert.Equal(t, "127.0.0.1:8080", resolveAddr("", "", types.ServerConfig{}))
	assert.Equal(t, "0.0.0.0:9000", resolveAddr("", "", types.ServerConfig{Host: "0.0.0.0", Port: "9000"}))

	t.Setenv(envPort, "7000")
	assert.Equal(t, "0.0.0.0:7000", resolveAddr("", "", types.ServerConfig{Host: "0.0.0.0", Port: "9000"}))
	assert.Equal(t, "localhost:7000", resolveAddr("localhost", "", types.ServerConfig{}))
	assert.Equal(t, "localhost:1234", resolveAddr("localhost", "1234", types.ServerConfig{}))
}
