package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "http://localhost:9999/v1"
	cfg.API.Timeout = 5 * time.Second
	cfg.CSV.Path = "exports/bank.csv"
	cfg.Display.PayeeWidth = 30

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://api.ynab.com/v1", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "transactions.csv", cfg.CSV.Path)
	assert.Equal(t, 25, cfg.Display.PayeeWidth)
	assert.Equal(t, 40, cfg.Display.MemoWidth)
	assert.Equal(t, 30, cfg.Display.SummaryMemoWidth)
	assert.Equal(t, 10, cfg.Display.BudgetPageSize)
	assert.Equal(t, 15, cfg.Display.RowPageSize)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("csv:\n  path: other.csv\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.csv", cfg.CSV.Path)
	assert.Equal(t, "https://api.ynab.com/v1", cfg.API.BaseURL)
	assert.Equal(t, 40, cfg.Display.MemoWidth)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOptional_Missing(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"bad yaml", "api: [", "parsing config"},
		{"empty url", "api:\n  base_url: \"\"\n", "api.base_url"},
		{"narrow column", "display:\n  memo_width: 2\n", "display.memo_width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "base_url: https://api.ynab.com/v1")
	assert.Contains(t, contents, "path: transactions.csv")
	assert.Contains(t, contents, "payee_width: 25")
	assert.Contains(t, contents, "level: warn")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://127.0.0.1:1234/v1")
	t.Setenv(EnvLogLevel, "debug")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, "http://127.0.0.1:1234/v1", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestTokenFromEnv(t *testing.T) {
	t.Setenv(EnvAccessToken, "")
	_, err := TokenFromEnv()
	assert.ErrorIs(t, err, ErrMissingToken)

	t.Setenv(EnvAccessToken, "secret")
	token, err := TokenFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "secret", token)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvAccessToken+"=from-dotenv\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv(EnvAccessToken, "")
	require.NoError(t, os.Unsetenv(EnvAccessToken))

	LoadEnv()
	token, err := TokenFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", token)
}

func TestValidate_ReportsFirstWidthInOrder(t *testing.T) {
	cfg := Default()
	cfg.Display.MemoWidth = 1
	cfg.Display.RowPageSize = 0
	cfg.Display.PayeeWidth = 2

	for i := 0; i < 20; i++ {
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, "display.payee_width must be at least 4, got 2", err.Error())
	}
}
