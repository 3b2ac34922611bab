package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, "INR", cfg.Invoice.CurrencyCode)
	assert.Equal(t, "02/01/2006", cfg.Invoice.DateFormat)
	assert.Equal(t, "AIRFIT", cfg.Invoice.FallbackOrgName)
	assert.Equal(t, "Karnataka", cfg.Invoice.FallbackPlaceOfSupply)
	assert.Equal(t, "A4", cfg.PDF.PaperSize)
	assert.True(t, cfg.PDF.Compress)
	assert.False(t, cfg.PDF.ShowQR)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"invoice": {"currency_symbol": "Rs.", "currency_code": "INR", "fallback_org_name": "IRONWORKS"},
		"pdf": {"paper_size": "Letter", "show_qr": true}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Rs.", cfg.Invoice.CurrencySymbol)
	assert.Equal(t, "IRONWORKS", cfg.Invoice.FallbackOrgName)
	assert.Equal(t, "Letter", cfg.PDF.PaperSize)
	assert.True(t, cfg.PDF.ShowQR)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"invoice": {"currency_symbol": "Rs."}}`), 0644))

	t.Setenv("CURRENCY_SYMBOL", "$")
	t.Setenv("DATE_TIME_FORMAT", "2006-01-02 15:04")
	t.Setenv("DURATION_LABEL", "3 Months")
	t.Setenv("PDF_COMPRESS", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "$", cfg.Invoice.CurrencySymbol)
	assert.Equal(t, "2006-01-02 15:04", cfg.Invoice.DateTimeFormat)
	assert.Equal(t, "3 Months", cfg.Invoice.DurationLabel)
	assert.False(t, cfg.PDF.Compress)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	cfg.Invoice.FallbackOrgName = "IRONWORKS"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "IRONWORKS", loaded.Invoice.FallbackOrgName)
}
