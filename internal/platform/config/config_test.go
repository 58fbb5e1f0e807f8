package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/hospital_ledger/internal/core/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "")
	t.Setenv("LEDGER_DEFAULT_SHARE_PERCENT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, domain.OPDRevenue, cfg.Ledger.DefaultRevenueAccount)
	assert.Equal(t, domain.PaidCash, cfg.Ledger.DefaultPaidMethod)
	assert.Nil(t, cfg.Ledger.DefaultSharePercent)
	assert.Equal(t, "Asia/Karachi", cfg.Ledger.Location.String())
	assert.Equal(t, 366, cfg.Ledger.MaxRollupDays)
}

func TestLoadConfig_LedgerOverrides(t *testing.T) {
	t.Setenv("LEDGER_DEFAULT_REVENUE_ACCOUNT", "PROCEDURE_REVENUE")
	t.Setenv("LEDGER_DEFAULT_PAID_METHOD", "Bank")
	t.Setenv("LEDGER_DEFAULT_SHARE_PERCENT", "35")
	t.Setenv("LEDGER_TIMEZONE", "UTC")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, domain.ProcedureRevenue, cfg.Ledger.DefaultRevenueAccount)
	assert.Equal(t, domain.PaidBank, cfg.Ledger.DefaultPaidMethod)
	require.NotNil(t, cfg.Ledger.DefaultSharePercent)
	assert.Equal(t, "35", cfg.Ledger.DefaultSharePercent.String())
	assert.Equal(t, "UTC", cfg.Ledger.Location.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_InvalidLedgerSettings(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"non-revenue account", "LEDGER_DEFAULT_REVENUE_ACCOUNT", "CASH"},
		{"unknown paid method", "LEDGER_DEFAULT_PAID_METHOD", "Cheque"},
		{"share above 100", "LEDGER_DEFAULT_SHARE_PERCENT", "120"},
		{"share not a number", "LEDGER_DEFAULT_SHARE_PERCENT", "half"},
		{"unknown zone", "LEDGER_TIMEZONE", "Mars/Olympus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
