package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ALLOWED_HOSTS", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DEBUG", "")

	cfg := Load()
	assert.Equal(t, "varejo", cfg.AppName)
	assert.Equal(t, []string{"*"}, cfg.AllowedHosts)
	assert.Equal(t, "sqlite:///db.sqlite3", cfg.DatabaseURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "pt-br", cfg.LanguageCode)
}

func TestLoadParsesLists(t *testing.T) {
	t.Setenv("ALLOWED_HOSTS", "shop.example.com, .example.org ,")
	t.Setenv("DEBUG_LOGGERS", "catalog,sales")
	t.Setenv("DEBUG", "off")

	cfg := Load()
	assert.Equal(t, []string{"shop.example.com", ".example.org"}, cfg.AllowedHosts)
	assert.Equal(t, []string{"catalog", "sales"}, cfg.DebugLoggers)
	assert.False(t, cfg.Debug)
}

func TestHostAllowed(t *testing.T) {
	cfg := Config{AllowedHosts: []string{"shop.example.com", ".example.org"}}

	assert.True(t, cfg.HostAllowed("shop.example.com"))
	assert.True(t, cfg.HostAllowed("SHOP.example.com:8080"))
	assert.True(t, cfg.HostAllowed("example.org"))
	assert.True(t, cfg.HostAllowed("api.example.org"))
	assert.False(t, cfg.HostAllowed("evil.com"))
	assert.False(t, cfg.HostAllowed("badexample.org"))

	assert.True(t, Config{AllowedHosts: []string{"*"}}.HostAllowed("anything"))
}

func TestRetailConfigPageSize(t *testing.T) {
	cfg := DefaultRetailConfig()
	assert.Equal(t, 50, cfg.PageSize(0))
	assert.Equal(t, 10, cfg.PageSize(10))
	assert.Equal(t, 250, cfg.PageSize(1000))
}

func TestValidateRetailConfig(t *testing.T) {
	assert.NoError(t, validateRetailConfig(DefaultRetailConfig()))

	bad := DefaultRetailConfig()
	bad.Coupon.MaxUsages = 0
	assert.Error(t, validateRetailConfig(bad))

	bad = DefaultRetailConfig()
	bad.Pagination.MaxPageSize = 10
	assert.Error(t, validateRetailConfig(bad))
}
