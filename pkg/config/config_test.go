package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "DB_HOST", "DB_NAME", "ALERT_CRON"} {
		t.Setenv(key, "")
	}
	t.Setenv("PORT", "4100")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_NAME", "stock")
	t.Setenv("ALERT_CRON", "@hourly")

	cfg := Load()

	assert.Equal(t, "4100", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Contains(t, cfg.DB.DSN, "host=db.local")
	assert.Contains(t, cfg.DB.DSN, "dbname=stock")
	assert.Equal(t, "@hourly", cfg.AlertCron)
}

func TestLoadKeepsExplicitDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@h:5432/x")

	cfg := Load()

	assert.Equal(t, "postgres://u:p@h:5432/x", cfg.DB.DSN)
}

func TestLoadClient(t *testing.T) {
	t.Setenv("API_URL", "http://pharma.test/api")
	t.Setenv("API_TIMEOUT_SECONDS", "3")

	cfg := LoadClient()

	assert.Equal(t, "http://pharma.test/api", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, GetEnvAsInt("SOME_INT", 7))
	t.Setenv("SOME_INT", "12")
	assert.Equal(t, 12, GetEnvAsInt("SOME_INT", 7))
}
