package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "")
	t.Setenv("CHANGE_POLL_INTERVAL", "")
	t.Setenv("OVERDUE_AFTER", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "kitchen.db", cfg.DBDSN)
	assert.Equal(t, 500*time.Millisecond, cfg.ChangePollInterval)
	assert.Equal(t, 10*time.Minute, cfg.OverdueAfter)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/kitchen?parseTime=true")
	t.Setenv("CHANGE_POLL_INTERVAL", "2s")
	t.Setenv("OVERDUE_AFTER", "15m")
	t.Setenv("RATE_LIMIT", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.ChangePollInterval)
	assert.Equal(t, 15*time.Minute, cfg.OverdueAfter)
	assert.Equal(t, 10, cfg.RateLimit)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("CHANGE_POLL_INTERVAL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresDSNForMySQL(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_DSN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestInitDBUnknownDriver(t *testing.T) {
	_, err := InitDB(Config{DBDriver: "oracle", DBDSN: "x"})
	assert.Error(t, err)
}

func TestLoadSeedVenues(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SEED_VENUES", "venue-1:Meyhane, venue-2 ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"venue-1:Meyhane", "venue-2"}, cfg.SeedVenues)
}
