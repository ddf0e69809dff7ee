package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aytac78/order-business-app-sub001/kitchen"
)

type Config struct {
	Port               string
	GinMode            string
	LogLevel           string
	DBDriver           string
	DBDSN              string
	JWTSecret          string
	ChangePollInterval time.Duration
	WriteRetryInterval time.Duration
	OverdueAfter       time.Duration
	RateLimit          int
	// SeedVenues berisi "id:nama" yang dibuat saat start jika belum ada
	SeedVenues []string
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	// .env opsional, env variable tetap menang
	_ = godotenv.Load()

	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		DBDriver:  getEnv("DB_DRIVER", "mysql"),
		DBDSN:     os.Getenv("DB_DSN"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if raw := os.Getenv("SEED_VENUES"); raw != "" {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				cfg.SeedVenues = append(cfg.SeedVenues, v)
			}
		}
	}

	var err error
	if cfg.ChangePollInterval, err = getDuration("CHANGE_POLL_INTERVAL", 500*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.WriteRetryInterval, err = getDuration("WRITE_RETRY_INTERVAL", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.OverdueAfter, err = getDuration("OVERDUE_AFTER", kitchen.DefaultOverdueAfter); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 50); err != nil {
		return Config{}, err
	}

	if cfg.DBDriver == "sqlite" && cfg.DBDSN == "" {
		cfg.DBDSN = "kitchen.db"
	}
	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN is required for driver %s", cfg.DBDriver)
	}
	return cfg, nil
}

// InitDB opens the configured database.
func InitDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gormCfg := &gorm.Config{}
	if cfg.GinMode == "release" {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	return gorm.Open(dialector, gormCfg)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}
