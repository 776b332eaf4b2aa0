package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/paymentrails/monei-sync/internal/application"
)

// Config is the resolved runtime configuration for the sync service.
// It merges file defaults and environment overrides to support both local and deployed runs.
type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL string
	RedisURL    string

	APIBaseURL   string
	DashboardURL string
	// APIKey seeds the settings store on first boot; after that the stored
	// key wins and rotation goes through the settings API.
	APIKey      string
	HTTPTimeout time.Duration

	PageSize          int
	ChangeDetection   string
	StoreLookupPolicy string

	SyncInterval       time.Duration
	CronWindow         time.Duration
	SyncLockTTL        time.Duration
	CreatePollAttempts int
	CreatePollDelay    time.Duration

	MaxDBConns int32
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Monei struct {
		APIURL             string `yaml:"api_url"`
		DashboardURL       string `yaml:"dashboard_url"`
		APIKey             string `yaml:"api_key"`
		HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds"`
		PageSize           int    `yaml:"page_size"`
	} `yaml:"monei"`
	Sync struct {
		ChangeDetection        string `yaml:"change_detection"`
		StoreLookupPolicy      string `yaml:"store_lookup_policy"`
		IntervalMinutes        int    `yaml:"interval_minutes"`
		CronWindowHours        int    `yaml:"cron_window_hours"`
		LockTTLMinutes         int    `yaml:"lock_ttl_minutes"`
		CreatePollAttempts     int    `yaml:"create_poll_attempts"`
		CreatePollDelaySeconds int    `yaml:"create_poll_delay_seconds"`
	} `yaml:"sync"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// This order keeps local bootstrap simple while allowing environment-specific overrides.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:          "monei-sync",
		HTTPPort:           8080,
		GRPCPort:           9090,
		APIBaseURL:         "https://graphql.monei.com",
		DashboardURL:       "https://dashboard.monei.com",
		HTTPTimeout:        30 * time.Second,
		PageSize:           1000,
		ChangeDetection:    application.ChangeDetectionFieldDiff,
		StoreLookupPolicy:  application.StoreLookupAbort,
		SyncInterval:       time.Hour,
		CronWindow:         24 * time.Hour,
		SyncLockTTL:        10 * time.Minute,
		CreatePollAttempts: 10,
		CreatePollDelay:    time.Second,
		MaxDBConns:         20,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Monei.APIURL != "" {
			cfg.APIBaseURL = f.Monei.APIURL
		}
		if f.Monei.DashboardURL != "" {
			cfg.DashboardURL = f.Monei.DashboardURL
		}
		if f.Monei.APIKey != "" {
			cfg.APIKey = f.Monei.APIKey
		}
		if f.Monei.HTTPTimeoutSeconds > 0 {
			cfg.HTTPTimeout = time.Duration(f.Monei.HTTPTimeoutSeconds) * time.Second
		}
		if f.Monei.PageSize > 0 {
			cfg.PageSize = f.Monei.PageSize
		}
		if f.Sync.ChangeDetection != "" {
			cfg.ChangeDetection = f.Sync.ChangeDetection
		}
		if f.Sync.StoreLookupPolicy != "" {
			cfg.StoreLookupPolicy = f.Sync.StoreLookupPolicy
		}
		if f.Sync.IntervalMinutes > 0 {
			cfg.SyncInterval = time.Duration(f.Sync.IntervalMinutes) * time.Minute
		}
		if f.Sync.CronWindowHours > 0 {
			cfg.CronWindow = time.Duration(f.Sync.CronWindowHours) * time.Hour
		}
		if f.Sync.LockTTLMinutes > 0 {
			cfg.SyncLockTTL = time.Duration(f.Sync.LockTTLMinutes) * time.Minute
		}
		if f.Sync.CreatePollAttempts > 0 {
			cfg.CreatePollAttempts = f.Sync.CreatePollAttempts
		}
		if f.Sync.CreatePollDelaySeconds > 0 {
			cfg.CreatePollDelay = time.Duration(f.Sync.CreatePollDelaySeconds) * time.Second
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.APIBaseURL = envOrDefault("MONEI_API_URL", cfg.APIBaseURL)
	cfg.DashboardURL = envOrDefault("MONEI_DASHBOARD_URL", cfg.DashboardURL)
	cfg.APIKey = envOrDefault("MONEI_API_KEY", cfg.APIKey)
	cfg.ChangeDetection = envOrDefault("SYNC_CHANGE_DETECTION", cfg.ChangeDetection)
	cfg.StoreLookupPolicy = envOrDefault("SYNC_STORE_LOOKUP_POLICY", cfg.StoreLookupPolicy)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.PageSize = envInt("MONEI_PAGE_SIZE", cfg.PageSize)
	cfg.CreatePollAttempts = envInt("SYNC_CREATE_POLL_ATTEMPTS", cfg.CreatePollAttempts)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))

	cfg.HTTPTimeout = time.Duration(envInt("MONEI_HTTP_TIMEOUT_SECONDS", int(cfg.HTTPTimeout.Seconds()))) * time.Second
	cfg.SyncInterval = time.Duration(envInt("SYNC_INTERVAL_MINUTES", int(cfg.SyncInterval.Minutes()))) * time.Minute
	cfg.CronWindow = time.Duration(envInt("SYNC_CRON_WINDOW_HOURS", int(cfg.CronWindow.Hours()))) * time.Hour
	cfg.SyncLockTTL = time.Duration(envInt("SYNC_LOCK_TTL_MINUTES", int(cfg.SyncLockTTL.Minutes()))) * time.Minute
	cfg.CreatePollDelay = time.Duration(envInt("SYNC_CREATE_POLL_DELAY_SECONDS", int(cfg.CreatePollDelay.Seconds()))) * time.Second

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	switch cfg.ChangeDetection {
	case application.ChangeDetectionFieldDiff, application.ChangeDetectionTimestamp:
	default:
		return Config{}, fmt.Errorf("invalid SYNC_CHANGE_DETECTION %q", cfg.ChangeDetection)
	}
	switch cfg.StoreLookupPolicy {
	case application.StoreLookupAbort, application.StoreLookupDegrade:
	default:
		return Config{}, fmt.Errorf("invalid SYNC_STORE_LOOKUP_POLICY %q", cfg.StoreLookupPolicy)
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
