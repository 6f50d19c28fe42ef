package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"gorm.io/gorm/logger"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Maintenance
		Audit
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		URL      string // sqlite file path or postgres:// URL
		LogLevel string // silent, error, warn, info
	}
	Maintenance struct {
		ReadOnly bool // Reject purchases and progress writes
	}
	Audit struct {
		Enabled         bool
		RetentionDays   int    // Days to keep audit events (default: 30)
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Enabled         bool
		DatabasePath    string
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

// GormLogLevel maps the configured database log level onto gorm's levels.
// Unknown values fall back to warn.
func (d Database) GormLogLevel() logger.LogLevel {
	switch strings.ToLower(d.LogLevel) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_url", DefaultDatabaseURL)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("read_only_mode", false)

	// Audit defaults
	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *") // Daily at 03:00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_database_path", "")
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			URL:      v.GetString("DATABASE_URL"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Maintenance: Maintenance{
			ReadOnly: v.GetBool("READ_ONLY_MODE"),
		},
		Audit: Audit{
			Enabled:         v.GetBool("AUDIT_ENABLED"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DatabasePath:    v.GetString("TASKS_DATABASE_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
