package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabaseURL, cfg.Database.URL)
	assert.False(t, cfg.Maintenance.ReadOnly)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Audit.CleanupSchedule)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://store:secret@db:5432/store?sslmode=disable")
	t.Setenv("READ_ONLY_MODE", "true")
	t.Setenv("AUDIT_RETENTION_DAYS", "7")
	t.Setenv("TASKS_ENABLED", "false")
	t.Setenv("TASK_RELEASE_AFTER", "5m")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "postgres://store:secret@db:5432/store?sslmode=disable", cfg.Database.URL)
	assert.True(t, cfg.Maintenance.ReadOnly)
	assert.Equal(t, 7, cfg.Audit.RetentionDays)
	assert.False(t, cfg.Tasks.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Tasks.ReleaseAfter)
}

func TestDatabase_GormLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  logger.LogLevel
	}{
		{"silent", logger.Silent},
		{"ERROR", logger.Error},
		{"warn", logger.Warn},
		{"info", logger.Info},
		{"", logger.Warn},
		{"verbose", logger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, Database{LogLevel: tt.level}.GormLogLevel())
		})
	}
}
