package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "profile_pics/default_student.png", cfg.Storage.StudentPlaceholder)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("STORAGE_BACKEND", "OSS")
	t.Setenv("ALI_OSS_BUCKET", "media")
	t.Setenv("DB_MAX_OPEN_CONNS", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://lms.example.com,https://admin.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, "oss", cfg.Storage.Backend)
	assert.Equal(t, "media", cfg.Storage.OSS.Bucket)
	assert.Equal(t, 5, cfg.DBMaxOpenConns)
	assert.Equal(t, []string{"https://lms.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "s3")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("LOG_LEVEL", "loud")
	_, err = LoadConfig()
	assert.Error(t, err)
}
