package config

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/events"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SMTP_HOST", "")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "8001", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "local", cfg.Events.Publisher)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.Mail.Enabled())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_DRIVER", "Memory")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("SMTP_HOST", "smtp.example.org")
	t.Setenv("SMTP_USERNAME", "exams@example.org")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "memory", cfg.DatabaseDriver)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.Mail.Enabled())
	assert.Equal(t, "exams@example.org", cfg.Mail.From)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.GetKafkaBrokers())
}

func TestCreateEventPublisher(t *testing.T) {
	logger := utils.NewDiscardLogger()

	cfg := EventConfig{Enabled: true, Publisher: "local", NotificationTopic: "notifications"}
	publisher, local, err := cfg.CreateEventPublisher(logger)
	require.NoError(t, err)
	require.NotNil(t, local)
	assert.Same(t, local, publisher)
	assert.NoError(t, publisher.Close())

	cfg = EventConfig{Enabled: false}
	publisher, local, err = cfg.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.Nil(t, local)
	assert.IsType(t, &events.MockEventPublisher{}, publisher)
}
