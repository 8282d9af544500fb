package config

import (
	"testing"
	"time"

	"songvault/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	log := logger.New("test")
	longSecret := "0123456789abcdef0123456789abcdef"

	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name:      "valid production config",
			config:    Config{ServerPort: 8280, JWTSecret: longSecret},
			wantError: false,
		},
		{
			name:      "invalid port",
			config:    Config{ServerPort: 0, JWTSecret: longSecret},
			wantError: true,
		},
		{
			name:      "missing secret",
			config:    Config{ServerPort: 8280},
			wantError: true,
		},
		{
			name:      "short secret outside development",
			config:    Config{ServerPort: 8280, JWTSecret: "short", Environment: "production"},
			wantError: true,
		},
		{
			name:      "short secret allowed in development",
			config:    Config{ServerPort: 8280, JWTSecret: "short", Environment: "development"},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.config, log)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	config := Config{}
	applyDefaults(&config)

	assert.Equal(t, 15*time.Minute, config.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, config.RefreshTokenTTL())
	assert.Equal(t, "media", config.MediaRoot)
	assert.Equal(t, "/media/", config.MediaURL)

	custom := Config{AccessTokenTTLMinutes: 5, MediaURL: "https://cdn.example.com/"}
	applyDefaults(&custom)
	assert.Equal(t, 5*time.Minute, custom.AccessTokenTTL())
	assert.Equal(t, "https://cdn.example.com/", custom.MediaURL)
}
