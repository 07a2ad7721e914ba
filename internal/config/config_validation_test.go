package config

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	cfg := &StructuredConfig{App: App{APIKey: "key"}}
	cfg.applyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(*StructuredConfig) {},
		},
		{
			name:    "blank API key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.APIKey = "   " },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "negative token duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenDuration = -time.Second },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "empty address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "empty DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:   "source fps",
			mutate: func(cfg *StructuredConfig) { cfg.Video.FPS = SourceFPS },
		},
		{
			name:    "fps not a number",
			mutate:  func(cfg *StructuredConfig) { cfg.Video.FPS = math.NaN() },
			wantErr: ErrInvalidVideoConfigs,
		},
		{
			name:    "negative subtitle retries",
			mutate:  func(cfg *StructuredConfig) { cfg.Video.SubtitleMaxRetries = -2 },
			wantErr: ErrInvalidVideoConfigs,
		},
		{
			name:    "negative workers",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.Count = -1 },
			wantErr: ErrInvalidWorkerConfigs,
		},
		{
			name:    "negative queue",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.QueueSize = -1 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &StructuredConfig{
		App:     App{APIKey: "key", TokenSignKey: "explicit"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/dvd"}},
		Video:   Video{FPS: 0.5},
	}
	cfg.applyDefaults()

	assert.Equal(t, "explicit", cfg.App.TokenSignKey)
	assert.Equal(t, "postgres://localhost/dvd", cfg.Storage.DB.DSN)
	assert.Equal(t, 0.5, cfg.Video.FPS)
}

func TestDeriveSignKey_Deterministic(t *testing.T) {
	assert.Equal(t, deriveSignKey("a"), deriveSignKey("a"))
	assert.NotEqual(t, deriveSignKey("a"), deriveSignKey("b"))
	assert.Len(t, deriveSignKey("a"), 64)
}

func TestApplyPlatform_DoesNotOverrideStructured(t *testing.T) {
	cfg := &StructuredConfig{
		App:      App{APIKey: "structured"},
		Video:    Video{CookiesFile: "/structured/cookies.txt"},
		Platform: Platform{APIKey: "platform", YouTubeCookies: "/platform/cookies.txt"},
	}
	cfg.applyPlatform()

	assert.Equal(t, "structured", cfg.App.APIKey)
	assert.Equal(t, "/structured/cookies.txt", cfg.Video.CookiesFile)
}

// ── client config ─────────────────────────────────────────────────────────────

func TestGetClientConfig(t *testing.T) {
	t.Run("defaults and env", func(t *testing.T) {
		unsetEnv(t, "DVD_SERVER_ADDRESS", "DVD_REQUEST_TIMEOUT")
		t.Setenv("DVD_API_KEY", "env-key")

		cfg, err := GetClientConfig(ClientConfig{})
		require.NoError(t, err)
		assert.Equal(t, DefaultClientServerAddress, cfg.ServerAddress)
		assert.Equal(t, DefaultClientRequestTimeout, cfg.RequestTimeout)
		assert.Equal(t, "env-key", cfg.APIKey)
	})

	t.Run("overrides win", func(t *testing.T) {
		t.Setenv("DVD_API_KEY", "env-key")
		t.Setenv("DVD_SERVER_ADDRESS", "http://env:1")

		cfg, err := GetClientConfig(ClientConfig{
			ServerAddress:  "http://flag:2",
			APIKey:         "flag-key",
			RequestTimeout: time.Second,
			LogLevel:       "warn",
		})
		require.NoError(t, err)
		assert.Equal(t, "http://flag:2", cfg.ServerAddress)
		assert.Equal(t, "flag-key", cfg.APIKey)
		assert.Equal(t, time.Second, cfg.RequestTimeout)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("missing API key", func(t *testing.T) {
		unsetEnv(t, "DVD_API_KEY")

		cfg, err := GetClientConfig(ClientConfig{})
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrInvalidAppConfigs)
	})
}

func TestApplyDefaults_KeepsSourceFPS(t *testing.T) {
	cfg := &StructuredConfig{App: App{APIKey: "key"}, Video: Video{FPS: SourceFPS}}
	cfg.applyDefaults()

	require.NoError(t, cfg.validate())
	assert.Equal(t, float64(SourceFPS), cfg.Video.FPS)
}
