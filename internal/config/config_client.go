package config

import (
	"fmt"
	"time"
)

const (
	DefaultClientServerAddress  = "http://localhost:8080"
	DefaultClientRequestTimeout = 60 * time.Second
)

// ClientConfig is the configuration of the `dvd` CLI.
//
// Env values are read first; non-zero values set by command-line flags
// (see [ClientConfig.Override]) replace them.
type ClientConfig struct {
	// ServerAddress is the base URL of the deep-video-discovery server.
	// Env: DVD_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// APIKey is exchanged for a bearer token on every CLI invocation.
	// Env: DVD_API_KEY
	APIKey string `env:"API_KEY"`

	// RequestTimeout is the default timeout for outbound requests.
	// Env: DVD_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LogLevel of the console logger.
	// Env: DVD_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

type clientEnv struct {
	Client ClientConfig `envPrefix:"DVD_"`
}

// GetClientConfig reads the client configuration from the .env file and
// the environment, applies overrides and defaults, and validates it.
func GetClientConfig(overrides ClientConfig) (*ClientConfig, error) {
	if err := loadDotEnv(dotEnvFiles...); err != nil {
		return nil, err
	}

	var parsed clientEnv
	if err := parseEnv(&parsed); err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	cfg := &parsed.Client
	cfg.Override(overrides)

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = DefaultClientServerAddress
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultClientRequestTimeout
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Override replaces fields of cfg with the non-zero fields of o.
func (cfg *ClientConfig) Override(o ClientConfig) {
	if o.ServerAddress != "" {
		cfg.ServerAddress = o.ServerAddress
	}
	if o.APIKey != "" {
		cfg.APIKey = o.APIKey
	}
	if o.RequestTimeout != 0 {
		cfg.RequestTimeout = o.RequestTimeout
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
}
