// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// deep-video-discovery server. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the API key, token parameters, and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database and the video database folder.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Video holds ingestion settings: resolution, decoding rate and the
	// external tools used to download and decode videos.
	Video Video `envPrefix:"VIDEO_"`

	// Workers holds settings for the background job workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// Platform holds the un-prefixed variables set by the hosting platform
	// and by older deployments.
	Platform Platform

	// LogLevel is the minimal level emitted by the logger.
	// Env: LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// APIKey is the shared secret clients present (directly or exchanged for
	// a bearer token). Required.
	// Env: APP_API_KEY (or API_KEY)
	APIKey string `env:"API_KEY" json:"-"`

	// TokenSignKey signs bearer tokens. Derived from APIKey when empty.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY" json:"-"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a bearer token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the video database folder settings.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the backend: "postgres://..." uses pgx, anything else is a
	// SQLite file path. Defaults to <video database>/dvd.db.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for the video database.
type Files struct {
	// VideoDatabaseDir is the root folder of the video database. Raw videos
	// live in <dir>/raw and decoded frames in <dir>/<video>/frames.
	// Env: STORAGE_FILES_VIDEO_DATABASE_DIR (or VIDEO_DATABASE_FOLDER)
	VideoDatabaseDir string `env:"VIDEO_DATABASE_DIR"`
}

// Video holds ingestion settings.
type Video struct {
	// Resolution is the maximum height requested from YouTube.
	// Env: VIDEO_RESOLUTION
	Resolution int `env:"RESOLUTION"`

	// FPS is the target frame rate for frame decoding. Zero takes
	// DefaultFPS; a negative rate (SourceFPS) keeps the source frame rate.
	// Env: VIDEO_FPS
	FPS float64 `env:"FPS"`

	// YtDlpPath is the yt-dlp executable.
	// Env: VIDEO_YTDLP_PATH
	YtDlpPath string `env:"YTDLP_PATH"`

	// FFmpegPath is the ffmpeg executable.
	// Env: VIDEO_FFMPEG_PATH
	FFmpegPath string `env:"FFMPEG_PATH"`

	// FFprobePath is the ffprobe executable.
	// Env: VIDEO_FFPROBE_PATH
	FFprobePath string `env:"FFPROBE_PATH"`

	// CookiesFile is a Netscape cookies file passed to yt-dlp.
	// Env: VIDEO_COOKIES_FILE (or YOUTUBE_COOKIES)
	CookiesFile string `env:"COOKIES_FILE"`

	// SubtitleMaxRetries bounds subtitle download attempts.
	// Env: VIDEO_SUBTITLE_MAX_RETRIES
	SubtitleMaxRetries int `env:"SUBTITLE_MAX_RETRIES"`

	// RetryBaseDelay is the base wait between subtitle download attempts.
	// Env: VIDEO_RETRY_BASE_DELAY
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY"`
}

// Workers holds configuration for background job workers.
type Workers struct {
	// Count is the number of concurrent job workers.
	// Env: WORKERS_COUNT
	Count int `env:"COUNT"`

	// QueueSize is the capacity of the job queue.
	// Env: WORKERS_QUEUE_SIZE
	QueueSize int `env:"QUEUE_SIZE"`
}

// Platform holds un-prefixed variables. They feed the structured fields in
// [StructuredConfig.applyPlatform] only when those are still empty.
type Platform struct {
	// Port is the platform-assigned listening port.
	Port string `env:"PORT"`

	// APIKey is the un-prefixed form of App.APIKey.
	APIKey string `env:"API_KEY" json:"-"`

	// VideoDatabaseFolder is the un-prefixed form of the video database dir.
	VideoDatabaseFolder string `env:"VIDEO_DATABASE_FOLDER"`

	// YouTubeCookies is the un-prefixed form of Video.CookiesFile.
	YouTubeCookies string `env:"YOUTUBE_COOKIES"`
}

// GetStructuredConfig loads, merges, defaults and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. .env file (never overrides variables already set)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withJSON().
		build()
}
