// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/deep-video-discovery/internal/utils"
)

const (
	DefaultHTTPPort           = "8080"
	DefaultVideoDatabaseDir   = "./video_database"
	DefaultDBFileName         = "dvd.db"
	DefaultTokenIssuer        = "deep-video-discovery"
	DefaultTokenDuration      = 24 * time.Hour
	DefaultRequestTimeout     = 30 * time.Second
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultResolution         = 360
	DefaultFPS                = 2
	DefaultYtDlpPath          = "yt-dlp"
	DefaultFFmpegPath         = "ffmpeg"
	DefaultFFprobePath        = "ffprobe"
	DefaultSubtitleMaxRetries = 5
	DefaultRetryBaseDelay     = 3 * time.Second
	DefaultWorkersCount       = 2
	DefaultQueueSize          = 32
)

// SourceFPS as the target frame rate exports every frame of the video.
const SourceFPS = -1

// applyPlatform copies un-prefixed platform variables into the structured
// fields that are still empty.
func (cfg *StructuredConfig) applyPlatform() {
	p := cfg.Platform

	if cfg.App.APIKey == "" {
		cfg.App.APIKey = p.APIKey
	}
	if cfg.Storage.Files.VideoDatabaseDir == "" {
		cfg.Storage.Files.VideoDatabaseDir = p.VideoDatabaseFolder
	}
	if cfg.Video.CookiesFile == "" {
		cfg.Video.CookiesFile = p.YouTubeCookies
	}
	// the platform routes traffic to $PORT on every interface
	if cfg.Server.HTTPAddress == "" && p.Port != "" {
		cfg.Server.HTTPAddress = "0.0.0.0:" + p.Port
	}
}

// applyDefaults fills every optional field left empty by all sources.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "0.0.0.0:" + DefaultHTTPPort
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Storage.Files.VideoDatabaseDir == "" {
		cfg.Storage.Files.VideoDatabaseDir = DefaultVideoDatabaseDir
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = filepath.Join(cfg.Storage.Files.VideoDatabaseDir, DefaultDBFileName)
	}

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.TokenSignKey == "" && cfg.App.APIKey != "" {
		cfg.App.TokenSignKey = deriveSignKey(cfg.App.APIKey)
	}

	if cfg.Video.Resolution == 0 {
		cfg.Video.Resolution = DefaultResolution
	}
	if cfg.Video.FPS == 0 {
		cfg.Video.FPS = DefaultFPS
	}
	if cfg.Video.YtDlpPath == "" {
		cfg.Video.YtDlpPath = DefaultYtDlpPath
	}
	if cfg.Video.FFmpegPath == "" {
		cfg.Video.FFmpegPath = DefaultFFmpegPath
	}
	if cfg.Video.FFprobePath == "" {
		cfg.Video.FFprobePath = DefaultFFprobePath
	}
	if cfg.Video.SubtitleMaxRetries == 0 {
		cfg.Video.SubtitleMaxRetries = DefaultSubtitleMaxRetries
	}
	if cfg.Video.RetryBaseDelay == 0 {
		cfg.Video.RetryBaseDelay = DefaultRetryBaseDelay
	}

	if cfg.Workers.Count == 0 {
		cfg.Workers.Count = DefaultWorkersCount
	}
	if cfg.Workers.QueueSize == 0 {
		cfg.Workers.QueueSize = DefaultQueueSize
	}
}

// deriveSignKey turns the API key into a token signing key so that a leaked
// bearer token never exposes the API key itself.
func deriveSignKey(apiKey string) string {
	return utils.HashString(DefaultTokenIssuer, apiKey)
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.App.APIKey) == "" {
		return fmt.Errorf("%w: API key is not set (APP_API_KEY or API_KEY)", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration < 0 {
		return fmt.Errorf("%w: negative token duration", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.Files.VideoDatabaseDir == "" || cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Video.Resolution < 0 || math.IsNaN(cfg.Video.FPS) || cfg.Video.SubtitleMaxRetries < 1 || cfg.Video.RetryBaseDelay < 0 {
		return ErrInvalidVideoConfigs
	}

	if cfg.Workers.Count < 1 || cfg.Workers.QueueSize < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.ServerAddress == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.APIKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
