// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the deep-video-discovery REST API.
//
// [ServerAdapter] hides the transport from the CLI. Error values defined in
// errors.go are mapped from HTTP status codes by mapHTTPError so that callers
// can use [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnavailable] for 503).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/deep-video-discovery/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter talks to one deep-video-discovery server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" when none is set.
	Token() string

	// Authenticate exchanges apiKey for a bearer token and stores it.
	Authenticate(ctx context.Context, apiKey, clientID string) (string, error)

	// Health reports whether the server answers GET /healthz.
	Health(ctx context.Context) error

	// Version returns the server build version.
	Version(ctx context.Context) (string, error)

	// Load submits a video. created is false when the server already knew
	// the source.
	Load(ctx context.Context, req models.LoadRequest) (video models.Video, created bool, err error)

	List(ctx context.Context, filter models.ListFilter) ([]models.Video, error)
	Get(ctx context.Context, id string) (models.Video, error)
	Delete(ctx context.Context, id string) error

	// DecodeFrames queues frame decoding of a stored video.
	DecodeFrames(ctx context.Context, id string) (models.Video, error)

	// Frames lists the decoded frame file names.
	Frames(ctx context.Context, id string) ([]string, error)

	// DownloadFrame streams one JPEG frame into dst.
	DownloadFrame(ctx context.Context, id, name string, dst io.Writer) (int64, error)

	// FetchSubtitle queues a subtitle download for a YouTube video.
	FetchSubtitle(ctx context.Context, id, language string) (models.Video, error)

	// Subtitles returns the parsed subtitle cues.
	Subtitles(ctx context.Context, id string) ([]models.Cue, error)

	// SubtitlesSRT returns the subtitle as raw SRT text.
	SubtitlesSRT(ctx context.Context, id string) (string, error)
}
