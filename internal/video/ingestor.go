// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package video

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/srt"
	"github.com/MKhiriev/deep-video-discovery/models"
)

const subtitleFileName = "subtitles.srt"

// Stage reports ingestion progress to the caller.
type Stage func(ctx context.Context, status models.VideoStatus, result IngestResult) error

// IngestResult accumulates what Ingest produced so far.
type IngestResult struct {
	Load   LoadResult
	Frames FrameResult
	// Decoded is true when Frames is set.
	Decoded bool
}

// Ingestor ties together loading, frame decoding and subtitle download over
// one video database.
type Ingestor struct {
	loader      *Loader
	decoder     *FrameDecoder
	subtitles   *SubtitleDownloader
	databaseDir string
	logger      *logger.Logger
}

func NewIngestor(runner CommandRunner, cfg config.Video, files config.Files, logger *logger.Logger) *Ingestor {
	return &Ingestor{
		loader:      NewLoader(runner, cfg, files, logger),
		decoder:     NewFrameDecoder(runner, cfg, files, logger),
		subtitles:   NewSubtitleDownloader(runner, cfg, logger),
		databaseDir: files.VideoDatabaseDir,
		logger:      logger,
	}
}

// Ingest loads req.Source and, when req.DecodeFrames is set, decodes it.
// stage is called with ready after the load and with decoding before the
// decode, so the caller can persist progress. A stage error aborts.
func (i *Ingestor) Ingest(ctx context.Context, req models.LoadRequest, stage Stage) (IngestResult, error) {
	var result IngestResult

	loaded, err := i.loader.LoadVideo(ctx, req.Source, req.WithSubtitle, req.SubtitleSource)
	if err != nil {
		return result, err
	}
	result.Load = loaded

	if loaded.SubtitlePath != "" {
		if _, err = srt.ParseFile(loaded.SubtitlePath); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("subtitle", loaded.SubtitlePath).Msg("stored subtitle is not valid SRT")
		}
	}

	if err = stage(ctx, models.StatusReady, result); err != nil {
		return result, err
	}
	if !req.DecodeFrames {
		return result, nil
	}

	if err = stage(ctx, models.StatusDecoding, result); err != nil {
		return result, err
	}
	frames, err := i.decoder.DecodeVideoToFrames(ctx, loaded.VideoPath)
	if err != nil {
		return result, err
	}
	result.Frames = frames
	result.Decoded = true

	return result, nil
}

// DecodeVideoToFrames delegates to the FrameDecoder.
func (i *Ingestor) DecodeVideoToFrames(ctx context.Context, videoPath string) (FrameResult, error) {
	return i.decoder.DecodeVideoToFrames(ctx, videoPath)
}

// FetchSubtitle downloads the subtitle of a YouTube video to
// <db>/<external id>/subtitles.srt and returns that absolute path.
func (i *Ingestor) FetchSubtitle(ctx context.Context, videoURL, externalID, lang string) (string, error) {
	if externalID == "" {
		id, err := ExtractYouTubeID(videoURL)
		if err != nil {
			return "", err
		}
		externalID = id
	}

	outputPath, err := filepath.Abs(filepath.Join(i.databaseDir, externalID, subtitleFileName))
	if err != nil {
		return "", err
	}

	if err = i.subtitles.DownloadSRTSubtitleLang(ctx, videoURL, outputPath, lang); err != nil {
		return "", err
	}
	if _, err = srt.ParseFile(outputPath); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSubtitle, err)
	}

	return outputPath, nil
}

// FramesDir returns the directory frames of videoPath are written to.
func (i *Ingestor) FramesDir(videoPath string) string {
	return i.decoder.FramesDir(videoPath)
}
