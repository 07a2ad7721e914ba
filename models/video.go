// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SourceType tells where a video was ingested from.
type SourceType string

const (
	// SourceYouTube marks videos downloaded from a YouTube URL with yt-dlp.
	SourceYouTube SourceType = "youtube"
	// SourceLocal marks videos copied from a path on the server filesystem.
	SourceLocal SourceType = "local"
)

// VideoStatus is the ingestion lifecycle state of a [Video].
//
// The normal path is pending → downloading → ready → decoding → decoded.
// Any in-flight state may move to failed.
type VideoStatus string

const (
	StatusPending     VideoStatus = "pending"
	StatusDownloading VideoStatus = "downloading"
	StatusReady       VideoStatus = "ready"
	StatusDecoding    VideoStatus = "decoding"
	StatusDecoded     VideoStatus = "decoded"
	StatusFailed      VideoStatus = "failed"
)

var allVideoStatuses = []VideoStatus{
	StatusPending,
	StatusDownloading,
	StatusReady,
	StatusDecoding,
	StatusDecoded,
	StatusFailed,
}

// IsValid reports whether s is one of the known statuses.
func (s VideoStatus) IsValid() bool {
	for _, status := range allVideoStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no job is expected to move the video further
// without a new request.
func (s VideoStatus) IsTerminal() bool {
	return s == StatusReady || s == StatusDecoded || s == StatusFailed
}

// IsInFlight reports whether a worker owns the video right now. Videos left
// in these states after a restart are re-queued.
func (s VideoStatus) IsInFlight() bool {
	return s == StatusPending || s == StatusDownloading || s == StatusDecoding
}

// Video is a single entry of the video database.
type Video struct {
	// ID is a server-assigned UUIDv7.
	ID string `json:"id"`

	SourceType SourceType `json:"source_type"`

	// Source is the URL or local path the video was requested from.
	Source string `json:"source"`

	// ExternalID is the YouTube video id. Empty for local videos.
	ExternalID string `json:"external_id,omitempty"`

	// FileName is the base name of the stored video file.
	FileName string `json:"file_name,omitempty"`

	// Path is the absolute path of the stored video inside <db>/raw.
	Path string `json:"path,omitempty"`

	// SubtitlePath is the absolute path of the SRT file, if any.
	SubtitlePath string `json:"subtitle_path,omitempty"`

	// FramesDir is the absolute path of the decoded frames directory.
	FramesDir string `json:"frames_dir,omitempty"`

	FrameCount int `json:"frame_count"`

	// FPS is the target decoding rate the frames were extracted at.
	FPS float64 `json:"fps,omitempty"`

	Status VideoStatus `json:"status"`

	// Error holds the last failure message when Status is failed.
	Error string `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// The options of the load request are kept so that an interrupted
	// ingestion can be re-queued after a restart.
	WithSubtitle   bool   `json:"with_subtitle"`
	SubtitleSource string `json:"subtitle_source,omitempty"`
	DecodeFrames   bool   `json:"decode_frames"`
}

// LoadRequest rebuilds the request the video was created from.
func (v Video) LoadRequest() LoadRequest {
	return LoadRequest{
		Source:         v.Source,
		WithSubtitle:   v.WithSubtitle,
		SubtitleSource: v.SubtitleSource,
		DecodeFrames:   v.DecodeFrames,
	}
}
