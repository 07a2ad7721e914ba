package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrInvalidVideoState = errors.New("operation is not allowed in the current video status")
	ErrVideoBusy         = errors.New("video is being processed")
	ErrNotYouTubeVideo   = errors.New("operation is only supported for YouTube videos")
	ErrNoSubtitles       = errors.New("video has no subtitles")
	ErrNoFrames          = errors.New("video has no decoded frames")
	ErrFrameNotFound     = errors.New("frame not found")
	ErrInvalidFrameName  = errors.New("invalid frame name")
	ErrUnknownJob        = errors.New("unknown job kind")
	ErrQueueFull         = errors.New("job queue is full")

	ErrWrongAPIKey             = errors.New("wrong API key")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

var (
	errNotPending  = errors.New("video is not pending")
	errNoVideoFile = errors.New("video has no file")
)
