package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptySource               = errors.New("source is required")
	ErrSourceTooLong             = errors.New("source is too long")
	ErrNotYouTubeURL             = errors.New("only YouTube URLs are supported as remote sources")
	ErrSubtitleSourceRequired    = errors.New("subtitle_source is required for local videos with subtitles")
	ErrUnsupportedSubtitleFormat = errors.New("subtitle_source must be an .srt file")
	ErrInvalidLanguage           = errors.New("invalid subtitle language")
	ErrInvalidStatus             = errors.New("invalid video status")
	ErrInvalidLimit              = errors.New("invalid limit")
	ErrInvalidVideoID            = errors.New("invalid video id")
)
