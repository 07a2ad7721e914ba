package models

// LoadRequest asks the server to put a video into the video database.
type LoadRequest struct {
	// Source is a YouTube URL or a path on the server filesystem.
	Source string `json:"source"`

	// WithSubtitle also fetches (YouTube) or copies (local) an SRT subtitle.
	WithSubtitle bool `json:"with_subtitle,omitempty"`

	// SubtitleSource is the local *.srt path when Source is local. For
	// YouTube sources it optionally names the subtitle language.
	SubtitleSource string `json:"subtitle_source,omitempty"`

	// DecodeFrames decodes the video into JPEG frames once it is loaded.
	DecodeFrames bool `json:"decode_frames,omitempty"`
}

// SubtitleRequest asks the server to download the SRT subtitle of a
// YouTube video.
type SubtitleRequest struct {
	// Language is a yt-dlp subtitle language code. Defaults to "en".
	Language string `json:"language,omitempty"`
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// ListFilter narrows a video listing.
type ListFilter struct {
	Status VideoStatus `json:"status,omitempty"`
	Limit  uint64      `json:"limit,omitempty"`
	Offset uint64      `json:"offset,omitempty"`
}

// Normalize clamps Limit into (0, MaxListLimit].
func (f ListFilter) Normalize() ListFilter {
	if f.Limit == 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	return f
}
