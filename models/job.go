package models

// JobKind selects what a worker does with a video.
type JobKind string

const (
	// JobIngest loads the video (and optionally decodes it).
	JobIngest JobKind = "ingest"
	// JobDecode decodes an already loaded video into frames.
	JobDecode JobKind = "decode"
	// JobSubtitle downloads the SRT subtitle of a YouTube video.
	JobSubtitle JobKind = "subtitle"
)

// Job is a unit of background work queued for the job workers.
type Job struct {
	Kind    JobKind `json:"kind"`
	VideoID string  `json:"video_id"`

	// Subtitle is set for JobSubtitle. Ingest jobs read their options from
	// the stored video.
	Subtitle SubtitleRequest `json:"subtitle,omitempty"`
}
