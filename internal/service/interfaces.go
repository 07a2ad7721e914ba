package service

import (
	"context"

	"github.com/MKhiriev/deep-video-discovery/internal/video"
	"github.com/MKhiriev/deep-video-discovery/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// VideoService is the use-case layer behind the REST API and the job workers.
type VideoService interface {
	// Load registers a video and queues its ingestion. created is false when
	// an existing video was returned instead.
	Load(ctx context.Context, req models.LoadRequest) (video models.Video, created bool, err error)

	Get(ctx context.Context, id string) (models.Video, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Video, error)
	Delete(ctx context.Context, id string) error

	// DecodeFrames queues a decode job for an already loaded video.
	DecodeFrames(ctx context.Context, id string) (models.Video, error)
	// FetchSubtitle queues a subtitle download for a YouTube video.
	FetchSubtitle(ctx context.Context, id string, req models.SubtitleRequest) (models.Video, error)

	Subtitles(ctx context.Context, id string) ([]models.Cue, error)
	Frames(ctx context.Context, id string) ([]string, error)
	FramePath(ctx context.Context, id, name string) (string, error)

	// Process runs one queued job.
	Process(ctx context.Context, job models.Job) error
	// MarkFailed moves the video to failed with reason as its error message.
	MarkFailed(ctx context.Context, id string, reason error) error
	// Unfinished returns the jobs of videos left in flight by a previous run.
	Unfinished(ctx context.Context) ([]models.Job, error)
}

type AuthService interface {
	// IssueToken checks apiKey and returns a signed bearer token for clientID.
	IssueToken(ctx context.Context, apiKey, clientID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	CheckAPIKey(ctx context.Context, apiKey string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// JobQueue buffers jobs between the API and the job workers.
type JobQueue interface {
	// Enqueue adds job without blocking. It fails with ErrQueueFull when the
	// queue is saturated.
	Enqueue(ctx context.Context, job models.Job) error
	// Push blocks until job is queued or ctx is done.
	Push(ctx context.Context, job models.Job) error
	Jobs() <-chan models.Job
}

// Ingestor runs the external tools that load, decode and subtitle videos.
type Ingestor interface {
	Ingest(ctx context.Context, req models.LoadRequest, stage video.Stage) (video.IngestResult, error)
	DecodeVideoToFrames(ctx context.Context, videoPath string) (video.FrameResult, error)
	FetchSubtitle(ctx context.Context, videoURL, externalID, lang string) (string, error)
	FramesDir(videoPath string) string
}

// IDGenerator produces ids for new videos.
type IDGenerator interface {
	Generate() string
}

// VideoServiceWrapper defines middleware composition for VideoService.
// Implementations wrap an existing VideoService to add behavior such as
// logging or validating.
type VideoServiceWrapper interface {
	Wrap(VideoService) VideoService // returns a decorated VideoService applying additional behavior
}
