package store

import (
	"context"

	"github.com/MKhiriev/deep-video-discovery/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// VideoRepository persists the video database index.
type VideoRepository interface {
	CreateVideo(ctx context.Context, video models.Video) error
	GetVideo(ctx context.Context, id string) (models.Video, error)
	ListVideos(ctx context.Context, filter models.ListFilter) ([]models.Video, error)
	// UpdateVideo overwrites the mutable columns: status, paths, counts,
	// error and updated_at.
	UpdateVideo(ctx context.Context, video models.Video) error
	DeleteVideo(ctx context.Context, id string) error
	// FindBySource returns the newest video with the given YouTube id
	// (sourceType youtube) or source path (sourceType local).
	FindBySource(ctx context.Context, sourceType models.SourceType, key string) (models.Video, error)
	// FindFileReferences returns the videos other than excludeID whose files
	// are one of paths or lie inside one of them, or whose external id is
	// externalID. An empty externalID matches nothing.
	FindFileReferences(ctx context.Context, excludeID string, paths []string, externalID string) ([]models.Video, error)
}
