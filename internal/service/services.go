package service

import (
	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/store"
	"github.com/MKhiriev/deep-video-discovery/internal/utils"
)

type Services struct {
	AuthService    AuthService
	VideoService   VideoService
	AppInfoService AppInfoService
	Queue          JobQueue
}

// NewServices wires the server services. The video service is wrapped with
// request validation; the queue is shared with the job workers.
func NewServices(storages *store.Storages, ingestor Ingestor, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	queue := NewQueue(cfg.Workers)
	videoService := NewVideoService(storages.VideoRepository, ingestor, queue, utils.NewUUIDGenerator(), cfg, logger)

	return &Services{
		AuthService:    NewAuthService(cfg.App, logger),
		VideoService:   NewVideoValidationService().Wrap(videoService),
		AppInfoService: appInfoService,
		Queue:          queue,
	}, nil
}
