package http

import (
	"time"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/service"
)

// DefaultRequestTimeout bounds a request when the server config sets none.
const DefaultRequestTimeout = 30 * time.Second

type Handler struct {
	services *service.Services

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	logger.Info().Dur("request_timeout", timeout).Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: timeout,
		logger:         logger,
	}
}
