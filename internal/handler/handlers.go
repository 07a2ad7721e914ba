package handler

import (
	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/handler/http"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
