package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/handler"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/server"
	"github.com/MKhiriev/deep-video-discovery/internal/service"
	"github.com/MKhiriev/deep-video-discovery/internal/store"
	"github.com/MKhiriev/deep-video-discovery/internal/video"
	"github.com/MKhiriev/deep-video-discovery/internal/workers"
	"github.com/MKhiriev/deep-video-discovery/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("dvd-server", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("dvd-server", cfg.LogLevel)
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.Version
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("video_database", cfg.Storage.Files.VideoDatabaseDir).
		Int("workers", cfg.Workers.Count).
		Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, cfg.Storage.Files, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	ingestor := video.NewIngestor(video.NewExecRunner(), cfg.Video, cfg.Storage.Files, log)

	services, err := service.NewServices(storages, ingestor, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	jobWorkers := workers.NewWorkers(
		workers.NewJobWorker(services.VideoService, services.Queue, cfg.Workers, log),
	)

	srv, err := server.NewServer(handlers, jobWorkers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}
