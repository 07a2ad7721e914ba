package store

import "github.com/MKhiriev/deep-video-discovery/internal/logger"

type Storages struct {
	VideoRepository VideoRepository
}

func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		VideoRepository: NewVideoRepository(db, logger),
	}
}
