package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/models"
)

// videoRepository is the SQL implementation of [VideoRepository] over the
// "videos" table. It runs unchanged on PostgreSQL and SQLite; only the
// placeholder format differs.
type videoRepository struct {
	*DB
	logger *logger.Logger
}

// NewVideoRepository constructs a [VideoRepository] backed by db.
func NewVideoRepository(db *DB, logger *logger.Logger) VideoRepository {
	logger.Debug().Msg("creating video repository")
	return &videoRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateVideo inserts a new row. A duplicate id yields [ErrVideoAlreadyExists].
func (r *videoRepository) CreateVideo(ctx context.Context, video models.Video) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertVideoQuery(r.builder(), video)
	if err != nil {
		log.Err(err).Str("func", "videoRepository.CreateVideo").Msg("failed to create query")
		return err
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, execErr := r.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "videoRepository.CreateVideo").Str("video_id", video.ID).Msg("failed to insert video")
		if r.isUniqueViolation(err) {
			return ErrVideoAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *videoRepository) GetVideo(ctx context.Context, id string) (models.Video, error) {
	query, args, err := buildGetVideoQuery(r.builder(), id)
	if err != nil {
		return models.Video{}, err
	}
	return r.queryOne(ctx, "videoRepository.GetVideo", query, args)
}

func (r *videoRepository) FindBySource(ctx context.Context, sourceType models.SourceType, key string) (models.Video, error) {
	query, args, err := buildFindBySourceQuery(r.builder(), sourceType, key)
	if err != nil {
		return models.Video{}, err
	}
	return r.queryOne(ctx, "videoRepository.FindBySource", query, args)
}

// ListVideos returns videos newest first, narrowed by filter.
func (r *videoRepository) ListVideos(ctx context.Context, filter models.ListFilter) ([]models.Video, error) {
	filter = filter.Normalize()

	query, args, err := buildListVideosQuery(r.builder(), filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "videoRepository.ListVideos").Msg("failed to create query")
		return nil, err
	}

	return r.queryMany(ctx, "videoRepository.ListVideos", query, args, int(filter.Limit))
}

// FindFileReferences returns the videos, other than excludeID, that still
// use one of paths (or a file inside one of them) or share externalID.
func (r *videoRepository) FindFileReferences(ctx context.Context, excludeID string, paths []string, externalID string) ([]models.Video, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	query, args, err := buildFindFileReferencesQuery(r.builder(), excludeID, paths, externalID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "videoRepository.FindFileReferences").Msg("failed to create query")
		return nil, err
	}

	return r.queryMany(ctx, "videoRepository.FindFileReferences", query, args, 0)
}

func (r *videoRepository) UpdateVideo(ctx context.Context, video models.Video) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateVideoQuery(r.builder(), video)
	if err != nil {
		log.Err(err).Str("func", "videoRepository.UpdateVideo").Msg("failed to create query")
		return err
	}

	return r.execAffectingOne(ctx, "videoRepository.UpdateVideo", video.ID, query, args)
}

func (r *videoRepository) DeleteVideo(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteVideoQuery(r.builder(), id)
	if err != nil {
		log.Err(err).Str("func", "videoRepository.DeleteVideo").Msg("failed to create query")
		return err
	}

	return r.execAffectingOne(ctx, "videoRepository.DeleteVideo", id, query, args)
}

// execAffectingOne runs a statement that must touch the row of id.
func (r *videoRepository) execAffectingOne(ctx context.Context, funcName, id, query string, args []any) error {
	log := logger.FromContext(ctx)

	var affected int64
	err := r.withRetry(ctx, func(ctx context.Context) error {
		result, execErr := r.DB.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = result.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", funcName).Str("video_id", id).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *videoRepository) queryOne(ctx context.Context, funcName, query string, args []any) (models.Video, error) {
	log := logger.FromContext(ctx)

	video, err := scanVideo(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Video{}, ErrVideoNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to scan video row")
		return models.Video{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return video, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVideo(s scanner) (models.Video, error) {
	var v models.Video
	err := s.Scan(
		&v.ID,
		&v.SourceType,
		&v.Source,
		&v.ExternalID,
		&v.FileName,
		&v.Path,
		&v.SubtitlePath,
		&v.FramesDir,
		&v.FrameCount,
		&v.FPS,
		&v.Status,
		&v.Error,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.WithSubtitle,
		&v.SubtitleSource,
		&v.DecodeFrames,
	)
	return v, err
}

func (r *videoRepository) queryMany(ctx context.Context, funcName, query string, args []any, sizeHint int) ([]models.Video, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	videos := make([]models.Video, 0, sizeHint)
	for rows.Next() {
		video, scanErr := scanVideo(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan video row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		videos = append(videos, video)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return videos, nil
}
