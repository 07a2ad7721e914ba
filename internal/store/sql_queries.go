// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/deep-video-discovery/models"
)

const videosTable = "videos"

var videoColumns = []string{
	"id",
	"source_type",
	"source",
	"external_id",
	"file_name",
	"path",
	"subtitle_path",
	"frames_dir",
	"frame_count",
	"fps",
	"status",
	"error",
	"created_at",
	"updated_at",
	"with_subtitle",
	"subtitle_source",
	"decode_frames",
}

func buildInsertVideoQuery(b sq.StatementBuilderType, v models.Video) (string, []any, error) {
	query, args, err := b.Insert(videosTable).
		Columns(videoColumns...).
		Values(
			v.ID,
			v.SourceType,
			v.Source,
			v.ExternalID,
			v.FileName,
			v.Path,
			v.SubtitlePath,
			v.FramesDir,
			v.FrameCount,
			v.FPS,
			v.Status,
			v.Error,
			v.CreatedAt,
			v.UpdatedAt,
			v.WithSubtitle,
			v.SubtitleSource,
			v.DecodeFrames,
		).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildGetVideoQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	query, args, err := b.Select(videoColumns...).
		From(videosTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildListVideosQuery lists newest first. The filter is expected to be
// normalized.
func buildListVideosQuery(b sq.StatementBuilderType, filter models.ListFilter) (string, []any, error) {
	builder := b.Select(videoColumns...).
		From(videosTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset)

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdateVideoQuery(b sq.StatementBuilderType, v models.Video) (string, []any, error) {
	query, args, err := b.Update(videosTable).
		Set("external_id", v.ExternalID).
		Set("file_name", v.FileName).
		Set("path", v.Path).
		Set("subtitle_path", v.SubtitlePath).
		Set("frames_dir", v.FramesDir).
		Set("frame_count", v.FrameCount).
		Set("fps", v.FPS).
		Set("status", v.Status).
		Set("error", v.Error).
		Set("updated_at", v.UpdatedAt).
		Where(sq.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteVideoQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	query, args, err := b.Delete(videosTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildFindBySourceQuery matches YouTube videos by external id and local
// videos by source path.
func buildFindBySourceQuery(b sq.StatementBuilderType, sourceType models.SourceType, key string) (string, []any, error) {
	column := "source"
	if sourceType == models.SourceYouTube {
		column = "external_id"
	}

	query, args, err := b.Select(videoColumns...).
		From(videosTable).
		Where(sq.Eq{"source_type": sourceType, column: key}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildFindFileReferencesQuery selects videos other than excludeID whose
// files are one of paths or lie inside one of them, or that share
// externalID. LIKE treats '_' in a path as a wildcard, so the result may hold
// extra rows; callers compare the paths themselves.
func buildFindFileReferencesQuery(b sq.StatementBuilderType, excludeID string, paths []string, externalID string) (string, []any, error) {
	refs := sq.Or{
		sq.Eq{"path": paths},
		sq.Eq{"subtitle_path": paths},
		sq.Eq{"frames_dir": paths},
	}
	for _, p := range paths {
		prefix := strings.TrimRight(p, "/") + "/%"
		refs = append(refs,
			sq.Like{"path": prefix},
			sq.Like{"subtitle_path": prefix},
			sq.Like{"frames_dir": prefix},
		)
	}
	if externalID != "" {
		refs = append(refs, sq.Eq{"external_id": externalID})
	}

	query, args, err := b.Select(videoColumns...).
		From(videosTable).
		Where(sq.NotEq{"id": excludeID}).
		Where(refs).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
