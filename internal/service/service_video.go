// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/srt"
	"github.com/MKhiriev/deep-video-discovery/internal/store"
	"github.com/MKhiriev/deep-video-discovery/internal/video"
	"github.com/MKhiriev/deep-video-discovery/models"
)

const defaultSubtitleLanguage = "en"

// videoService keeps the video table in step with the work done by the
// ingestor. API calls only register intent and queue jobs; Process does the
// work inside a job worker.
type videoService struct {
	videoRepository store.VideoRepository
	ingestor        Ingestor
	queue           JobQueue
	ids             IDGenerator

	// targetFPS is recorded on every video as the rate frames are decoded at.
	targetFPS   float64
	databaseDir string

	// mu serializes read-modify-write updates of video rows so that jobs
	// running for the same video do not overwrite each other's fields.
	mu  sync.Mutex
	now func() time.Time

	logger *logger.Logger
}

func NewVideoService(
	videoRepository store.VideoRepository,
	ingestor Ingestor,
	queue JobQueue,
	ids IDGenerator,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) VideoService {
	databaseDir := cfg.Storage.Files.VideoDatabaseDir
	if abs, err := filepath.Abs(databaseDir); err == nil {
		databaseDir = abs
	}

	return &videoService{
		videoRepository: videoRepository,
		ingestor:        ingestor,
		queue:           queue,
		ids:             ids,
		targetFPS:       cfg.Video.FPS,
		databaseDir:     databaseDir,
		now:             func() time.Time { return time.Now().UTC() },
		logger:          logger,
	}
}

// Load registers req.Source and queues an ingest job for it. A source that
// is already in the database and has not failed is returned as is.
func (s *videoService) Load(ctx context.Context, req models.LoadRequest) (models.Video, bool, error) {
	log := logger.FromContext(ctx)

	now := s.now()
	v := models.Video{
		Source:         strings.TrimSpace(req.Source),
		FPS:            max(s.targetFPS, 0),
		Status:         models.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
		WithSubtitle:   req.WithSubtitle,
		SubtitleSource: strings.TrimSpace(req.SubtitleSource),
		DecodeFrames:   req.DecodeFrames,
	}

	key, err := classifySource(&v)
	if err != nil {
		log.Err(err).Str("func", "videoService.Load").Str("source", v.Source).Msg("unsupported video source")
		return models.Video{}, false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	existing, err := s.videoRepository.FindBySource(ctx, v.SourceType, key)
	switch {
	case err == nil && existing.Status != models.StatusFailed:
		log.Info().Str("video_id", existing.ID).Str("status", string(existing.Status)).Msg("video is already in the database")
		return existing, false, nil
	case err != nil && !errors.Is(err, store.ErrVideoNotFound):
		log.Err(err).Str("func", "videoService.Load").Msg("failed to look up existing video")
		return models.Video{}, false, fmt.Errorf("failed to look up existing video: %w", err)
	}

	v.ID = s.ids.Generate()
	if err = s.videoRepository.CreateVideo(ctx, v); err != nil {
		log.Err(err).Str("func", "videoService.Load").Msg("failed to save video")
		return models.Video{}, false, fmt.Errorf("failed to save video: %w", err)
	}

	if err = s.queue.Enqueue(ctx, models.Job{Kind: models.JobIngest, VideoID: v.ID}); err != nil {
		log.Err(err).Str("func", "videoService.Load").Str("video_id", v.ID).Msg("failed to queue ingest job")
		if delErr := s.videoRepository.DeleteVideo(context.WithoutCancel(ctx), v.ID); delErr != nil {
			log.Err(delErr).Str("video_id", v.ID).Msg("failed to remove video that could not be queued")
		}
		return models.Video{}, false, err
	}

	log.Info().Str("video_id", v.ID).Str("source_type", string(v.SourceType)).Msg("video queued for ingestion")
	return v, true, nil
}

// classifySource fills SourceType and ExternalID of v and returns the key the
// source is deduplicated by. Local paths are made absolute.
func classifySource(v *models.Video) (string, error) {
	if video.IsYouTubeURL(v.Source) {
		id, err := video.ExtractYouTubeID(v.Source)
		if err != nil {
			return "", err
		}
		v.SourceType = models.SourceYouTube
		v.ExternalID = id
		return id, nil
	}

	if strings.Contains(v.Source, "://") {
		return "", video.ErrNotYouTubeURL
	}

	abs, err := filepath.Abs(v.Source)
	if err != nil {
		return "", err
	}
	v.SourceType = models.SourceLocal
	v.Source = abs
	return abs, nil
}

func (s *videoService) Get(ctx context.Context, id string) (models.Video, error) {
	return s.videoRepository.GetVideo(ctx, id)
}

func (s *videoService) List(ctx context.Context, filter models.ListFilter) ([]models.Video, error) {
	return s.videoRepository.ListVideos(ctx, filter.Normalize())
}

// Delete removes the video row and every file the video owns inside the
// video database. Videos a worker is downloading or decoding cannot be
// deleted.
func (s *videoService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	v, err := s.videoRepository.GetVideo(ctx, id)
	if err == nil && (v.Status == models.StatusDownloading || v.Status == models.StatusDecoding) {
		err = ErrVideoBusy
	}
	if err == nil {
		err = s.videoRepository.DeleteVideo(ctx, id)
	}
	var paths []string
	if err == nil {
		paths = s.unsharedPaths(ctx, v)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	for _, path := range paths {
		if rmErr := os.RemoveAll(path); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", path).Msg("failed to remove video file")
		}
	}

	log.Info().Str("video_id", id).Msg("video deleted")
	return nil
}

// unsharedPaths narrows ownedPaths(v) to the paths no other video uses. A
// reloaded YouTube video keeps the raw file of the failed attempt, and local
// videos with the same file name share a directory. When the lookup fails
// nothing is removed.
func (s *videoService) unsharedPaths(ctx context.Context, v models.Video) []string {
	paths := s.ownedPaths(v)
	if len(paths) == 0 {
		return nil
	}

	others, err := s.videoRepository.FindFileReferences(ctx, v.ID, paths, v.ExternalID)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("video_id", v.ID).Msg("failed to check shared files, keeping them")
		return nil
	}

	var used []string
	for _, o := range others {
		used = append(used, o.Path, o.SubtitlePath, o.FramesDir)
		if o.ExternalID != "" {
			used = append(used, filepath.Join(s.databaseDir, o.ExternalID))
		}
	}

	return slices.DeleteFunc(paths, func(path string) bool {
		return slices.ContainsFunc(used, func(u string) bool { return overlaps(path, u) })
	})
}

// ownedPaths lists the files and directories of v that live inside the video
// database: the stored video, its subtitle and the <db>/<stem> directory.
func (s *videoService) ownedPaths(v models.Video) []string {
	candidates := []string{v.Path, v.SubtitlePath}
	if v.Path != "" {
		candidates = append(candidates, filepath.Dir(s.ingestor.FramesDir(v.Path)))
	}
	if v.ExternalID != "" {
		candidates = append(candidates, filepath.Join(s.databaseDir, v.ExternalID))
	}

	rawDir := filepath.Join(s.databaseDir, video.RawDirName)
	paths := make([]string, 0, len(candidates))
	for _, path := range candidates {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil || abs == rawDir || !s.insideDatabase(abs) {
			continue
		}
		if !slices.Contains(paths, abs) {
			paths = append(paths, abs)
		}
	}
	return paths
}

// overlaps reports whether a and b are the same path or one contains the
// other.
func overlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return within(a, b) || within(b, a)
}

// within reports whether path is dir or lies inside it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (s *videoService) insideDatabase(abs string) bool {
	rel, err := filepath.Rel(s.databaseDir, abs)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// DecodeFrames queues a decode job for a loaded video that is not in flight.
func (s *videoService) DecodeFrames(ctx context.Context, id string) (models.Video, error) {
	log := logger.FromContext(ctx)

	var previous models.Video
	v, err := s.update(ctx, id, func(v *models.Video) error {
		if v.Path == "" || v.Status.IsInFlight() {
			return ErrInvalidVideoState
		}
		previous = *v
		v.Status = models.StatusPending
		v.Error = ""
		return nil
	})
	if err != nil {
		return models.Video{}, err
	}

	if err = s.queue.Enqueue(ctx, models.Job{Kind: models.JobDecode, VideoID: id}); err != nil {
		log.Err(err).Str("func", "videoService.DecodeFrames").Str("video_id", id).Msg("failed to queue decode job")
		_, restoreErr := s.update(context.WithoutCancel(ctx), id, func(v *models.Video) error {
			v.Status = previous.Status
			v.Error = previous.Error
			return nil
		})
		if restoreErr != nil {
			log.Err(restoreErr).Str("video_id", id).Msg("failed to restore video status")
		}
		return models.Video{}, err
	}

	return v, nil
}

// FetchSubtitle queues a subtitle download. The video status is left alone.
func (s *videoService) FetchSubtitle(ctx context.Context, id string, req models.SubtitleRequest) (models.Video, error) {
	v, err := s.videoRepository.GetVideo(ctx, id)
	if err != nil {
		return models.Video{}, err
	}
	if v.SourceType != models.SourceYouTube {
		return models.Video{}, ErrNotYouTubeVideo
	}

	job := models.Job{Kind: models.JobSubtitle, VideoID: id, Subtitle: req}
	if err = s.queue.Enqueue(ctx, job); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "videoService.FetchSubtitle").Str("video_id", id).Msg("failed to queue subtitle job")
		return models.Video{}, err
	}

	return v, nil
}

func (s *videoService) Subtitles(ctx context.Context, id string) ([]models.Cue, error) {
	v, err := s.videoRepository.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.SubtitlePath == "" {
		return nil, ErrNoSubtitles
	}

	cues, err := srt.ParseFile(v.SubtitlePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSubtitles
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitles: %w", err)
	}
	return cues, nil
}

func (s *videoService) Frames(ctx context.Context, id string) ([]string, error) {
	v, err := s.videoRepository.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.FramesDir == "" {
		return nil, ErrNoFrames
	}

	frames, err := video.ListFrames(v.FramesDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoFrames
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list frames: %w", err)
	}
	return frames, nil
}

// FramePath resolves a frame file name to its path. Only names the decoder
// writes are accepted, so name can never leave the frames directory.
func (s *videoService) FramePath(ctx context.Context, id, name string) (string, error) {
	if !video.FrameNameRegexp.MatchString(name) {
		return "", ErrInvalidFrameName
	}

	v, err := s.videoRepository.GetVideo(ctx, id)
	if err != nil {
		return "", err
	}
	if v.FramesDir == "" {
		return "", ErrNoFrames
	}

	path := filepath.Join(v.FramesDir, name)
	if _, err = os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrFrameNotFound
		}
		return "", err
	}
	return path, nil
}

// Process runs job to completion. Failures are recorded on the video, except
// when ctx is cancelled: such videos stay in flight and are re-queued on the
// next start.
func (s *videoService) Process(ctx context.Context, job models.Job) error {
	v, err := s.videoRepository.GetVideo(ctx, job.VideoID)
	if errors.Is(err, store.ErrVideoNotFound) {
		logger.FromContext(ctx).Warn().Str("video_id", job.VideoID).Msg("video was deleted before its job ran")
		return nil
	}
	if err != nil {
		return err
	}

	switch job.Kind {
	case models.JobIngest:
		return s.ingest(ctx, v)
	case models.JobDecode:
		return s.decode(ctx, v)
	case models.JobSubtitle:
		return s.subtitle(ctx, v, job.Subtitle)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownJob, job.Kind)
	}
}

func (s *videoService) ingest(ctx context.Context, v models.Video) error {
	claimed, err := s.claim(ctx, v.ID, models.StatusDownloading, false)
	if err != nil || !claimed {
		return err
	}

	stage := func(ctx context.Context, status models.VideoStatus, result video.IngestResult) error {
		_, err := s.update(ctx, v.ID, func(v *models.Video) error {
			if status == models.StatusReady {
				applyLoad(v, result.Load)
			}
			v.Status = status
			return nil
		})
		return err
	}

	result, err := s.ingestor.Ingest(ctx, v.LoadRequest(), stage)
	if err != nil {
		return s.fail(ctx, v.ID, err)
	}
	if !result.Decoded {
		logger.FromContext(ctx).Info().Str("video_id", v.ID).Str("path", result.Load.VideoPath).Msg("video loaded")
		return nil
	}

	return s.finishDecode(ctx, v.ID, result.Frames)
}

func (s *videoService) decode(ctx context.Context, v models.Video) error {
	claimed, err := s.claim(ctx, v.ID, models.StatusDecoding, true)
	if errors.Is(err, errNoVideoFile) {
		return s.fail(ctx, v.ID, fmt.Errorf("%w: video has no file yet", ErrInvalidVideoState))
	}
	if err != nil || !claimed {
		return err
	}

	frames, err := s.ingestor.DecodeVideoToFrames(ctx, v.Path)
	if err != nil {
		return s.fail(ctx, v.ID, err)
	}

	return s.finishDecode(ctx, v.ID, frames)
}

func (s *videoService) finishDecode(ctx context.Context, id string, frames video.FrameResult) error {
	_, err := s.update(ctx, id, func(v *models.Video) error {
		v.FramesDir = frames.Dir
		v.FrameCount = frames.Count
		v.FPS = s.targetFPS
		if v.FPS <= 0 {
			v.FPS = frames.SourceFPS
		}
		v.Status = models.StatusDecoded
		v.Error = ""
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Str("video_id", id).Int("frames", frames.Count).Msg("video decoded")
	return nil
}

// subtitle downloads the subtitle without touching the status. A failure is
// recorded as the video error unless the video already failed.
func (s *videoService) subtitle(ctx context.Context, v models.Video, req models.SubtitleRequest) error {
	lang := req.Language
	if lang == "" {
		lang = defaultSubtitleLanguage
	}

	path, err := s.ingestor.FetchSubtitle(ctx, v.Source, v.ExternalID, lang)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		_, updateErr := s.update(ctx, v.ID, func(v *models.Video) error {
			if v.Status != models.StatusFailed {
				v.Error = fmt.Sprintf("subtitle download failed: %v", err)
			}
			return nil
		})
		if updateErr != nil {
			logger.FromContext(ctx).Err(updateErr).Str("video_id", v.ID).Msg("failed to record subtitle error")
		}
		return err
	}

	_, err = s.update(ctx, v.ID, func(v *models.Video) error {
		v.SubtitlePath = path
		if v.Status != models.StatusFailed {
			v.Error = ""
		}
		return nil
	})
	return err
}

// MarkFailed records reason on the video and moves it to failed.
func (s *videoService) MarkFailed(ctx context.Context, id string, reason error) error {
	_, err := s.update(ctx, id, func(v *models.Video) error {
		v.Status = models.StatusFailed
		v.Error = reason.Error()
		return nil
	})
	return err
}

// Unfinished returns a job for every video a previous run left in flight,
// oldest first. Videos that already have a file are re-decoded, all others
// are ingested again. Downloading and decoding videos are put back to
// pending so that their jobs can claim them. It must run before any job
// worker consumes the queue.
func (s *videoService) Unfinished(ctx context.Context) ([]models.Job, error) {
	var (
		jobs  []models.Job
		stale []string
	)

	for _, status := range []models.VideoStatus{models.StatusPending, models.StatusDownloading, models.StatusDecoding} {
		filter := models.ListFilter{Status: status, Limit: models.MaxListLimit}
		for {
			videos, err := s.videoRepository.ListVideos(ctx, filter)
			if err != nil {
				return nil, fmt.Errorf("failed to list %s videos: %w", status, err)
			}

			for _, v := range videos {
				kind := models.JobIngest
				if v.Path != "" {
					kind = models.JobDecode
				}
				jobs = append(jobs, models.Job{Kind: kind, VideoID: v.ID})
				if v.Status != models.StatusPending {
					stale = append(stale, v.ID)
				}
			}

			if uint64(len(videos)) < filter.Limit {
				break
			}
			filter.Offset += filter.Limit
		}
	}

	for _, id := range stale {
		if _, err := s.setStatus(ctx, id, models.StatusPending); err != nil {
			return nil, fmt.Errorf("failed to reset video %s: %w", id, err)
		}
	}

	slices.Reverse(jobs)
	return jobs, nil
}

func (s *videoService) fail(ctx context.Context, id string, cause error) error {
	log := logger.FromContext(ctx)

	if ctx.Err() != nil {
		log.Warn().Err(cause).Str("video_id", id).Msg("job interrupted, video stays queued for the next start")
		return cause
	}

	log.Err(cause).Str("video_id", id).Msg("job failed")
	if err := s.MarkFailed(ctx, id, cause); err != nil {
		log.Err(err).Str("video_id", id).Msg("failed to mark video as failed")
	}
	return cause
}

// claim moves a pending video to status. A job whose video is no longer
// pending was superseded by another job for the same video and is skipped;
// claim then reports false.
func (s *videoService) claim(ctx context.Context, id string, status models.VideoStatus, needsFile bool) (bool, error) {
	_, err := s.update(ctx, id, func(v *models.Video) error {
		if v.Status != models.StatusPending {
			return errNotPending
		}
		if needsFile && v.Path == "" {
			return errNoVideoFile
		}
		v.Status = status
		return nil
	})
	if errors.Is(err, errNotPending) {
		logger.FromContext(ctx).Info().Str("video_id", id).Msg("video is no longer pending, job skipped")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *videoService) setStatus(ctx context.Context, id string, status models.VideoStatus) (models.Video, error) {
	return s.update(ctx, id, func(v *models.Video) error {
		v.Status = status
		return nil
	})
}

// update re-reads the video, applies change and writes it back.
func (s *videoService) update(ctx context.Context, id string, change func(v *models.Video) error) (models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.videoRepository.GetVideo(ctx, id)
	if err != nil {
		return models.Video{}, err
	}
	if err = change(&v); err != nil {
		return models.Video{}, err
	}

	v.UpdatedAt = s.now()
	if err = s.videoRepository.UpdateVideo(ctx, v); err != nil {
		return models.Video{}, err
	}
	return v, nil
}

func applyLoad(v *models.Video, loaded video.LoadResult) {
	if loaded.ExternalID != "" {
		v.ExternalID = loaded.ExternalID
	}
	v.Path = loaded.VideoPath
	v.FileName = filepath.Base(loaded.VideoPath)
	if loaded.SubtitlePath != "" {
		v.SubtitlePath = loaded.SubtitlePath
	}
}
