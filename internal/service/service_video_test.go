package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/mock"
	"github.com/MKhiriev/deep-video-discovery/internal/service"
	"github.com/MKhiriev/deep-video-discovery/internal/store"
	"github.com/MKhiriev/deep-video-discovery/internal/video"
	"github.com/MKhiriev/deep-video-discovery/models"
)

const (
	testVideoID = "0195f1b2-0000-7000-8000-000000000001"
	testURL     = "https://www.youtube.com/watch?v=PQFQ-3d2J-8"
	testSRT     = "1\n00:00:01,000 --> 00:00:02,500\nhello\n"
)

type videoServiceMocks struct {
	repo     *mock.MockVideoRepository
	ingestor *mock.MockIngestor
	queue    *mock.MockJobQueue
	ids      *mock.MockIDGenerator
	dbDir    string
}

func newTestVideoService(t *testing.T) (service.VideoService, videoServiceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := videoServiceMocks{
		repo:     mock.NewMockVideoRepository(ctrl),
		ingestor: mock.NewMockIngestor(ctrl),
		queue:    mock.NewMockJobQueue(ctrl),
		ids:      mock.NewMockIDGenerator(ctrl),
		dbDir:    t.TempDir(),
	}

	cfg := config.StructuredConfig{
		Storage: config.Storage{Files: config.Files{VideoDatabaseDir: m.dbDir}},
		Video:   config.Video{FPS: 2},
	}
	svc := service.NewVideoService(m.repo, m.ingestor, m.queue, m.ids, cfg, logger.Nop())
	return svc, m
}

func youtubeVideo(status models.VideoStatus) models.Video {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.Video{
		ID:         testVideoID,
		SourceType: models.SourceYouTube,
		Source:     testURL,
		ExternalID: "PQFQ-3d2J-8",
		FPS:        2,
		Status:     status,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

// videoTable backs GetVideo and UpdateVideo with a single in-memory row and
// records every status written.
type videoTable struct {
	mu       sync.Mutex
	video    models.Video
	statuses []models.VideoStatus
}

func (tbl *videoTable) current() models.Video {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	return tbl.video
}

func (tbl *videoTable) history() []models.VideoStatus {
	tbl.mu.Lock()
	defer tbl.mu.Unlock()
	return append([]models.VideoStatus(nil), tbl.statuses...)
}

func backByTable(repo *mock.MockVideoRepository, v models.Video) *videoTable {
	tbl := &videoTable{video: v}

	repo.EXPECT().GetVideo(gomock.Any(), v.ID).DoAndReturn(
		func(_ context.Context, _ string) (models.Video, error) {
			return tbl.current(), nil
		},
	).AnyTimes()
	repo.EXPECT().UpdateVideo(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, updated models.Video) error {
			tbl.mu.Lock()
			defer tbl.mu.Unlock()
			tbl.video = updated
			tbl.statuses = append(tbl.statuses, updated.Status)
			return nil
		},
	).AnyTimes()

	return tbl
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestVideoService_Load_YouTube(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	gomock.InOrder(
		m.repo.EXPECT().FindBySource(ctx, models.SourceYouTube, "PQFQ-3d2J-8").Return(models.Video{}, store.ErrVideoNotFound),
		m.ids.EXPECT().Generate().Return(testVideoID),
		m.repo.EXPECT().CreateVideo(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, v models.Video) error {
				assert.Equal(t, testVideoID, v.ID)
				assert.Equal(t, models.SourceYouTube, v.SourceType)
				assert.Equal(t, testURL, v.Source)
				assert.Equal(t, "PQFQ-3d2J-8", v.ExternalID)
				assert.Equal(t, models.StatusPending, v.Status)
				assert.Equal(t, 2.0, v.FPS)
				assert.True(t, v.WithSubtitle)
				assert.Equal(t, "de", v.SubtitleSource)
				assert.False(t, v.CreatedAt.IsZero())
				return nil
			},
		),
		m.queue.EXPECT().Enqueue(ctx, models.Job{Kind: models.JobIngest, VideoID: testVideoID}).Return(nil),
	)

	v, created, err := svc.Load(ctx, models.LoadRequest{Source: "  " + testURL + " ", WithSubtitle: true, SubtitleSource: "de"})

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, testVideoID, v.ID)
	assert.Equal(t, models.StatusPending, v.Status)
}

func TestVideoService_Load_Deduplicated(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()
	existing := youtubeVideo(models.StatusReady)

	m.repo.EXPECT().FindBySource(ctx, models.SourceYouTube, "PQFQ-3d2J-8").Return(existing, nil)

	v, created, err := svc.Load(ctx, models.LoadRequest{Source: "https://youtu.be/PQFQ-3d2J-8"})

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, v)
}

func TestVideoService_Load_FailedVideoIsLoadedAgain(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	m.repo.EXPECT().FindBySource(ctx, models.SourceYouTube, "PQFQ-3d2J-8").Return(youtubeVideo(models.StatusFailed), nil)
	m.ids.EXPECT().Generate().Return("0195f1b2-0000-7000-8000-000000000002")
	m.repo.EXPECT().CreateVideo(ctx, gomock.Any()).Return(nil)
	m.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(nil)

	v, created, err := svc.Load(ctx, models.LoadRequest{Source: testURL})

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "0195f1b2-0000-7000-8000-000000000002", v.ID)
}

func TestVideoService_Load_LocalPathIsAbsolute(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()
	abs, err := filepath.Abs("clip.mp4")
	require.NoError(t, err)

	m.repo.EXPECT().FindBySource(ctx, models.SourceLocal, abs).Return(models.Video{}, store.ErrVideoNotFound)
	m.ids.EXPECT().Generate().Return(testVideoID)
	m.repo.EXPECT().CreateVideo(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, v models.Video) error {
			assert.Equal(t, models.SourceLocal, v.SourceType)
			assert.Equal(t, abs, v.Source)
			assert.Empty(t, v.ExternalID)
			return nil
		},
	)
	m.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(nil)

	_, created, err := svc.Load(ctx, models.LoadRequest{Source: "clip.mp4", DecodeFrames: true})

	require.NoError(t, err)
	assert.True(t, created)
}

func TestVideoService_Load_UnsupportedSource(t *testing.T) {
	svc, _ := newTestVideoService(t)

	_, _, err := svc.Load(context.Background(), models.LoadRequest{Source: "https://vimeo.com/123"})

	assert.ErrorIs(t, err, service.ErrInvalidDataProvided)
	assert.ErrorIs(t, err, video.ErrNotYouTubeURL)
}

func TestVideoService_Load_LookupError(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	m.repo.EXPECT().FindBySource(ctx, gomock.Any(), gomock.Any()).Return(models.Video{}, dbErr)

	_, _, err := svc.Load(ctx, models.LoadRequest{Source: testURL})

	assert.ErrorIs(t, err, dbErr)
}

func TestVideoService_Load_QueueFullRemovesVideo(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	gomock.InOrder(
		m.repo.EXPECT().FindBySource(ctx, gomock.Any(), gomock.Any()).Return(models.Video{}, store.ErrVideoNotFound),
		m.ids.EXPECT().Generate().Return(testVideoID),
		m.repo.EXPECT().CreateVideo(ctx, gomock.Any()).Return(nil),
		m.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(service.ErrQueueFull),
		m.repo.EXPECT().DeleteVideo(gomock.Any(), testVideoID).Return(nil),
	)

	_, created, err := svc.Load(ctx, models.LoadRequest{Source: testURL})

	assert.ErrorIs(t, err, service.ErrQueueFull)
	assert.False(t, created)
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestVideoService_List_NormalizesFilter(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	m.repo.EXPECT().
		ListVideos(ctx, models.ListFilter{Status: models.StatusReady, Limit: models.DefaultListLimit}).
		Return([]models.Video{youtubeVideo(models.StatusReady)}, nil)

	videos, err := svc.List(ctx, models.ListFilter{Status: models.StatusReady})

	require.NoError(t, err)
	assert.Len(t, videos, 1)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestVideoService_Delete_RemovesOwnedFiles(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	raw := filepath.Join(m.dbDir, "raw")
	videoPath := filepath.Join(raw, "PQFQ-3d2J-8.mp4")
	subtitlePath := filepath.Join(m.dbDir, "PQFQ-3d2J-8", "subtitles.srt")
	framesDir := filepath.Join(m.dbDir, "PQFQ-3d2J-8", "frames")
	neighbour := filepath.Join(raw, "other.mp4")
	outside := filepath.Join(t.TempDir(), "keep.srt")

	require.NoError(t, os.MkdirAll(framesDir, 0o755))
	require.NoError(t, os.MkdirAll(raw, 0o755))
	for _, path := range []string{videoPath, subtitlePath, neighbour, outside, filepath.Join(framesDir, "frame_n000000.jpg")} {
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	v := youtubeVideo(models.StatusDecoded)
	v.Path = videoPath
	v.SubtitlePath = subtitlePath
	v.FramesDir = framesDir

	m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(v, nil)
	m.repo.EXPECT().DeleteVideo(ctx, testVideoID).Return(nil)
	m.ingestor.EXPECT().FramesDir(videoPath).Return(framesDir)
	m.repo.EXPECT().FindFileReferences(ctx, testVideoID, gomock.Len(3), "PQFQ-3d2J-8").Return(nil, nil)

	require.NoError(t, svc.Delete(ctx, testVideoID))

	assert.NoFileExists(t, videoPath)
	assert.NoDirExists(t, filepath.Join(m.dbDir, "PQFQ-3d2J-8"))
	assert.FileExists(t, neighbour)
	assert.DirExists(t, raw)
	assert.FileExists(t, outside)
}

func TestVideoService_Delete_KeepsFilesOutsideDatabase(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	outside := filepath.Join(t.TempDir(), "keep.srt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	v := youtubeVideo(models.StatusFailed)
	v.SubtitlePath = outside

	m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(v, nil)
	m.repo.EXPECT().DeleteVideo(ctx, testVideoID).Return(nil)
	m.repo.EXPECT().FindFileReferences(ctx, testVideoID, []string{filepath.Join(m.dbDir, "PQFQ-3d2J-8")}, "PQFQ-3d2J-8").Return(nil, nil)

	require.NoError(t, svc.Delete(ctx, testVideoID))
	assert.FileExists(t, outside)
}

func TestVideoService_Delete_KeepsFilesOfReloadedVideo(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	raw := filepath.Join(m.dbDir, "raw")
	videoPath := filepath.Join(raw, "PQFQ-3d2J-8.mp4")
	framesDir := filepath.Join(m.dbDir, "PQFQ-3d2J-8", "frames")
	require.NoError(t, os.MkdirAll(raw, 0o755))
	require.NoError(t, os.MkdirAll(framesDir, 0o755))
	require.NoError(t, os.WriteFile(videoPath, []byte("x"), 0o644))

	failed := youtubeVideo(models.StatusFailed)
	failed.Path = videoPath
	failed.Error = "ffmpeg: exit status 1"

	reloaded := youtubeVideo(models.StatusDecoded)
	reloaded.ID = "0195f1b2-0000-7000-8000-000000000002"
	reloaded.Path = videoPath
	reloaded.FramesDir = framesDir

	m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(failed, nil)
	m.repo.EXPECT().DeleteVideo(ctx, testVideoID).Return(nil)
	m.ingestor.EXPECT().FramesDir(videoPath).Return(framesDir)
	m.repo.EXPECT().FindFileReferences(ctx, testVideoID, gomock.Any(), "PQFQ-3d2J-8").Return([]models.Video{reloaded}, nil)

	require.NoError(t, svc.Delete(ctx, testVideoID))

	assert.FileExists(t, videoPath)
	assert.DirExists(t, framesDir)
}

func TestVideoService_Delete_KeepsDirectoryOfSameNamedLocalVideo(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	stemDir := filepath.Join(m.dbDir, "talk")
	first := filepath.Join(m.dbDir, "raw", "talk.mp4")
	second := filepath.Join(stemDir, "frames", "frame_n000000.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(first), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(second), 0o755))
	require.NoError(t, os.WriteFile(first, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("x"), 0o644))

	v := models.Video{
		ID:         testVideoID,
		SourceType: models.SourceLocal,
		Source:     "/videos/a/talk.mp4",
		FileName:   "talk.mp4",
		Path:       first,
		Status:     models.StatusReady,
	}
	other := models.Video{
		ID:         "0195f1b2-0000-7000-8000-000000000002",
		SourceType: models.SourceLocal,
		Source:     "/videos/b/talk.mp4",
		FileName:   "talk.mp4",
		FramesDir:  filepath.Join(stemDir, "frames"),
		Status:     models.StatusDecoded,
	}

	m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(v, nil)
	m.repo.EXPECT().DeleteVideo(ctx, testVideoID).Return(nil)
	m.ingestor.EXPECT().FramesDir(first).Return(filepath.Join(stemDir, "frames"))
	m.repo.EXPECT().FindFileReferences(ctx, testVideoID, []string{first, stemDir}, "").Return([]models.Video{other}, nil)

	require.NoError(t, svc.Delete(ctx, testVideoID))

	assert.NoFileExists(t, first)
	assert.FileExists(t, second)
}

func TestVideoService_Delete_KeepsFilesWhenReferenceLookupFails(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	videoPath := filepath.Join(m.dbDir, "raw", "PQFQ-3d2J-8.mp4")
	require.NoError(t, os.MkdirAll(filepath.Dir(videoPath), 0o755))
	require.NoError(t, os.WriteFile(videoPath, []byte("x"), 0o644))

	v := youtubeVideo(models.StatusReady)
	v.Path = videoPath

	m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(v, nil)
	m.repo.EXPECT().DeleteVideo(ctx, testVideoID).Return(nil)
	m.ingestor.EXPECT().FramesDir(videoPath).Return(filepath.Join(m.dbDir, "PQFQ-3d2J-8", "frames"))
	m.repo.EXPECT().FindFileReferences(ctx, testVideoID, gomock.Any(), "PQFQ-3d2J-8").Return(nil, store.ErrExecutingQuery)

	require.NoError(t, svc.Delete(ctx, testVideoID))
	assert.FileExists(t, videoPath)
}

func TestVideoService_Delete_InFlightVideo(t *testing.T) {
	for _, status := range []models.VideoStatus{models.StatusDownloading, models.StatusDecoding} {
		t.Run(string(status), func(t *testing.T) {
			svc, m := newTestVideoService(t)
			ctx := context.Background()

			m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(youtubeVideo(status), nil)

			assert.ErrorIs(t, svc.Delete(ctx, testVideoID), service.ErrVideoBusy)
		})
	}
}

func TestVideoService_Delete_NotFound(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(models.Video{}, store.ErrVideoNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, testVideoID), store.ErrVideoNotFound)
}

// ── DecodeFrames ─────────────────────────────────────────────────────────────

func TestVideoService_DecodeFrames_Queued(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	v := youtubeVideo(models.StatusFailed)
	v.Path = "/db/raw/PQFQ-3d2J-8.mp4"
	v.Error = "ffmpeg: exit status 1"
	tbl := backByTable(m.repo, v)
	m.queue.EXPECT().Enqueue(ctx, models.Job{Kind: models.JobDecode, VideoID: testVideoID}).Return(nil)

	got, err := svc.DecodeFrames(ctx, testVideoID)

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Empty(t, got.Error)
	assert.Equal(t, []models.VideoStatus{models.StatusPending}, tbl.history())
}

func TestVideoService_DecodeFrames_InvalidState(t *testing.T) {
	tests := []struct {
		name   string
		status models.VideoStatus
		path   string
	}{
		{name: "not loaded yet", status: models.StatusPending},
		{name: "downloading", status: models.StatusDownloading},
		{name: "already decoding", status: models.StatusDecoding, path: "/db/raw/a.mp4"},
		{name: "failed before download", status: models.StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestVideoService(t)
			v := youtubeVideo(tt.status)
			v.Path = tt.path
			tbl := backByTable(m.repo, v)

			_, err := svc.DecodeFrames(context.Background(), testVideoID)

			assert.ErrorIs(t, err, service.ErrInvalidVideoState)
			assert.Empty(t, tbl.history())
		})
	}
}

func TestVideoService_DecodeFrames_QueueFullRestoresStatus(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	v := youtubeVideo(models.StatusReady)
	v.Path = "/db/raw/PQFQ-3d2J-8.mp4"
	tbl := backByTable(m.repo, v)
	m.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(service.ErrQueueFull)

	_, err := svc.DecodeFrames(ctx, testVideoID)

	assert.ErrorIs(t, err, service.ErrQueueFull)
	assert.Equal(t, []models.VideoStatus{models.StatusPending, models.StatusReady}, tbl.history())
	assert.Equal(t, models.StatusReady, tbl.current().Status)
}

// ── FetchSubtitle ────────────────────────────────────────────────────────────

func TestVideoService_FetchSubtitle(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()
	req := models.SubtitleRequest{Language: "fr"}

	m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(youtubeVideo(models.StatusReady), nil)
	m.queue.EXPECT().Enqueue(ctx, models.Job{Kind: models.JobSubtitle, VideoID: testVideoID, Subtitle: req}).Return(nil)

	v, err := svc.FetchSubtitle(ctx, testVideoID, req)

	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, v.Status)
}

func TestVideoService_FetchSubtitle_LocalVideo(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	v := youtubeVideo(models.StatusReady)
	v.SourceType = models.SourceLocal
	m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(v, nil)

	_, err := svc.FetchSubtitle(ctx, testVideoID, models.SubtitleRequest{})

	assert.ErrorIs(t, err, service.ErrNotYouTubeVideo)
}

// ── Subtitles, Frames, FramePath ─────────────────────────────────────────────

func TestVideoService_Subtitles(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	path := filepath.Join(m.dbDir, "subtitles.srt")
	require.NoError(t, os.WriteFile(path, []byte(testSRT), 0o644))
	v := youtubeVideo(models.StatusReady)
	v.SubtitlePath = path
	m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(v, nil)

	cues, err := svc.Subtitles(ctx, testVideoID)

	require.NoError(t, err)
	require.Len(t, cues, 1)
	assert.Equal(t, "hello", cues[0].Text)
	assert.Equal(t, time.Second, cues[0].Start)
}

func TestVideoService_Subtitles_Missing(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "never fetched"},
		{name: "file removed", path: "/nonexistent/subtitles.srt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestVideoService(t)
			v := youtubeVideo(models.StatusReady)
			v.SubtitlePath = tt.path
			m.repo.EXPECT().GetVideo(gomock.Any(), testVideoID).Return(v, nil)

			_, err := svc.Subtitles(context.Background(), testVideoID)

			assert.ErrorIs(t, err, service.ErrNoSubtitles)
		})
	}
}

func TestVideoService_Frames(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	framesDir := filepath.Join(m.dbDir, "PQFQ-3d2J-8", "frames")
	require.NoError(t, os.MkdirAll(framesDir, 0o755))
	for _, name := range []string{"frame_n000001.jpg", "frame_n000000.jpg", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(framesDir, name), []byte("x"), 0o644))
	}
	v := youtubeVideo(models.StatusDecoded)
	v.FramesDir = framesDir
	m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(v, nil).Times(3)

	frames, err := svc.Frames(ctx, testVideoID)
	require.NoError(t, err)
	assert.Equal(t, []string{"frame_n000000.jpg", "frame_n000001.jpg"}, frames)

	path, err := svc.FramePath(ctx, testVideoID, "frame_n000001.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(framesDir, "frame_n000001.jpg"), path)

	_, err = svc.FramePath(ctx, testVideoID, "frame_n000002.jpg")
	assert.ErrorIs(t, err, service.ErrFrameNotFound)
}

func TestVideoService_Frames_NotDecoded(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()
	m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(youtubeVideo(models.StatusReady), nil).Times(2)

	_, err := svc.Frames(ctx, testVideoID)
	assert.ErrorIs(t, err, service.ErrNoFrames)

	_, err = svc.FramePath(ctx, testVideoID, "frame_n000000.jpg")
	assert.ErrorIs(t, err, service.ErrNoFrames)
}

func TestVideoService_FramePath_RejectsTraversal(t *testing.T) {
	svc, _ := newTestVideoService(t)

	for _, name := range []string{"../raw/a.mp4", "frame_n000000.jpg/..", "frame_n1.jpg", ""} {
		_, err := svc.FramePath(context.Background(), testVideoID, name)
		assert.ErrorIs(t, err, service.ErrInvalidFrameName, name)
	}
}

// ── Process ──────────────────────────────────────────────────────────────────

func TestVideoService_Process_IngestAndDecode(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	v := youtubeVideo(models.StatusPending)
	v.DecodeFrames = true
	tbl := backByTable(m.repo, v)

	loaded := video.LoadResult{
		SourceType: models.SourceYouTube,
		ExternalID: "PQFQ-3d2J-8",
		VideoPath:  "/db/raw/PQFQ-3d2J-8.mp4",
	}
	frames := video.FrameResult{Dir: "/db/PQFQ-3d2J-8/frames", Count: 42, SourceFPS: 30, Interval: 15}

	m.ingestor.EXPECT().Ingest(gomock.Any(), v.LoadRequest(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ models.LoadRequest, stage video.Stage) (video.IngestResult, error) {
			result := video.IngestResult{Load: loaded}
			require.NoError(t, stage(ctx, models.StatusReady, result))
			assert.Equal(t, loaded.VideoPath, tbl.current().Path)
			require.NoError(t, stage(ctx, models.StatusDecoding, result))

			result.Frames = frames
			result.Decoded = true
			return result, nil
		},
	)

	require.NoError(t, svc.Process(ctx, models.Job{Kind: models.JobIngest, VideoID: testVideoID}))

	assert.Equal(t, []models.VideoStatus{
		models.StatusDownloading,
		models.StatusReady,
		models.StatusDecoding,
		models.StatusDecoded,
	}, tbl.history())

	got := tbl.current()
	assert.Equal(t, "PQFQ-3d2J-8.mp4", got.FileName)
	assert.Equal(t, frames.Dir, got.FramesDir)
	assert.Equal(t, 42, got.FrameCount)
	assert.Empty(t, got.Error)
}

func TestVideoService_Process_IngestFailure(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()
	tbl := backByTable(m.repo, youtubeVideo(models.StatusPending))

	m.ingestor.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(video.IngestResult{}, video.ErrBotDetected)

	err := svc.Process(ctx, models.Job{Kind: models.JobIngest, VideoID: testVideoID})

	assert.ErrorIs(t, err, video.ErrBotDetected)
	assert.Equal(t, []models.VideoStatus{models.StatusDownloading, models.StatusFailed}, tbl.history())
	assert.Equal(t, video.ErrBotDetected.Error(), tbl.current().Error)
}

func TestVideoService_Process_InterruptedJobStaysInFlight(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tbl := backByTable(m.repo, youtubeVideo(models.StatusPending))

	m.ingestor.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.LoadRequest, video.Stage) (video.IngestResult, error) {
			cancel()
			return video.IngestResult{}, context.Canceled
		},
	)

	err := svc.Process(ctx, models.Job{Kind: models.JobIngest, VideoID: testVideoID})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, models.StatusDownloading, tbl.current().Status)
}

func TestVideoService_Process_DuplicateIngestJobIsSkipped(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()
	tbl := backByTable(m.repo, youtubeVideo(models.StatusPending))
	job := models.Job{Kind: models.JobIngest, VideoID: testVideoID}

	m.ingestor.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ models.LoadRequest, stage video.Stage) (video.IngestResult, error) {
			result := video.IngestResult{Load: video.LoadResult{
				SourceType: models.SourceYouTube,
				ExternalID: "PQFQ-3d2J-8",
				VideoPath:  "/db/raw/PQFQ-3d2J-8.mp4",
			}}
			require.NoError(t, stage(ctx, models.StatusReady, result))
			return result, nil
		},
	).Times(1)

	require.NoError(t, svc.Process(ctx, job))
	require.NoError(t, svc.Process(ctx, job))

	assert.Equal(t, []models.VideoStatus{models.StatusDownloading, models.StatusReady}, tbl.history())
	assert.Equal(t, models.StatusReady, tbl.current().Status)
}

func TestVideoService_Process_ConcurrentDuplicateJobsIngestOnce(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()
	tbl := backByTable(m.repo, youtubeVideo(models.StatusPending))
	job := models.Job{Kind: models.JobIngest, VideoID: testVideoID}

	m.ingestor.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(video.IngestResult{Load: video.LoadResult{VideoPath: "/db/raw/PQFQ-3d2J-8.mp4"}}, nil).
		Times(1)

	var wg sync.WaitGroup
	for range 2 {
		wg.Go(func() {
			assert.NoError(t, svc.Process(ctx, job))
		})
	}
	wg.Wait()

	assert.Equal(t, []models.VideoStatus{models.StatusDownloading}, tbl.history())
}

func TestVideoService_Process_DecodeJobOfBusyVideoIsSkipped(t *testing.T) {
	for _, status := range []models.VideoStatus{models.StatusDecoding, models.StatusDecoded, models.StatusReady} {
		t.Run(string(status), func(t *testing.T) {
			svc, m := newTestVideoService(t)
			v := youtubeVideo(status)
			v.Path = "/db/raw/PQFQ-3d2J-8.mp4"
			tbl := backByTable(m.repo, v)

			err := svc.Process(context.Background(), models.Job{Kind: models.JobDecode, VideoID: testVideoID})

			require.NoError(t, err)
			assert.Empty(t, tbl.history())
			assert.Equal(t, status, tbl.current().Status)
		})
	}
}

func TestVideoService_Process_DeletedVideo(t *testing.T) {
	svc, m := newTestVideoService(t)
	m.repo.EXPECT().GetVideo(gomock.Any(), testVideoID).Return(models.Video{}, store.ErrVideoNotFound)

	err := svc.Process(context.Background(), models.Job{Kind: models.JobIngest, VideoID: testVideoID})

	assert.NoError(t, err)
}

func TestVideoService_Process_Decode(t *testing.T) {
	svc, m := newTestVideoService(t)
	v := youtubeVideo(models.StatusPending)
	v.Path = "/db/raw/PQFQ-3d2J-8.mp4"
	tbl := backByTable(m.repo, v)

	m.ingestor.EXPECT().DecodeVideoToFrames(gomock.Any(), v.Path).
		Return(video.FrameResult{Dir: "/db/PQFQ-3d2J-8/frames", Count: 7}, nil)

	require.NoError(t, svc.Process(context.Background(), models.Job{Kind: models.JobDecode, VideoID: testVideoID}))

	assert.Equal(t, []models.VideoStatus{models.StatusDecoding, models.StatusDecoded}, tbl.history())
	assert.Equal(t, 7, tbl.current().FrameCount)
}

func TestVideoService_Process_DecodeAtSourceRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockVideoRepository(ctrl)
	ingestor := mock.NewMockIngestor(ctrl)
	cfg := config.StructuredConfig{
		Storage: config.Storage{Files: config.Files{VideoDatabaseDir: t.TempDir()}},
		Video:   config.Video{FPS: config.SourceFPS},
	}
	svc := service.NewVideoService(repo, ingestor, mock.NewMockJobQueue(ctrl), mock.NewMockIDGenerator(ctrl), cfg, logger.Nop())

	v := youtubeVideo(models.StatusPending)
	v.Path = "/db/raw/PQFQ-3d2J-8.mp4"
	tbl := backByTable(repo, v)
	ingestor.EXPECT().DecodeVideoToFrames(gomock.Any(), v.Path).
		Return(video.FrameResult{Dir: "/db/PQFQ-3d2J-8/frames", Count: 90, SourceFPS: 29.97, Interval: 1}, nil)

	require.NoError(t, svc.Process(context.Background(), models.Job{Kind: models.JobDecode, VideoID: testVideoID}))

	assert.Equal(t, models.StatusDecoded, tbl.current().Status)
	assert.Equal(t, 29.97, tbl.current().FPS)
}

func TestVideoService_Process_DecodeFailure(t *testing.T) {
	svc, m := newTestVideoService(t)
	v := youtubeVideo(models.StatusPending)
	v.Path = "/db/raw/PQFQ-3d2J-8.mp4"
	tbl := backByTable(m.repo, v)

	m.ingestor.EXPECT().DecodeVideoToFrames(gomock.Any(), v.Path).Return(video.FrameResult{}, video.ErrOpenVideo)

	err := svc.Process(context.Background(), models.Job{Kind: models.JobDecode, VideoID: testVideoID})

	assert.ErrorIs(t, err, video.ErrOpenVideo)
	assert.Equal(t, models.StatusFailed, tbl.current().Status)
}

func TestVideoService_Process_DecodeWithoutFile(t *testing.T) {
	svc, m := newTestVideoService(t)
	tbl := backByTable(m.repo, youtubeVideo(models.StatusPending))

	err := svc.Process(context.Background(), models.Job{Kind: models.JobDecode, VideoID: testVideoID})

	assert.ErrorIs(t, err, service.ErrInvalidVideoState)
	assert.Equal(t, models.StatusFailed, tbl.current().Status)
}

func TestVideoService_Process_Subtitle(t *testing.T) {
	svc, m := newTestVideoService(t)
	v := youtubeVideo(models.StatusDecoded)
	tbl := backByTable(m.repo, v)

	m.ingestor.EXPECT().FetchSubtitle(gomock.Any(), testURL, "PQFQ-3d2J-8", "en").
		Return("/db/PQFQ-3d2J-8/subtitles.srt", nil)

	require.NoError(t, svc.Process(context.Background(), models.Job{Kind: models.JobSubtitle, VideoID: testVideoID}))

	got := tbl.current()
	assert.Equal(t, "/db/PQFQ-3d2J-8/subtitles.srt", got.SubtitlePath)
	assert.Equal(t, models.StatusDecoded, got.Status)
}

func TestVideoService_Process_SubtitleFailureKeepsStatus(t *testing.T) {
	svc, m := newTestVideoService(t)
	tbl := backByTable(m.repo, youtubeVideo(models.StatusReady))

	m.ingestor.EXPECT().FetchSubtitle(gomock.Any(), testURL, "PQFQ-3d2J-8", "ja").
		Return("", video.ErrInvalidSubtitle)

	err := svc.Process(context.Background(), models.Job{
		Kind:     models.JobSubtitle,
		VideoID:  testVideoID,
		Subtitle: models.SubtitleRequest{Language: "ja"},
	})

	assert.ErrorIs(t, err, video.ErrInvalidSubtitle)
	got := tbl.current()
	assert.Equal(t, models.StatusReady, got.Status)
	assert.Contains(t, got.Error, "subtitle download failed")
}

func TestVideoService_Process_UnknownJob(t *testing.T) {
	svc, m := newTestVideoService(t)
	backByTable(m.repo, youtubeVideo(models.StatusReady))

	err := svc.Process(context.Background(), models.Job{Kind: "transcode", VideoID: testVideoID})

	assert.ErrorIs(t, err, service.ErrUnknownJob)
}

// ── MarkFailed, Unfinished ───────────────────────────────────────────────────

func TestVideoService_MarkFailed(t *testing.T) {
	svc, m := newTestVideoService(t)
	tbl := backByTable(m.repo, youtubeVideo(models.StatusDecoding))

	require.NoError(t, svc.MarkFailed(context.Background(), testVideoID, errors.New("panic: boom")))

	assert.Equal(t, models.StatusFailed, tbl.current().Status)
	assert.Equal(t, "panic: boom", tbl.current().Error)
}

func TestVideoService_Unfinished(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	queued := youtubeVideo(models.StatusPending)
	queued.ID = "a"
	redecode := youtubeVideo(models.StatusPending)
	redecode.ID = "b"
	redecode.Path = "/db/raw/b.mp4"
	decoding := youtubeVideo(models.StatusDecoding)
	decoding.ID = "c"
	decoding.Path = "/db/raw/c.mp4"

	filter := func(status models.VideoStatus) models.ListFilter {
		return models.ListFilter{Status: status, Limit: models.MaxListLimit}
	}
	m.repo.EXPECT().ListVideos(ctx, filter(models.StatusPending)).Return([]models.Video{redecode, queued}, nil)
	m.repo.EXPECT().ListVideos(ctx, filter(models.StatusDownloading)).Return(nil, nil)
	m.repo.EXPECT().ListVideos(ctx, filter(models.StatusDecoding)).Return([]models.Video{decoding}, nil)
	tbl := backByTable(m.repo, decoding)

	jobs, err := svc.Unfinished(ctx)

	require.NoError(t, err)
	assert.Equal(t, []models.Job{
		{Kind: models.JobDecode, VideoID: "c"},
		{Kind: models.JobIngest, VideoID: "a"},
		{Kind: models.JobDecode, VideoID: "b"},
	}, jobs)
	assert.Equal(t, []models.VideoStatus{models.StatusPending}, tbl.history())
}

func TestVideoService_Unfinished_ResetError(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()
	dbErr := errors.New("db down")

	downloading := youtubeVideo(models.StatusDownloading)
	m.repo.EXPECT().ListVideos(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, filter models.ListFilter) ([]models.Video, error) {
			if filter.Status == models.StatusDownloading {
				return []models.Video{downloading}, nil
			}
			return nil, nil
		},
	).Times(3)
	m.repo.EXPECT().GetVideo(ctx, testVideoID).Return(downloading, nil)
	m.repo.EXPECT().UpdateVideo(ctx, gomock.Any()).Return(dbErr)

	_, err := svc.Unfinished(ctx)

	assert.ErrorIs(t, err, dbErr)
}

func TestVideoService_Process_RecoveredJobClaimsResetVideo(t *testing.T) {
	svc, m := newTestVideoService(t)
	ctx := context.Background()

	v := youtubeVideo(models.StatusDecoding)
	v.Path = "/db/raw/PQFQ-3d2J-8.mp4"
	m.repo.EXPECT().ListVideos(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, filter models.ListFilter) ([]models.Video, error) {
			if filter.Status == models.StatusDecoding {
				return []models.Video{v}, nil
			}
			return nil, nil
		},
	).Times(3)
	tbl := backByTable(m.repo, v)
	m.ingestor.EXPECT().DecodeVideoToFrames(gomock.Any(), v.Path).
		Return(video.FrameResult{Dir: "/db/PQFQ-3d2J-8/frames", Count: 3}, nil)

	jobs, err := svc.Unfinished(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.NoError(t, svc.Process(ctx, jobs[0]))

	assert.Equal(t, []models.VideoStatus{
		models.StatusPending,
		models.StatusDecoding,
		models.StatusDecoded,
	}, tbl.history())
}

func TestVideoService_Unfinished_ListError(t *testing.T) {
	svc, m := newTestVideoService(t)
	dbErr := errors.New("db down")
	m.repo.EXPECT().ListVideos(gomock.Any(), gomock.Any()).Return(nil, dbErr)

	_, err := svc.Unfinished(context.Background())

	assert.ErrorIs(t, err, dbErr)
}
