package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
)

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		name   string
		source float64
		target float64
		want   int
	}{
		{name: "ntsc to 2 fps", source: 30000.0 / 1001.0, target: 2, want: 15},
		{name: "25 to 1", source: 25, target: 1, want: 25},
		{name: "rounds half up", source: 25, target: 2, want: 13},
		{name: "target equals source", source: 24, target: 24, want: 1},
		{name: "target above source", source: 24, target: 60, want: 1},
		{name: "zero target", source: 30, target: 0, want: 1},
		{name: "source rate", source: 30, target: config.SourceFPS, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FrameInterval(tt.source, tt.target))
		})
	}
}

func TestParseRational(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"30000/1001", 30000.0 / 1001.0, true},
		{"25/1", 25, true},
		{"25", 25, true},
		{" 24/1 ", 24, true},
		{"0/0", 0, false},
		{"0/1", 0, false},
		{"N/A", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseRational(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func newTestDecoder(t *testing.T, runner CommandRunner) (*FrameDecoder, string) {
	t.Helper()
	db := t.TempDir()
	return NewFrameDecoder(runner, testVideoConfig(), config.Files{VideoDatabaseDir: db}, logger.Nop()), db
}

// ffmpegWriting answers ffprobe with probe and makes ffmpeg write n frames.
func ffmpegWriting(t *testing.T, probe string, n int) func(c call) ([]byte, error) {
	return func(c call) ([]byte, error) {
		switch c.name {
		case "ffprobe":
			return []byte(probe), nil
		case "ffmpeg":
			dir := filepath.Dir(c.args[len(c.args)-1])
			for i := range n {
				writeFile(t, filepath.Join(dir, fmt.Sprintf("frame_n%06d.jpg", i)), "jpeg")
			}
			return nil, nil
		}
		return nil, fmt.Errorf("unexpected command %s", c.name)
	}
}

func TestDecodeVideoToFrames(t *testing.T) {
	runner := &fakeRunner{}
	decoder, db := newTestDecoder(t, runner)
	videoPath := writeFile(t, filepath.Join(db, "raw", "clip.mp4"), "video")
	framesDir := filepath.Join(db, "clip", "frames")

	stale := writeFile(t, filepath.Join(framesDir, "frame_n000042.jpg"), "old")
	other := writeFile(t, filepath.Join(framesDir, "notes.txt"), "keep me")

	write := ffmpegWriting(t, "30000/1001\n30000/1001\n", 3)
	runner.handle = func(c call) ([]byte, error) {
		if c.name == "ffmpeg" {
			assert.NoFileExists(t, stale)
		}
		return write(c)
	}

	res, err := decoder.DecodeVideoToFrames(context.Background(), videoPath)

	require.NoError(t, err)
	assert.Equal(t, framesDir, res.Dir)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 15, res.Interval)
	assert.InDelta(t, 29.97, res.SourceFPS, 0.01)
	assert.FileExists(t, other)

	frames, err := ListFrames(framesDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"frame_n000000.jpg", "frame_n000001.jpg", "frame_n000002.jpg"}, frames)

	require.Len(t, runner.calls, 2)
	probe, ffmpeg := runner.calls[0], runner.calls[1]
	assert.Equal(t, "ffprobe", probe.name)
	assert.Equal(t, "v:0", probe.after("-select_streams"))
	assert.Equal(t, videoPath, probe.args[len(probe.args)-1])

	assert.Equal(t, "ffmpeg", ffmpeg.name)
	assert.Equal(t, videoPath, ffmpeg.after("-i"))
	assert.Equal(t, `select=not(mod(n\,15))`, ffmpeg.after("-vf"))
	assert.Equal(t, "vfr", ffmpeg.after("-vsync"))
	assert.Equal(t, "0", ffmpeg.after("-start_number"))
	assert.Equal(t, filepath.Join(framesDir, "frame_n%06d.jpg"), ffmpeg.args[len(ffmpeg.args)-1])
}

func TestDecodeVideoToFrames_FallsBackToRealFrameRate(t *testing.T) {
	runner := &fakeRunner{}
	decoder, db := newTestDecoder(t, runner)
	videoPath := writeFile(t, filepath.Join(db, "raw", "clip.mp4"), "video")
	runner.handle = ffmpegWriting(t, "0/0\n25/1\n", 1)

	res, err := decoder.DecodeVideoToFrames(context.Background(), videoPath)

	require.NoError(t, err)
	assert.Equal(t, 25.0, res.SourceFPS)
	assert.Equal(t, 13, res.Interval)
}

func TestDecodeVideoToFrames_Errors(t *testing.T) {
	t.Run("missing video", func(t *testing.T) {
		runner := &fakeRunner{}
		decoder, db := newTestDecoder(t, runner)

		_, err := decoder.DecodeVideoToFrames(context.Background(), filepath.Join(db, "raw", "nope.mp4"))

		assert.ErrorIs(t, err, ErrVideoNotFound)
		assert.Empty(t, runner.calls)
	})

	t.Run("directory instead of video", func(t *testing.T) {
		decoder, db := newTestDecoder(t, &fakeRunner{})

		_, err := decoder.DecodeVideoToFrames(context.Background(), db)

		assert.ErrorIs(t, err, ErrVideoNotFound)
	})

	t.Run("ffprobe fails", func(t *testing.T) {
		runner := &fakeRunner{handle: func(c call) ([]byte, error) {
			return nil, &CommandError{Name: c.name, Stderr: "moov atom not found", Err: os.ErrInvalid}
		}}
		decoder, db := newTestDecoder(t, runner)
		videoPath := writeFile(t, filepath.Join(db, "raw", "broken.mp4"), "garbage")

		_, err := decoder.DecodeVideoToFrames(context.Background(), videoPath)

		assert.ErrorIs(t, err, ErrOpenVideo)
		assert.Len(t, runner.calls, 1)
	})

	t.Run("no frame rate", func(t *testing.T) {
		runner := &fakeRunner{handle: func(c call) ([]byte, error) {
			return []byte("0/0\n"), nil
		}}
		decoder, db := newTestDecoder(t, runner)
		videoPath := writeFile(t, filepath.Join(db, "raw", "audio.mp4"), "audio")

		_, err := decoder.DecodeVideoToFrames(context.Background(), videoPath)

		assert.ErrorIs(t, err, ErrOpenVideo)
	})

	t.Run("ffmpeg fails", func(t *testing.T) {
		runner := &fakeRunner{handle: func(c call) ([]byte, error) {
			if c.name == "ffprobe" {
				return []byte("25/1\n"), nil
			}
			return nil, &CommandError{Name: c.name, Err: os.ErrInvalid}
		}}
		decoder, db := newTestDecoder(t, runner)
		videoPath := writeFile(t, filepath.Join(db, "raw", "clip.mp4"), "video")

		_, err := decoder.DecodeVideoToFrames(context.Background(), videoPath)

		var cmdErr *CommandError
		assert.ErrorAs(t, err, &cmdErr)
	})
}

func TestListFrames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"frame_n000001.jpg", "frame_n000000.jpg", "frame_1.jpg", "frame_n000002.png"} {
		writeFile(t, filepath.Join(dir, name), "x")
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "frame_n000003.jpg"), 0o755))

	frames, err := ListFrames(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"frame_n000000.jpg", "frame_n000001.jpg"}, frames)

	_, err = ListFrames(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
