package video

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
)

const (
	framesDirName = "frames"
	framePattern  = "frame_n%06d.jpg"
)

// FrameNameRegexp matches file names written by the frame decoder.
var FrameNameRegexp = regexp.MustCompile(`^frame_n\d{6}\.jpg$`)

// FrameResult describes a decoded video.
type FrameResult struct {
	// Dir is the absolute frames directory.
	Dir string
	// Count is the number of frames written.
	Count int
	// SourceFPS is the probed frame rate of the video.
	SourceFPS float64
	// Interval keeps every Interval-th source frame.
	Interval int
}

// FrameDecoder decodes videos into JPEG frames at a target rate with
// ffprobe and ffmpeg.
type FrameDecoder struct {
	runner      CommandRunner
	ffmpegPath  string
	ffprobePath string
	targetFPS   float64
	databaseDir string
	logger      *logger.Logger
}

func NewFrameDecoder(runner CommandRunner, cfg config.Video, files config.Files, logger *logger.Logger) *FrameDecoder {
	return &FrameDecoder{
		runner:      runner,
		ffmpegPath:  cfg.FFmpegPath,
		ffprobePath: cfg.FFprobePath,
		targetFPS:   cfg.FPS,
		databaseDir: files.VideoDatabaseDir,
		logger:      logger,
	}
}

// FramesDir returns <db>/<video stem>/frames.
func (f *FrameDecoder) FramesDir(videoPath string) string {
	return filepath.Join(f.databaseDir, stem(videoPath), framesDirName)
}

// DecodeVideoToFrames writes frames of videoPath as frame_n000000.jpg,
// frame_n000001.jpg, ... keeping one source frame out of every
// round(sourceFPS/targetFPS). Frames from a previous run are replaced.
func (f *FrameDecoder) DecodeVideoToFrames(ctx context.Context, videoPath string) (FrameResult, error) {
	log := f.logger.With().Str("func", "FrameDecoder.DecodeVideoToFrames").Str("video", videoPath).Logger()

	info, err := os.Stat(videoPath)
	if err != nil || !info.Mode().IsRegular() {
		return FrameResult{}, fmt.Errorf("%w: %s", ErrVideoNotFound, videoPath)
	}

	framesDir, err := filepath.Abs(f.FramesDir(videoPath))
	if err != nil {
		return FrameResult{}, err
	}
	if err = os.MkdirAll(framesDir, 0o755); err != nil {
		return FrameResult{}, fmt.Errorf("error creating frames dir: %w", err)
	}

	sourceFPS, err := f.probeFPS(ctx, videoPath)
	if err != nil {
		log.Err(err).Msg("error probing video")
		return FrameResult{}, err
	}
	interval := FrameInterval(sourceFPS, f.targetFPS)

	if err = removeFrames(framesDir); err != nil {
		return FrameResult{}, fmt.Errorf("error removing old frames: %w", err)
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-y",
		"-i", videoPath,
		"-vf", fmt.Sprintf(`select=not(mod(n\,%d))`, interval),
		"-vsync", "vfr",
		"-q:v", "2",
		"-start_number", "0",
		filepath.Join(framesDir, framePattern),
	}
	if _, err = f.runner.Run(ctx, f.ffmpegPath, args...); err != nil {
		log.Err(err).Msg("ffmpeg failed")
		return FrameResult{}, fmt.Errorf("error extracting frames: %w", err)
	}

	frames, err := ListFrames(framesDir)
	if err != nil {
		return FrameResult{}, err
	}

	log.Info().
		Float64("source_fps", sourceFPS).
		Int("interval", interval).
		Int("frames", len(frames)).
		Msg("video decoded")

	return FrameResult{
		Dir:       framesDir,
		Count:     len(frames),
		SourceFPS: sourceFPS,
		Interval:  interval,
	}, nil
}

// FrameInterval returns round(sourceFPS/targetFPS) when the target is below
// the source rate, 1 otherwise. A target <= 0 keeps the source rate.
func FrameInterval(sourceFPS, targetFPS float64) int {
	if targetFPS <= 0 || targetFPS >= sourceFPS {
		return 1
	}
	interval := int(math.Round(sourceFPS / targetFPS))
	if interval < 1 {
		return 1
	}
	return interval
}

// ListFrames returns the frame file names in dir, sorted.
func ListFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	frames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() && FrameNameRegexp.MatchString(entry.Name()) {
			frames = append(frames, entry.Name())
		}
	}
	return frames, nil
}

func (f *FrameDecoder) probeFPS(ctx context.Context, videoPath string) (float64, error) {
	out, err := f.runner.Run(ctx, f.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=avg_frame_rate,r_frame_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w '%s': %w", ErrOpenVideo, videoPath, err)
	}

	// avg_frame_rate is printed first; r_frame_rate covers "0/0"
	for _, line := range nonEmptyLines(out) {
		if fps, ok := parseRational(line); ok {
			return fps, nil
		}
	}
	return 0, fmt.Errorf("%w '%s': no video stream frame rate", ErrOpenVideo, videoPath)
}

// parseRational parses "30000/1001" or "25".
func parseRational(s string) (float64, bool) {
	num, den, found := strings.Cut(strings.TrimSpace(s), "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d := 1.0
	if found {
		if d, err = strconv.ParseFloat(den, 64); err != nil || d == 0 {
			return 0, false
		}
	}
	fps := n / d
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0, false
	}
	return fps, true
}

func removeFrames(dir string) error {
	frames, err := ListFrames(dir)
	if err != nil {
		return err
	}
	for _, name := range frames {
		if err = os.Remove(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}
