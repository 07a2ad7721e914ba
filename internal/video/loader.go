package video

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/srt"
	"github.com/MKhiriev/deep-video-discovery/models"
)

// RawDirName is the folder of the video database holding stored videos.
const RawDirName = "raw"

// LoadResult describes a video placed into the video database.
type LoadResult struct {
	SourceType models.SourceType
	// ExternalID is the YouTube id. Empty for local sources.
	ExternalID string
	// VideoPath is the absolute path of the stored video.
	VideoPath string
	// SubtitlePath is the absolute path of the stored SRT file, if any.
	SubtitlePath string
}

// Loader puts videos from YouTube or the local filesystem into <db>/raw.
type Loader struct {
	runner      CommandRunner
	ytDlpPath   string
	cookiesFile string
	resolution  int
	rawDir      string
	logger      *logger.Logger
}

func NewLoader(runner CommandRunner, cfg config.Video, files config.Files, logger *logger.Logger) *Loader {
	return &Loader{
		runner:      runner,
		ytDlpPath:   cfg.YtDlpPath,
		cookiesFile: cfg.CookiesFile,
		resolution:  cfg.Resolution,
		rawDir:      filepath.Join(files.VideoDatabaseDir, RawDirName),
		logger:      logger,
	}
}

// LoadVideo stores source in the video database and returns where it went.
//
// An http(s) source must be a YouTube URL and is downloaded with yt-dlp.
// Anything else is treated as a local file and copied. With withSubtitle a
// YouTube video also gets its SRT subtitle (subtitleSource optionally names
// the language), while a local video requires subtitleSource to be an
// existing *.srt file.
func (l *Loader) LoadVideo(ctx context.Context, source string, withSubtitle bool, subtitleSource string) (LoadResult, error) {
	if err := os.MkdirAll(l.rawDir, 0o755); err != nil {
		return LoadResult{}, fmt.Errorf("error creating raw video dir: %w", err)
	}

	if isRemoteSource(source) {
		if !IsYouTubeURL(source) {
			return LoadResult{}, ErrNotYouTubeURL
		}
		return l.loadYouTube(ctx, source, withSubtitle, subtitleSource)
	}

	return l.loadLocal(source, withSubtitle, subtitleSource)
}

func (l *Loader) loadYouTube(ctx context.Context, source string, withSubtitle bool, subtitleLang string) (LoadResult, error) {
	log := l.logger.With().Str("func", "Loader.loadYouTube").Str("source", source).Logger()

	res := strconv.Itoa(l.resolution)
	args := []string{
		"--no-playlist",
		"--no-simulate",
		"-f", "bestvideo[height<=" + res + "][ext=mp4]/best[height<=" + res + "][ext=mp4]",
		"-o", filepath.Join(l.rawDir, outputTemplate),
		"--merge-output-format", "mp4",
		"--user-agent", userAgent,
		"--extractor-args", extractorArgs(loadPlayerClients),
		"--print", "after_move:%(id)s",
		"--print", "after_move:filepath",
	}
	args = withCookies(args, resolveCookiesFile(l.cookiesFile))
	if withSubtitle {
		args = append(args, "--write-subs", "--sub-format", "srt", "--force-overwrites")
		if subtitleLang != "" {
			args = append(args, "--sub-langs", subtitleLang)
		}
	}
	args = append(args, source)

	log.Info().Msg("downloading video")
	out, err := l.runner.Run(ctx, l.ytDlpPath, args...)
	if err != nil {
		log.Err(err).Msg("yt-dlp download failed")
		return LoadResult{}, fmt.Errorf("error downloading video: %w", err)
	}

	lines := nonEmptyLines(out)
	if len(lines) < 2 {
		log.Error().Str("output", string(out)).Msg("yt-dlp printed no id and path")
		return LoadResult{}, fmt.Errorf("%w: yt-dlp printed %d lines", ErrUnexpectedToolOutput, len(lines))
	}
	videoID, videoPath := lines[len(lines)-2], lines[len(lines)-1]

	absVideoPath, err := filepath.Abs(videoPath)
	if err != nil {
		return LoadResult{}, err
	}
	result := LoadResult{
		SourceType: models.SourceYouTube,
		ExternalID: videoID,
		VideoPath:  absVideoPath,
	}

	if withSubtitle {
		subtitle, found, err := findFirst(l.rawDir, videoID, ".srt")
		if err != nil {
			return LoadResult{}, fmt.Errorf("error looking up subtitle: %w", err)
		}
		if !found {
			log.Warn().Str("video_id", videoID).Msg("no SRT subtitle was downloaded")
			return result, nil
		}

		dst := strings.TrimSuffix(absVideoPath, filepath.Ext(absVideoPath)) + ".srt"
		if err = moveFile(subtitle, dst); err != nil {
			return LoadResult{}, fmt.Errorf("error moving subtitle: %w", err)
		}
		result.SubtitlePath = dst
	}

	log.Info().Str("path", result.VideoPath).Msg("video downloaded")
	return result, nil
}

func (l *Loader) loadLocal(source string, withSubtitle bool, subtitleSource string) (LoadResult, error) {
	log := l.logger.With().Str("func", "Loader.loadLocal").Str("source", source).Logger()

	info, err := os.Stat(source)
	if errors.Is(err, fs.ErrNotExist) {
		return LoadResult{}, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}
	if err != nil {
		return LoadResult{}, fmt.Errorf("error reading video source: %w", err)
	}
	if info.IsDir() {
		return LoadResult{}, fmt.Errorf("%w: %s", ErrSourceIsDirectory, source)
	}

	// reject a bad subtitle before anything is written
	if withSubtitle {
		if err = validateSubtitleSource(subtitleSource); err != nil {
			return LoadResult{}, err
		}
	}

	filename := filepath.Base(source)
	destination, err := filepath.Abs(filepath.Join(l.rawDir, filename))
	if err != nil {
		return LoadResult{}, err
	}
	if !samePath(source, destination) {
		if err = copyFile(source, destination); err != nil {
			log.Err(err).Msg("error copying video")
			return LoadResult{}, fmt.Errorf("error copying video: %w", err)
		}
	}

	result := LoadResult{SourceType: models.SourceLocal, VideoPath: destination}

	if withSubtitle {
		subtitleDestination := filepath.Join(filepath.Dir(destination), stem(filename)+".srt")
		if !samePath(subtitleSource, subtitleDestination) {
			if err = copyFile(subtitleSource, subtitleDestination); err != nil {
				log.Err(err).Msg("error copying subtitle")
				return LoadResult{}, fmt.Errorf("error copying subtitle: %w", err)
			}
		}
		result.SubtitlePath = subtitleDestination
	}

	log.Info().Str("path", destination).Msg("local video copied")
	return result, nil
}

func validateSubtitleSource(subtitleSource string) error {
	if subtitleSource == "" {
		return ErrSubtitleSourceRequired
	}
	if !strings.HasSuffix(strings.ToLower(subtitleSource), ".srt") {
		return fmt.Errorf("%w: %s", ErrUnsupportedSubtitleFormat, subtitleSource)
	}
	info, err := os.Stat(subtitleSource)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrSubtitleNotFound, subtitleSource)
	}
	if _, err = srt.ParseFile(subtitleSource); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSubtitle, err)
	}
	return nil
}
