package video

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
)

// SubtitleDownloader fetches SRT subtitles of YouTube videos with yt-dlp,
// retrying through several player clients to get past bot detection.
type SubtitleDownloader struct {
	runner      CommandRunner
	ytDlpPath   string
	cookiesFile string
	maxRetries  int
	baseDelay   time.Duration
	logger      *logger.Logger

	// schedule wraps the retry backoff; tests use it to record the waits.
	schedule func(retry.Backoff) retry.Backoff
}

func NewSubtitleDownloader(runner CommandRunner, cfg config.Video, logger *logger.Logger) *SubtitleDownloader {
	maxRetries := cfg.SubtitleMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &SubtitleDownloader{
		runner:      runner,
		ytDlpPath:   cfg.YtDlpPath,
		cookiesFile: cfg.CookiesFile,
		maxRetries:  maxRetries,
		baseDelay:   cfg.RetryBaseDelay,
		logger:      logger,
		schedule:    func(b retry.Backoff) retry.Backoff { return b },
	}
}

// DownloadSRTSubtitle downloads the subtitle of videoURL to outputPath.
func (d *SubtitleDownloader) DownloadSRTSubtitle(ctx context.Context, videoURL, outputPath string) error {
	return d.DownloadSRTSubtitleLang(ctx, videoURL, outputPath, "")
}

// DownloadSRTSubtitleLang is DownloadSRTSubtitle restricted to one subtitle
// language. An empty lang leaves the choice to yt-dlp.
//
// Download errors are classified from yt-dlp's stderr. Unavailable formats
// get one more try with a looser format. Bot detection gets one more try
// without format constraints and then waits (attempt+1) × base delay before
// the next attempt, or fails with [ErrBotDetected] on the last one. Any
// other yt-dlp failure is returned at once. Failures outside yt-dlp, like a
// missing subtitle file, wait the base delay and retry.
func (d *SubtitleDownloader) DownloadSRTSubtitleLang(ctx context.Context, videoURL, outputPath, lang string) error {
	log := d.logger.With().Str("func", "SubtitleDownloader.DownloadSRTSubtitle").Str("url", videoURL).Logger()

	if !IsYouTubeURL(videoURL) {
		return ErrNotYouTubeURL
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("error creating subtitle dir: %w", err)
	}

	cookiesFile := resolveCookiesFile(d.cookiesFile)

	attempt := 0
	var delay time.Duration
	backoff := d.schedule(retry.WithMaxRetries(uint64(d.maxRetries-1), retry.BackoffFunc(func() (time.Duration, bool) {
		return delay, false
	})))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		current := attempt
		attempt++
		last := current == d.maxRetries-1

		req := subtitleRequest{
			url:         videoURL,
			outputDir:   outputDir,
			outputPath:  outputPath,
			lang:        lang,
			clients:     subtitlePlayerClients[current%len(subtitlePlayerClients)],
			cookiesFile: cookiesFile,
		}

		err := d.attempt(ctx, req, subtitleFormat)
		if err == nil {
			log.Info().Int("attempt", current+1).Str("path", outputPath).Msg("subtitle downloaded")
			return nil
		}

		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			log.Warn().Err(err).Int("attempt", current+1).Msg("subtitle attempt failed")
			delay = d.baseDelay
			return retry.RetryableError(err)
		}

		msg := strings.ToLower(cmdErr.Stderr)
		if isFormatError(msg) && !last {
			log.Warn().Int("attempt", current+1).Msg("format unavailable, retrying with a looser format")
			if d.attempt(ctx, req, subtitleFlexFormat) == nil {
				return nil
			}
		}

		if !isBotError(msg) {
			log.Err(err).Int("attempt", current+1).Msg("yt-dlp failed")
			return err
		}

		if last {
			log.Error().Int("attempts", d.maxRetries).Msg("bot detection on every attempt")
			return fmt.Errorf("%w after %d attempts.\n\n%s", ErrBotDetected, d.maxRetries, botDetectionGuidance)
		}

		if d.attempt(ctx, req, subtitleNoBotFormat) == nil {
			return nil
		}

		delay = time.Duration(current+1) * d.baseDelay
		log.Warn().Int("attempt", current+1).Dur("wait", delay).Msg("bot detection, backing off")
		return retry.RetryableError(err)
	})
}

type subtitleRequest struct {
	url         string
	outputDir   string
	outputPath  string
	lang        string
	clients     []string
	cookiesFile string
}

// attempt runs one id lookup plus subtitle download with the given format
// and moves the result to req.outputPath.
func (d *SubtitleDownloader) attempt(ctx context.Context, req subtitleRequest, format string) error {
	args := []string{
		"--no-playlist",
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-format", "srt",
		"-f", format,
		"-o", filepath.Join(req.outputDir, outputTemplate),
		"--user-agent", userAgent,
		"--referer", referer,
		"--extractor-args", extractorArgs(req.clients),
	}
	args = withCookies(args, req.cookiesFile)
	if req.lang != "" && req.lang != "en" {
		args = append(args, "--sub-langs", req.lang)
	}

	videoID, err := d.videoID(ctx, req)
	if err != nil {
		return err
	}

	if _, err = d.runner.Run(ctx, d.ytDlpPath, append(args, req.url)...); err != nil {
		return err
	}

	subtitle, found, err := findFirst(req.outputDir, videoID, ".srt")
	if err != nil {
		return fmt.Errorf("error looking up subtitle: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: could not find SRT subtitle for %s", ErrSubtitleNotFound, req.url)
	}

	return moveFile(subtitle, req.outputPath)
}

// videoID asks yt-dlp for the id and falls back to parsing the URL.
func (d *SubtitleDownloader) videoID(ctx context.Context, req subtitleRequest) (string, error) {
	args := withCookies([]string{
		"--no-playlist",
		"--skip-download",
		"--print", "id",
		"--user-agent", userAgent,
		"--extractor-args", extractorArgs(req.clients),
	}, req.cookiesFile)

	out, err := d.runner.Run(ctx, d.ytDlpPath, append(args, req.url)...)
	if err == nil {
		if id := lastLine(out); id != "" {
			return id, nil
		}
	}

	id, parseErr := ExtractYouTubeID(req.url)
	if parseErr != nil {
		return "", fmt.Errorf("%w from %s", ErrNoVideoID, req.url)
	}
	return id, nil
}

func isFormatError(msg string) bool {
	return strings.Contains(msg, "format is not available") || strings.Contains(msg, "requested format")
}

func isBotError(msg string) bool {
	return strings.Contains(msg, "bot") || strings.Contains(msg, "sign in") || strings.Contains(msg, "confirm")
}
