package video

import "errors"

var (
	ErrNotYouTubeURL             = errors.New("provided URL is not a valid YouTube link")
	ErrNoVideoID                 = errors.New("could not extract video id")
	ErrSourceNotFound            = errors.New("video source not found")
	ErrSourceIsDirectory         = errors.New("video source is a directory, not a file")
	ErrSubtitleSourceRequired    = errors.New("subtitle source must be provided for local videos")
	ErrUnsupportedSubtitleFormat = errors.New("only SRT subtitle files are supported")
	ErrSubtitleNotFound          = errors.New("subtitle file not found")
	ErrInvalidSubtitle           = errors.New("subtitle file is not valid SRT")
	ErrBotDetected               = errors.New("youtube bot detection")
	ErrVideoNotFound             = errors.New("video file does not exist")
	ErrOpenVideo                 = errors.New("failed to open video file")
	ErrUnexpectedToolOutput      = errors.New("unexpected tool output")
)

// botDetectionGuidance is appended to ErrBotDetected once every attempt is
// exhausted.
const botDetectionGuidance = `This is a known issue with YouTube's anti-bot measures.

Immediate solutions:
1. Wait 5-10 minutes and try again (YouTube rate limiting)
2. Try a different video URL
3. The video may have restricted access

Advanced solution (recommended for production):
Use YouTube cookies to authenticate:
1. Export cookies from your browser (see: https://github.com/yt-dlp/yt-dlp/wiki/FAQ#how-do-i-pass-cookies-to-yt-dlp)
2. Upload the cookies file to the server
3. Set environment variable: YOUTUBE_COOKIES=/path/to/cookies.txt

Note: YouTube frequently updates its bot detection. This may require periodic updates to yt-dlp or using cookies.`
