package video

import (
	"net/url"
	"strings"
)

var youTubeHosts = []string{"youtube.com", "youtu.be"}

// IsYouTubeURL reports whether raw points at YouTube. The host is compared
// lower-cased and without its port.
func IsYouTubeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Hostname())
	for _, suffix := range youTubeHosts {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// ExtractYouTubeID returns the video id of a watch, youtu.be, shorts, embed
// or live URL.
func ExtractYouTubeID(raw string) (string, error) {
	if !IsYouTubeURL(raw) {
		return "", ErrNotYouTubeURL
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrNoVideoID
	}

	if id := u.Query().Get("v"); id != "" {
		return id, nil
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if strings.HasSuffix(strings.ToLower(u.Hostname()), "youtu.be") {
		if segments[0] != "" {
			return segments[0], nil
		}
		return "", ErrNoVideoID
	}

	if len(segments) == 2 && segments[1] != "" {
		switch segments[0] {
		case "shorts", "embed", "live", "v":
			return segments[1], nil
		}
	}

	return "", ErrNoVideoID
}

func isRemoteSource(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
