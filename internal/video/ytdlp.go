package video

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	referer   = "https://www.youtube.com/"

	playerSkip = "webpage,configs"

	subtitleFormat      = "bestaudio/best/worst"
	subtitleFlexFormat  = "best[height<=480]/best/worst"
	subtitleNoBotFormat = "bestaudio/best"

	outputTemplate = "%(id)s.%(ext)s"
)

// subtitlePlayerClients rotate per subtitle download attempt.
var subtitlePlayerClients = [][]string{
	{"android"},
	{"ios"},
	{"web"},
	{"android", "web"},
	{"ios", "android", "web"},
}

var loadPlayerClients = []string{"android", "web"}

func extractorArgs(clients []string) string {
	return "youtube:player_client=" + strings.Join(clients, ",") + ";player_skip=" + playerSkip
}

// resolveCookiesFile returns the absolute path of the cookies file, or ""
// when it is not configured or does not exist.
func resolveCookiesFile(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	return abs
}

func withCookies(args []string, cookiesFile string) []string {
	if cookiesFile == "" {
		return args
	}
	return append(args, "--cookies", cookiesFile)
}

// lastLine returns the last non-empty line of tool output.
func lastLine(out []byte) string {
	lines := nonEmptyLines(out)
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

func nonEmptyLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
