// Package srt reads and writes SubRip (.srt) subtitle files.
package srt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/asticode/go-astisub"

	"github.com/MKhiriev/deep-video-discovery/models"
)

const (
	timingSeparator = "-->"
	maxLineSize     = 1 << 20
	bom             = "\ufeff"
)

var (
	ErrInvalidTimestamp = errors.New("invalid srt timestamp")
	ErrMissingTiming    = errors.New("srt cue has no timing line")
	ErrEmptySubtitles   = errors.New("srt file has no cues")
	ErrInvalidSubtitles = errors.New("invalid srt file")
)

// Parse reads cues from r. A UTF-8 BOM, CRLF line endings, "." millisecond
// separators, missing index lines and position hints after the end timestamp
// are accepted.
func Parse(r io.Reader) ([]models.Cue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading srt: %w", err)
	}

	canonical, count, err := normalize(data)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	subs, err := astisub.ReadFromSRT(canonical)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSubtitles, err)
	}
	if len(subs.Items) != count {
		return nil, fmt.Errorf("%w: %d cues decoded from %d timing lines", ErrInvalidSubtitles, len(subs.Items), count)
	}

	cues := make([]models.Cue, 0, len(subs.Items))
	for i, item := range subs.Items {
		lines := make([]string, 0, len(item.Lines))
		for _, line := range item.Lines {
			lines = append(lines, line.String())
		}
		index := item.Index
		if index <= 0 {
			index = i + 1
		}
		cues = append(cues, models.Cue{
			Index: index,
			Start: item.StartAt,
			End:   item.EndAt,
			Text:  strings.Join(lines, "\n"),
		})
	}

	return cues, nil
}

// normalize validates the timing of every block and rewrites it in the
// canonical "HH:MM:SS,mmm --> HH:MM:SS,mmm" form, numbering blocks without an
// index line. It returns the rewritten file and its number of cues.
func normalize(data []byte) (*bytes.Buffer, int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		out     bytes.Buffer
		count   int
		lineNo  int
		index   string
		inBlock bool
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, bom)
		}

		switch {
		case strings.TrimSpace(line) == "":
			if inBlock {
				out.WriteString("\n")
			}
			index, inBlock = "", false
		case inBlock:
			out.WriteString(line + "\n")
		case strings.Contains(line, timingSeparator):
			start, end, err := parseTiming(line)
			if err != nil {
				return nil, 0, fmt.Errorf("%w: line %d: %q", err, lineNo, line)
			}
			count++
			if index == "" {
				index = strconv.Itoa(count)
			}
			fmt.Fprintf(&out, "%s\n%s %s %s\n", index, FormatTimestamp(start), timingSeparator, FormatTimestamp(end))
			inBlock = true
		case index != "":
			return nil, 0, fmt.Errorf("%w: line %d", ErrMissingTiming, lineNo)
		default:
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err != nil {
				return nil, 0, fmt.Errorf("%w: line %d: %q", ErrMissingTiming, lineNo, line)
			}
			index = strings.TrimSpace(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("error reading srt: %w", err)
	}

	return &out, count, nil
}

// ParseFile parses the SRT file at path. A file without cues is rejected
// with [ErrEmptySubtitles].
func ParseFile(path string) ([]models.Cue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cues, err := Parse(f)
	if err != nil {
		return nil, err
	}
	if len(cues) == 0 {
		return nil, ErrEmptySubtitles
	}

	return cues, nil
}

// Format writes cues as canonical SRT with "," millisecond separators. Cues
// are numbered by position.
func Format(w io.Writer, cues []models.Cue) error {
	if len(cues) == 0 {
		return nil
	}

	subs := astisub.NewSubtitles()
	for _, cue := range cues {
		item := &astisub.Item{StartAt: max(cue.Start, 0), EndAt: max(cue.End, 0)}
		for _, line := range strings.Split(cue.Text, "\n") {
			item.Lines = append(item.Lines, astisub.Line{Items: []astisub.LineItem{{Text: line}}})
		}
		subs.Items = append(subs.Items, item)
	}

	if err := subs.WriteToSRT(w); err != nil {
		return fmt.Errorf("error writing srt: %w", err)
	}
	return nil
}

// ParseTimestamp parses "HH:MM:SS,mmm". "." is accepted instead of ","
// and the hour part may be omitted.
func ParseTimestamp(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	s = strings.Replace(s, ".", ",", 1)

	clock, millis, ok := strings.Cut(s, ",")
	if !ok {
		millis = "0"
	}

	parts := strings.Split(clock, ":")
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	}
	if len(parts) != 3 || len(millis) == 0 || len(millis) > 3 {
		return 0, ErrInvalidTimestamp
	}

	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	sec, errS := strconv.Atoi(parts[2])
	ms, errMs := strconv.Atoi(millis + strings.Repeat("0", 3-len(millis)))
	if err := errors.Join(errH, errM, errS, errMs); err != nil {
		return 0, ErrInvalidTimestamp
	}
	if h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 || ms < 0 {
		return 0, ErrInvalidTimestamp
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// FormatTimestamp renders d as "HH:MM:SS,mmm".
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond

	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func parseTiming(line string) (time.Duration, time.Duration, error) {
	left, right, _ := strings.Cut(line, timingSeparator)

	// position hints may follow the end timestamp
	fields := strings.Fields(right)
	if len(fields) == 0 {
		return 0, 0, ErrInvalidTimestamp
	}

	start, err := ParseTimestamp(left)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(fields[0])
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, ErrInvalidTimestamp
	}

	return start, end, nil
}
