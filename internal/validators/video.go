package validators

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/MKhiriev/deep-video-discovery/internal/utils"
	"github.com/MKhiriev/deep-video-discovery/internal/video"
	"github.com/MKhiriev/deep-video-discovery/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldSource targets LoadRequest.Source.
	FieldSource = "source"

	// FieldSubtitleSource targets LoadRequest.SubtitleSource: an .srt path
	// for local sources, a language for YouTube.
	FieldSubtitleSource = "subtitle_source"

	// FieldLanguage targets SubtitleRequest.Language.
	FieldLanguage = "language"

	// FieldStatus targets ListFilter.Status.
	FieldStatus = "status"

	// FieldLimit targets ListFilter.Limit.
	FieldLimit = "limit"

	// FieldVideoID targets a bare video id string.
	FieldVideoID = "video_id"
)

const maxSourceLength = 4096

// languageRegexp accepts yt-dlp language lists like "en", "pt-BR", "en.*,ja".
// The first character may not be '-' so the value can't be read as a flag.
var languageRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.,*-]{0,63}$`)

// VideoValidator implements [Validator] for the request models of the video
// API: LoadRequest, SubtitleRequest, ListFilter and video ids (string).
type VideoValidator struct {
}

func NewVideoValidator() Validator {
	return &VideoValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms
// of each model are accepted.
func (v *VideoValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.LoadRequest:
		return v.validateLoadRequest(ctx, value, fields...)
	case *models.LoadRequest:
		return v.validateLoadRequest(ctx, *value, fields...)

	case models.SubtitleRequest:
		return v.validateSubtitleRequest(ctx, value, fields...)
	case *models.SubtitleRequest:
		return v.validateSubtitleRequest(ctx, *value, fields...)

	case models.ListFilter:
		return v.validateListFilter(ctx, value, fields...)
	case *models.ListFilter:
		return v.validateListFilter(ctx, *value, fields...)

	case string:
		return v.validateVideoID(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VideoValidator) validateLoadRequest(ctx context.Context, request models.LoadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSource, FieldSubtitleSource}
	}

	source := strings.TrimSpace(request.Source)
	remote := strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")

	for _, f := range fields {
		switch f {
		case FieldSource:
			if source == "" {
				return ErrEmptySource
			}
			if len(source) > maxSourceLength {
				return ErrSourceTooLong
			}
			if remote && !video.IsYouTubeURL(source) {
				return ErrNotYouTubeURL
			}
		case FieldSubtitleSource:
			if !request.WithSubtitle {
				continue
			}
			if remote {
				if err := validateLanguage(request.SubtitleSource); err != nil {
					return fmt.Errorf("%s: %w", FieldSubtitleSource, err)
				}
				continue
			}
			subtitle := strings.TrimSpace(request.SubtitleSource)
			if subtitle == "" {
				return ErrSubtitleSourceRequired
			}
			if !strings.EqualFold(filepath.Ext(subtitle), ".srt") {
				return ErrUnsupportedSubtitleFormat
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VideoValidator) validateSubtitleRequest(ctx context.Context, request models.SubtitleRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLanguage}
	}

	for _, f := range fields {
		switch f {
		case FieldLanguage:
			if err := validateLanguage(request.Language); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VideoValidator) validateListFilter(ctx context.Context, filter models.ListFilter, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldStatus, FieldLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldStatus:
			if filter.Status != "" && !filter.Status.IsValid() {
				return fmt.Errorf("%w: %q", ErrInvalidStatus, filter.Status)
			}
		case FieldLimit:
			if filter.Limit > models.MaxListLimit {
				return fmt.Errorf("%w: at most %d", ErrInvalidLimit, models.MaxListLimit)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VideoValidator) validateVideoID(ctx context.Context, id string, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVideoID}
	}

	for _, f := range fields {
		switch f {
		case FieldVideoID:
			if !utils.IsUUID(id) {
				return ErrInvalidVideoID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateLanguage accepts an empty value (yt-dlp picks).
func validateLanguage(lang string) error {
	if lang == "" {
		return nil
	}
	if !languageRegexp.MatchString(lang) {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}
	return nil
}
