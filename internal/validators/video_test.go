// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/deep-video-discovery/models"
)

func TestNewVideoValidator(t *testing.T) {
	require.NotNil(t, NewVideoValidator())
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewVideoValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
	})

	t.Run("LoadRequest value and pointer", func(t *testing.T) {
		req := models.LoadRequest{Source: "https://youtu.be/abc"}
		require.NoError(t, v.Validate(ctx, req))
		require.NoError(t, v.Validate(ctx, &req))
	})

	t.Run("SubtitleRequest value and pointer", func(t *testing.T) {
		req := models.SubtitleRequest{Language: "en"}
		require.NoError(t, v.Validate(ctx, req))
		require.NoError(t, v.Validate(ctx, &req))
	})

	t.Run("ListFilter value and pointer", func(t *testing.T) {
		filter := models.ListFilter{Status: models.StatusReady}
		require.NoError(t, v.Validate(ctx, filter))
		require.NoError(t, v.Validate(ctx, &filter))
	})

	t.Run("video id", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, "0195f1b2-0000-7000-8000-000000000001"))
		require.ErrorIs(t, v.Validate(ctx, "../etc/passwd"), ErrInvalidVideoID)
	})

	t.Run("unknown field", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, models.LoadRequest{Source: "a.mp4"}, "nope"), ErrUnknownField)
		require.ErrorIs(t, v.Validate(ctx, models.SubtitleRequest{}, "nope"), ErrUnknownField)
		require.ErrorIs(t, v.Validate(ctx, models.ListFilter{}, "nope"), ErrUnknownField)
		require.ErrorIs(t, v.Validate(ctx, "id", "nope"), ErrUnknownField)
	})
}

func TestValidateLoadRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.LoadRequest
		fields  []string
		wantErr error
	}{
		{name: "youtube", req: models.LoadRequest{Source: "https://www.youtube.com/watch?v=abc", DecodeFrames: true}},
		{name: "youtube with language", req: models.LoadRequest{Source: "https://youtu.be/abc", WithSubtitle: true, SubtitleSource: "pt-BR"}},
		{name: "youtube with default language", req: models.LoadRequest{Source: "https://youtu.be/abc", WithSubtitle: true}},
		{name: "local", req: models.LoadRequest{Source: "/videos/a.mp4"}},
		{name: "local with subtitle", req: models.LoadRequest{Source: "/videos/a.mp4", WithSubtitle: true, SubtitleSource: "/videos/a.SRT"}},
		{name: "subtitle ignored without flag", req: models.LoadRequest{Source: "/videos/a.mp4", SubtitleSource: "a.txt"}},
		{name: "empty source", req: models.LoadRequest{Source: "   "}, wantErr: ErrEmptySource},
		{name: "source too long", req: models.LoadRequest{Source: "/" + strings.Repeat("a", maxSourceLength)}, wantErr: ErrSourceTooLong},
		{name: "not youtube", req: models.LoadRequest{Source: "https://vimeo.com/1"}, wantErr: ErrNotYouTubeURL},
		{name: "flag-like language", req: models.LoadRequest{Source: "https://youtu.be/abc", WithSubtitle: true, SubtitleSource: "--exec=rm"}, wantErr: ErrInvalidLanguage},
		{name: "local subtitle required", req: models.LoadRequest{Source: "/videos/a.mp4", WithSubtitle: true}, wantErr: ErrSubtitleSourceRequired},
		{name: "local subtitle not srt", req: models.LoadRequest{Source: "/videos/a.mp4", WithSubtitle: true, SubtitleSource: "a.vtt"}, wantErr: ErrUnsupportedSubtitleFormat},
		{name: "only source checked", req: models.LoadRequest{Source: "/videos/a.mp4", WithSubtitle: true}, fields: []string{FieldSource}},
	}

	v := NewVideoValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req, tt.fields...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateSubtitleRequest(t *testing.T) {
	v := NewVideoValidator()
	ctx := context.Background()

	for _, lang := range []string{"", "en", "de", "pt-BR", "en.*,ja", "zh_Hans"} {
		assert.NoError(t, v.Validate(ctx, models.SubtitleRequest{Language: lang}), lang)
	}
	for _, lang := range []string{"-en", "en us", "en;rm", strings.Repeat("a", 65)} {
		assert.ErrorIs(t, v.Validate(ctx, models.SubtitleRequest{Language: lang}), ErrInvalidLanguage, lang)
	}
}

func TestValidateListFilter(t *testing.T) {
	v := NewVideoValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ListFilter{}))
	assert.NoError(t, v.Validate(ctx, models.ListFilter{Status: models.StatusDecoded, Limit: models.MaxListLimit, Offset: 1000}))
	assert.ErrorIs(t, v.Validate(ctx, models.ListFilter{Status: "done"}), ErrInvalidStatus)
	assert.ErrorIs(t, v.Validate(ctx, models.ListFilter{Limit: models.MaxListLimit + 1}), ErrInvalidLimit)
	assert.NoError(t, v.Validate(ctx, models.ListFilter{Limit: models.MaxListLimit + 1}, FieldStatus))
}
