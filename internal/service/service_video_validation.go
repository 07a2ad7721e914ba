package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/deep-video-discovery/internal/validators"
	"github.com/MKhiriev/deep-video-discovery/models"
)

// VideoValidationService rejects malformed requests before they reach the
// wrapped VideoService. Validation failures wrap ErrInvalidDataProvided.
type VideoValidationService struct {
	inner     VideoService
	validator validators.Validator
}

func NewVideoValidationService() VideoServiceWrapper {
	return &VideoValidationService{
		validator: validators.NewVideoValidator(),
	}
}

func (v *VideoValidationService) Load(ctx context.Context, req models.LoadRequest) (models.Video, bool, error) {
	if err := v.validate(ctx, req); err != nil {
		return models.Video{}, false, err
	}
	return v.inner.Load(ctx, req)
}

func (v *VideoValidationService) Get(ctx context.Context, id string) (models.Video, error) {
	if err := v.validate(ctx, id); err != nil {
		return models.Video{}, err
	}
	return v.inner.Get(ctx, id)
}

func (v *VideoValidationService) List(ctx context.Context, filter models.ListFilter) ([]models.Video, error) {
	if err := v.validate(ctx, filter); err != nil {
		return nil, err
	}
	return v.inner.List(ctx, filter)
}

func (v *VideoValidationService) Delete(ctx context.Context, id string) error {
	if err := v.validate(ctx, id); err != nil {
		return err
	}
	return v.inner.Delete(ctx, id)
}

func (v *VideoValidationService) DecodeFrames(ctx context.Context, id string) (models.Video, error) {
	if err := v.validate(ctx, id); err != nil {
		return models.Video{}, err
	}
	return v.inner.DecodeFrames(ctx, id)
}

func (v *VideoValidationService) FetchSubtitle(ctx context.Context, id string, req models.SubtitleRequest) (models.Video, error) {
	if err := v.validate(ctx, id); err != nil {
		return models.Video{}, err
	}
	if err := v.validate(ctx, req); err != nil {
		return models.Video{}, err
	}
	return v.inner.FetchSubtitle(ctx, id, req)
}

func (v *VideoValidationService) Subtitles(ctx context.Context, id string) ([]models.Cue, error) {
	if err := v.validate(ctx, id); err != nil {
		return nil, err
	}
	return v.inner.Subtitles(ctx, id)
}

func (v *VideoValidationService) Frames(ctx context.Context, id string) ([]string, error) {
	if err := v.validate(ctx, id); err != nil {
		return nil, err
	}
	return v.inner.Frames(ctx, id)
}

func (v *VideoValidationService) FramePath(ctx context.Context, id, name string) (string, error) {
	if err := v.validate(ctx, id); err != nil {
		return "", err
	}
	return v.inner.FramePath(ctx, id, name)
}

// Process, MarkFailed and Unfinished are internal entry points and are not
// validated.

func (v *VideoValidationService) Process(ctx context.Context, job models.Job) error {
	return v.inner.Process(ctx, job)
}

func (v *VideoValidationService) MarkFailed(ctx context.Context, id string, reason error) error {
	return v.inner.MarkFailed(ctx, id, reason)
}

func (v *VideoValidationService) Unfinished(ctx context.Context) ([]models.Job, error) {
	return v.inner.Unfinished(ctx)
}

func (v *VideoValidationService) Wrap(wrapper VideoService) VideoService {
	v.inner = wrapper
	return v
}

func (v *VideoValidationService) validate(ctx context.Context, data any) error {
	if err := v.validator.Validate(ctx, data); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
