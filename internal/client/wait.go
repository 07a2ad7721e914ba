package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/deep-video-discovery/internal/adapter"
	"github.com/MKhiriev/deep-video-discovery/models"
)

var errStillProcessing = errors.New("video is still being processed")

// settled reports whether v needs no more polling. A ready video that was
// loaded with frame decoding is about to move on to decoding.
func settled(v models.Video) bool {
	switch v.Status {
	case models.StatusDecoded, models.StatusFailed:
		return true
	case models.StatusReady:
		return !v.DecodeFrames
	default:
		return false
	}
}

// waitForVideo polls the video every opts.interval until it settles. A busy
// server is polled again; any other error stops the wait.
func (a *App) waitForVideo(ctx context.Context, id string, opts waitOptions) (models.Video, error) {
	ad, err := a.serverAdapter()
	if err != nil {
		return models.Video{}, err
	}

	backoff := retry.WithMaxDuration(opts.maxWait, retry.NewConstant(opts.interval))

	var last models.Video
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		v, err := ad.Get(ctx, id)
		if errors.Is(err, adapter.ErrUnavailable) {
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}

		last = v
		if !settled(v) {
			a.logger.Debug().Str("video_id", id).Str("status", string(v.Status)).Msg("waiting")
			return retry.RetryableError(fmt.Errorf("%w: %s", errStillProcessing, v.Status))
		}
		return nil
	})
	if errors.Is(err, errStillProcessing) {
		return last, fmt.Errorf("%w: last status %s", ErrWaitTimeout, last.Status)
	}
	if err != nil {
		return last, err
	}

	if last.Status == models.StatusFailed {
		return last, fmt.Errorf("%w: %s", ErrVideoFailed, last.Error)
	}
	return last, nil
}
