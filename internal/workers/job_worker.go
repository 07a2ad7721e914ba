// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/service"
	"github.com/MKhiriev/deep-video-discovery/models"
)

var ErrJobPanicked = errors.New("job panicked")

// JobWorker drains the job queue with a fixed number of goroutines. On start
// it also re-queues the videos a previous run left in flight.
type JobWorker struct {
	videoService service.VideoService
	queue        service.JobQueue
	count        int

	logger *logger.Logger
}

func NewJobWorker(videoService service.VideoService, queue service.JobQueue, cfg config.Workers, logger *logger.Logger) *JobWorker {
	count := cfg.Count
	if count < 1 {
		count = config.DefaultWorkersCount
	}

	return &JobWorker{
		videoService: videoService,
		queue:        queue,
		count:        count,
		logger:       logger,
	}
}

// Run blocks until ctx is cancelled. A job that is running at that moment
// sees the cancellation too; its video stays in flight and is picked up by
// the next start.
//
// Unfinished videos are collected before any consumer starts, so none of
// them can be claimed by a job while they are being reset.
func (w *JobWorker) Run(ctx context.Context) error {
	jobs := w.unfinished(ctx)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		w.requeue(ctx, jobs)
		return nil
	})

	for i := range w.count {
		g.Go(func() error {
			w.consume(ctx, i)
			return nil
		})
	}

	return g.Wait()
}

func (w *JobWorker) unfinished(ctx context.Context) []models.Job {
	jobs, err := w.videoService.Unfinished(ctx)
	if err != nil {
		w.logger.Err(err).Str("func", "JobWorker.unfinished").Msg("failed to find unfinished videos")
		return nil
	}
	return jobs
}

func (w *JobWorker) requeue(ctx context.Context, jobs []models.Job) {
	if len(jobs) == 0 {
		return
	}

	w.logger.Info().Int("jobs", len(jobs)).Msg("re-queueing unfinished videos")
	for _, job := range jobs {
		if err := w.queue.Push(ctx, job); err != nil {
			w.logger.Warn().Err(err).Str("video_id", job.VideoID).Msg("stopped re-queueing unfinished videos")
			return
		}
	}
}

func (w *JobWorker) consume(ctx context.Context, worker int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-w.queue.Jobs():
			if !ok {
				return
			}
			w.process(ctx, worker, job)
		}
	}
}

// process runs one job. A panic is turned into a failed video instead of
// taking the server down.
func (w *JobWorker) process(ctx context.Context, worker int, job models.Job) {
	log := w.logger.With().
		Int("worker", worker).
		Str("job", string(job.Kind)).
		Str("video_id", job.VideoID).
		Logger()
	ctx = log.WithContext(ctx)

	started := time.Now()
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		err := fmt.Errorf("%w: %v", ErrJobPanicked, r)
		log.Error().Err(err).Bytes("stack", debug.Stack()).Msg("recovered from panic in job")
		if markErr := w.videoService.MarkFailed(context.WithoutCancel(ctx), job.VideoID, err); markErr != nil {
			log.Err(markErr).Msg("failed to mark video as failed after panic")
		}
	}()

	log.Debug().Msg("job started")
	if err := w.videoService.Process(ctx, job); err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(started)).Msg("job failed")
		return
	}
	log.Info().Dur("elapsed", time.Since(started)).Msg("job done")
}
