package service

import (
	"context"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/models"
)

// Queue is an in-memory bounded JobQueue. Jobs that are still queued when
// the process stops are recovered from the video statuses on the next start.
type Queue struct {
	jobs chan models.Job
}

func NewQueue(cfg config.Workers) *Queue {
	size := cfg.QueueSize
	if size < 1 {
		size = config.DefaultQueueSize
	}
	return &Queue{jobs: make(chan models.Job, size)}
}

func (q *Queue) Enqueue(ctx context.Context, job models.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *Queue) Push(ctx context.Context, job models.Job) error {
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) Jobs() <-chan models.Job {
	return q.jobs
}

// Len returns the number of queued jobs.
func (q *Queue) Len() int {
	return len(q.jobs)
}
