// Package workers runs the background workers of the server next to the
// HTTP server.
// It defines the Worker interface and a Workers aggregate that runs
// several workers under one errgroup.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled or the worker can not continue. A
// returned error stops every other worker of the same Workers.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}
