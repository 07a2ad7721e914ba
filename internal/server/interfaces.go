package server

import "context"

// Server defines the lifecycle contract of the application server.
type Server interface {
	// RunServer serves requests until SIGTERM, SIGINT or SIGQUIT arrives and
	// then shuts down gracefully.
	RunServer() error

	// Run is RunServer with a caller-controlled context. Cancelling ctx has
	// the same effect as a stop signal.
	Run(ctx context.Context) error
}
