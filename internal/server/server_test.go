package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/handler"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/service"
	"github.com/MKhiriev/deep-video-discovery/internal/workers"
)

type funcWorker func(ctx context.Context) error

func (f funcWorker) Run(ctx context.Context) error {
	return f(ctx)
}

func newTestHandlers(t *testing.T, cfg config.Server) *handler.Handlers {
	t.Helper()
	h, err := handler.NewHandlers(&service.Services{}, cfg, logger.Nop())
	require.NoError(t, err)
	return h
}

func TestNewServer_NoHandlers(t *testing.T) {
	s, err := NewServer(nil, nil, config.Server{HTTPAddress: ":8080"}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_DefaultShutdownTimeout(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0"}

	s, err := NewServer(newTestHandlers(t, cfg), nil, cfg, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, DefaultShutdownTimeout, s.(*server).httpServer.shutdownTimeout)
}

func TestRun_StopsWorkersOnCancel(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", ShutdownTimeout: time.Second}

	stopped := make(chan struct{})
	bg := workers.NewWorkers(funcWorker(func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return nil
	}))

	s, err := NewServer(newTestHandlers(t, cfg), bg, cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	<-stopped
}

func TestRun_WorkerErrorStopsServer(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0"}
	boom := errors.New("worker failed")
	bg := workers.NewWorkers(funcWorker(func(context.Context) error {
		return boom
	}))

	s, err := NewServer(newTestHandlers(t, cfg), bg, cfg, logger.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err = <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := config.Server{HTTPAddress: ln.Addr().String()}
	s, err := NewServer(newTestHandlers(t, cfg), nil, cfg, logger.Nop())
	require.NoError(t, err)

	err = s.Run(context.Background())

	assert.Error(t, err)
}

func TestHTTPServer_ServesUntilShutdown(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", ShutdownTimeout: time.Second}
	srv := newHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}), cfg, logger.Nop())

	ln, err := srv.listen()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.shutdown())
	assert.NoError(t, <-done)
}
