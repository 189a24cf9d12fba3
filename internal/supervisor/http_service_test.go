// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package supervisor

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

// fakeServer simulates *http.Server lifecycle behavior.
type fakeServer struct {
	listenErr   error
	shutdownErr error
	shutdowns   atomic.Int32
	release     chan struct{}
}

func newFakeServer() *fakeServer {
	return &fakeServer{release: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.release
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.shutdowns.Add(1)
	close(f.release)
	return f.shutdownErr
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	server := newFakeServer()
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	// Give the server goroutine a moment to start, then request shutdown
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancellation")
	}

	if server.shutdowns.Load() != 1 {
		t.Errorf("shutdown calls = %d, want 1", server.shutdowns.Load())
	}
}

func TestHTTPServerServiceStartupFailure(t *testing.T) {
	server := newFakeServer()
	server.listenErr = errors.New("address already in use")
	svc := NewHTTPServerService(server, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(errors.Unwrap(err), server.listenErr) {
		t.Errorf("Serve() error = %v, want wrapped listen error", err)
	}
}

func TestCheckpointServiceRunsPeriodically(t *testing.T) {
	var count atomic.Int32
	checkpointer := checkpointFunc(func(ctx context.Context) error {
		count.Add(1)
		return nil
	})

	svc := NewCheckpointService(checkpointer, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want deadline exceeded", err)
	}
	if count.Load() < 2 {
		t.Errorf("checkpoints = %d, want at least 2", count.Load())
	}
}

func TestCheckpointServiceSurvivesErrors(t *testing.T) {
	var count atomic.Int32
	checkpointer := checkpointFunc(func(ctx context.Context) error {
		count.Add(1)
		return errors.New("database busy")
	})

	svc := NewCheckpointService(checkpointer, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	// A failed checkpoint must not stop the loop
	_ = svc.Serve(ctx)
	if count.Load() < 2 {
		t.Errorf("checkpoints = %d, want retries after failure", count.Load())
	}
}

type checkpointFunc func(ctx context.Context) error

func (f checkpointFunc) Checkpoint(ctx context.Context) error { return f(ctx) }

func TestServiceNames(t *testing.T) {
	if got := NewHTTPServerService(newFakeServer(), 0).String(); got != "http-server" {
		t.Errorf("String() = %q", got)
	}
	if got := NewCheckpointService(nil, 0).String(); got != "db-checkpoint" {
		t.Errorf("String() = %q", got)
	}
}
