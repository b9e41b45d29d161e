package server

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_RunShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	cfg := &Config{Port: 0, MaxUploadMB: 1, ReadTimeout: time.Second, WriteTimeout: time.Second, LogFormat: "json"}
	srv := NewServer(cfg, closedPool{}, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestServer_RunReportsListenError(t *testing.T) {
	t.Parallel()

	cfg := &Config{Port: -1, MaxUploadMB: 1, LogFormat: "json"}
	err := NewServer(cfg, closedPool{}, io.Discard).Run(context.Background())

	assert.ErrorContains(t, err, "server failed")
}
