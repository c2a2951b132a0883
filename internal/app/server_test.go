//go:build !integration

package app

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewServer(t *testing.T) {
	tests := []struct {
		name                string
		requestTimeout      time.Duration
		wantWriteTimeout    time.Duration
		wantShutdownTimeout time.Duration
	}{
		{name: "short requests", requestTimeout: 5 * time.Second, wantWriteTimeout: 15 * time.Second, wantShutdownTimeout: 10 * time.Second},
		{name: "long exports", requestTimeout: 30 * time.Second, wantWriteTimeout: 35 * time.Second, wantShutdownTimeout: 30 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(okHandler(), "8080", tt.requestTimeout)

			require.NotNil(t, server.httpServer)
			assert.Equal(t, ":8080", server.httpServer.Addr)
			assert.Equal(t, 5*time.Second, server.httpServer.ReadHeaderTimeout)
			assert.Equal(t, tt.wantWriteTimeout, server.httpServer.WriteTimeout)
			assert.Equal(t, tt.wantShutdownTimeout, server.shutdownTimeout)
		})
	}
}

func TestServer_Shutdown(t *testing.T) {
	server := NewServer(okHandler(), "0", time.Second)

	assert.NoError(t, server.Shutdown())
}

func TestServer_Run_StopsWhenContextDone(t *testing.T) {
	server := NewServer(okHandler(), "0", time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	errChan := make(chan error, 1)
	go func() { errChan <- server.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "server did not shut down")
	}
}

func TestServer_Run_BindFailure(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	tests := []struct {
		name string
		port string
	}{
		{name: "invalid port", port: "invalid-port"},
		{name: "port in use", port: port},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(okHandler(), tt.port, time.Second)

			err := server.Run(context.Background())

			assert.ErrorContains(t, err, "listen on :"+tt.port)
		})
	}
}
