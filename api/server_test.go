package api

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServerShutdownEndsLiveStreams(t *testing.T) {
	ts := newTestServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- ts.server.serve(ctx, listener)
	}()

	response, err := http.Get("http://" + listener.Addr().String() + "/v1/auctions/stream")
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)
	require.Eventually(t, func() bool { return ts.hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	// The open stream was closed rather than cut off mid-frame.
	_, err = io.ReadAll(response.Body)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return ts.hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServerStartFailsOnBadAddress(t *testing.T) {
	ts := newTestServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	err = ts.server.Start(context.Background(), listener.Addr().String())
	require.Error(t, err)
}
