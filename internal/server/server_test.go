package server

import (
	"context"
	"testing"
	"time"

	"emvibook/internal/config"

	"github.com/stretchr/testify/require"
)

func TestServerShutdownBeforeStart(t *testing.T) {
	cfg := &config.Config{Port: "0", JWTSecret: "test-secret"}
	srv := New(nil, cfg, nil)

	require.NotNil(t, srv.http)
	require.Equal(t, ":0", srv.http.Addr)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
}
