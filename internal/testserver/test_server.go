// Package testserver runs the full HTTP stack over a seeded in-memory store.
package testserver

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/academe/internal/app"
	"github.com/rpggio/academe/internal/config"
	"github.com/rpggio/academe/internal/mcp"
	"github.com/rpggio/academe/internal/transport"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
}

// New starts a server. mutate, if given, adjusts the default configuration
// before the store is opened.
func New(t *testing.T, mutate ...func(*config.Config)) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.Store.Driver = config.DriverMemory
	cfg.Store.Seed = true
	for _, fn := range mutate {
		fn(&cfg)
	}

	a, err := app.New(context.Background(), cfg, nil)
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{
		Handler:      a.Handler,
		DefaultActor: app.DefaultActor(cfg.Actor),
	})
	server := httptest.NewServer(transport.NewServer(a.Handler, mcp.NewHTTPHandler(mcpServer), nil))

	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})

	return &TestServer{Server: server, App: a}
}
