package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate points the loader at an empty directory so a developer's .env
// doesn't leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, DriverMemory, cfg.Store.Driver)
	require.Equal(t, ModeHTTP, cfg.Transport.Mode)
}

func TestLoad_LayersOverride(t *testing.T) {
	dir := isolate(t)

	yamlPath := filepath.Join(dir, "academe.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
server:
  port: 9090
store:
  driver: sqlite
  path: data/academe.db
  latency: 250ms
report:
  mode: static
log:
  level: debug
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ACADEME_ACTOR_ROLE=leader\nACADEME_SERVER_PORT=7070\n"), 0o644))

	t.Setenv("ACADEME_CONFIG_PATH", yamlPath)
	t.Setenv("ACADEME_LOG_LEVEL", "warn")
	// godotenv never overrides variables that are already set. Setenv then
	// Unsetenv restores whatever the caller had once the test ends.
	for _, key := range []string{"ACADEME_ACTOR_ROLE", "ACADEME_SERVER_PORT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, DriverSQLite, cfg.Store.Driver)
	require.Equal(t, "data/academe.db", cfg.Store.Path)
	require.Equal(t, 250*time.Millisecond, cfg.Store.Latency)
	require.Equal(t, "static", cfg.Report.Mode)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "leader", cfg.Actor.Role)
	require.True(t, cfg.Store.Seed)
}

func TestLoad_ExplicitDotEnvMissing(t *testing.T) {
	dir := isolate(t)
	t.Setenv("ACADEME_DOTENV", filepath.Join(dir, "missing.env"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	for _, tc := range []struct {
		key, value string
	}{
		{"ACADEME_STORE_DRIVER", "postgres"},
		{"ACADEME_TRANSPORT_MODE", "grpc"},
		{"ACADEME_REPORT_MODE", "cached"},
		{"ACADEME_SERVER_PORT", "eighty"},
		{"ACADEME_STORE_LATENCY", "soon"},
		{"ACADEME_STORE_SEED", "maybe"},
	} {
		t.Run(tc.key, func(t *testing.T) {
			isolate(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}
