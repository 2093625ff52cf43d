// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathgraph/config"
	"github.com/katalvlaran/pathgraph/overlay"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, config.DriverSQLite, cfg.Store.Driver)
	require.Equal(t, 4, cfg.Export.Indent)
	require.Equal(t, 20, cfg.Overlay.LabelsSize)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pg.yaml")
	data := `store:
  driver: memory
overlay:
  show_labels: true
  labels_size: 32
export:
  indent: 2
watch:
  debounce: 50ms
  metrics_addr: ":9090"
place: Kitchen
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.DriverMemory, cfg.Store.Driver)
	require.True(t, cfg.Overlay.ShowLabels)
	require.False(t, cfg.Overlay.ShowIndexes)
	require.Equal(t, 32, cfg.Overlay.LabelsSize)
	require.Equal(t, 2, cfg.Export.Indent)
	require.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce)
	require.Equal(t, ":9090", cfg.Watch.MetricsAddr)
	require.Equal(t, "Kitchen", cfg.Place)
	require.Equal(t, ".pathgraph/labels.db", cfg.Store.Path, "unset fields keep defaults")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := config.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err, "an explicit path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("overlay:\n  labels_size: 99\n"), 0o644))
	_, err = config.Load(bad)
	require.ErrorIs(t, err, config.ErrInvalid)
	require.ErrorIs(t, err, overlay.ErrLabelsSize)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("store: [\n"), 0o644))
	_, err = config.Load(broken)
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PATHGRAPH_STORE_DRIVER":   "memory",
		"PATHGRAPH_SHOW_LABELS":    "true",
		"PATHGRAPH_SHOW_INDEXES":   "1",
		"PATHGRAPH_LABELS_SIZE":    "15",
		"PATHGRAPH_WATCH_DEBOUNCE": "1s",
		"PATHGRAPH_PLACE":          "Hall",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	require.Equal(t, config.DriverMemory, cfg.Store.Driver)
	require.True(t, cfg.Overlay.ShowLabels)
	require.True(t, cfg.Overlay.ShowIndexes)
	require.Equal(t, 15, cfg.Overlay.LabelsSize)
	require.Equal(t, time.Second, cfg.Watch.Debounce)
	require.Equal(t, "Hall", cfg.Place)

	env["PATHGRAPH_LABELS_SIZE"] = "big"
	require.ErrorIs(t, cfg.ApplyEnv(lookup), config.ErrInvalid)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = "postgres"
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)

	cfg = config.Default()
	cfg.Store.Path = " "
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)

	cfg = config.Default()
	cfg.Export.Indent = -1
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
}
