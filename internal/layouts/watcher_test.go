package layouts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/dpswitch/internal/model"
)

type reloadResult struct {
	cfg *model.Config
	err error
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(dockJSON), 0644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	results := make(chan reloadResult, 4)
	w.SetReloadCallback(func(cfg *model.Config, err error) {
		results <- reloadResult{cfg, err}
	})
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	updated := `{"displays": {"A": {"port": "DP-1"}}, "configs": {"solo": {"display": "A", "resolution": "1280x720", "rate": "60"}}}`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	select {
	case r := <-results:
		require.NoError(t, r.err)
		assert.Equal(t, []string{"solo"}, r.cfg.LayoutNames())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_ReportsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(dockJSON), 0644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	results := make(chan reloadResult, 4)
	w.SetReloadCallback(func(cfg *model.Config, err error) {
		results <- reloadResult{cfg, err}
	})
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, os.WriteFile(path, []byte(`{"displays": `), 0644))

	select {
	case r := <-results:
		assert.Error(t, r.err)
		assert.Nil(t, r.cfg)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_ReloadsOnAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(dockJSON), 0644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	results := make(chan reloadResult, 4)
	w.SetReloadCallback(func(cfg *model.Config, err error) {
		results <- reloadResult{cfg, err}
	})
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	tmp := filepath.Join(dir, "config.json.tmp")
	updated := `{"displays": {"A": {"port": "DP-1"}}, "configs": {"solo": {"display": "A", "resolution": "1280x720", "rate": "60"}}}`
	require.NoError(t, os.WriteFile(tmp, []byte(updated), 0644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case r := <-results:
		require.NoError(t, r.err)
		assert.Equal(t, []string{"solo"}, r.cfg.LayoutNames())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestReloadOn(t *testing.T) {
	assert.True(t, reloadOn(fsnotify.Write))
	assert.True(t, reloadOn(fsnotify.Create))
	assert.True(t, reloadOn(fsnotify.Rename))
	assert.True(t, reloadOn(fsnotify.Write|fsnotify.Chmod))
	assert.False(t, reloadOn(fsnotify.Chmod))
	assert.False(t, reloadOn(fsnotify.Remove))
}

func TestWatcher_StopAfterFailedStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.json")
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	require.Error(t, w.Start())
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	assert.Error(t, w.Start(), "a stopped watcher cannot be restarted")
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "config.json"), nil)
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
}
