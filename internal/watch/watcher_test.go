package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	var (
		mu    sync.Mutex
		calls [][]string
	)

	d := newDebouncer(30 * time.Millisecond)
	d.callback = func(files []string) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, files)
	}

	d.add("a.yaml")
	d.add("b.yaml")
	d.add("a.yaml")

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 1)
	assert.ElementsMatch(t, []string{"a.yaml", "b.yaml"}, calls[0])
}

func TestFileWatcherTriggersOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "records.yaml")
	require.NoError(t, os.WriteFile(file, []byte("package: records\n"), 0o644))

	changed := make(chan []string, 1)

	fw, err := NewFileWatcher([]string{file}, func(files []string) error {
		select {
		case changed <- files:
		default:
		}
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	defer fw.Stop()

	// Untracked files in the same directory never trigger.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(file, []byte("package: records2\n"), 0o644))

	select {
	case files := <-changed:
		require.Len(t, files, 1)
		assert.Equal(t, file, files[0])
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report the change")
	}
}

func TestFileWatcherResolveFailure(t *testing.T) {
	// A relative path cannot resolve once the working directory is gone;
	// the constructor must fail cleanly without leaking its watcher.
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Remove(dir))

	_, err := NewFileWatcher([]string{"records.yaml"}, func([]string) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "records.yaml")
}

func TestFileWatcherStopTwice(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "records.yaml")
	require.NoError(t, os.WriteFile(file, []byte("package: records\n"), 0o644))

	fw, err := NewFileWatcher([]string{file}, func([]string) error { return nil })
	require.NoError(t, err)
	require.NoError(t, fw.Start())

	require.NoError(t, fw.Stop())
	require.NoError(t, fw.Stop())
}
