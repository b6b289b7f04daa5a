package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diagram.mmd")
	writeFile(t, path, "graph TD\n  A --> B")

	w, err := New(Config{Path: path, DebounceDur: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	changes, err := w.Start()
	require.NoError(t, err)

	writeFile(t, path, "graph TD\n  A --> C")

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("expected change notification")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diagram.mmd")
	writeFile(t, path, "graph TD\n  A --> B")

	w, err := New(Config{Path: path, DebounceDur: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	changes, err := w.Start()
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "other.mmd"), "graph TD\n  X --> Y")

	select {
	case <-changes:
		t.Fatal("unexpected notification for a sibling file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diagram.mmd")
	writeFile(t, path, "graph TD\n  A --> B")

	w, err := New(Config{Path: path, DebounceDur: 150 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	changes, err := w.Start()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		writeFile(t, path, "graph TD\n  A --> B")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("expected one debounced notification")
	}

	select {
	case <-changes:
		t.Fatal("burst should collapse to a single notification")
	case <-time.After(400 * time.Millisecond):
	}
}
