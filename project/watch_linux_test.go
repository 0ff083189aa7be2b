//go:build linux

package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInotifyWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := newWatcher(dir)
	if err != nil {
		t.Skipf("inotify unavailable: %v", err)
	}
	defer w.Close()
	waitForEvent(t, w, dir)
}

func TestInotifyWatchesNewDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := newWatcher(dir)
	if err != nil {
		t.Skipf("inotify unavailable: %v", err)
	}
	defer w.Close()

	sub := filepath.Join(dir, "pkg")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	waitForEvent(t, w, dir)
	time.Sleep(100 * time.Millisecond)
	select {
	case <-w.Events():
	default:
	}
	waitForEvent(t, w, sub)
}
