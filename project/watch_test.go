package project

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchLoopDebounces(t *testing.T) {
	events := make(chan struct{})
	var rebuilds atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, events, 50*time.Millisecond, func() { rebuilds.Add(1) })
	}()

	for range 3 {
		events <- struct{}{}
	}
	time.Sleep(400 * time.Millisecond)
	if got := rebuilds.Load(); got != 1 {
		t.Errorf("burst caused %d rebuilds, want 1", got)
	}

	events <- struct{}{}
	time.Sleep(400 * time.Millisecond)
	if got := rebuilds.Load(); got != 2 {
		t.Errorf("got %d rebuilds, want 2", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchLoop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watchLoop did not stop")
	}
}

func TestWatchLoopClosedEvents(t *testing.T) {
	events := make(chan struct{})
	close(events)
	if err := watchLoop(context.Background(), events, time.Millisecond, func() {}); err == nil {
		t.Error("expected an error when the watcher stops")
	}
}

// waitForEvent keeps touching new source files in dir until w reports one.
func waitForEvent(t *testing.T, w watcher, dir string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for i := 0; ; i++ {
		select {
		case <-w.Events():
			return
		case <-deadline:
			t.Fatal("no change was reported")
		case <-tick.C:
			writeFile(t, filepath.Join(dir, fmt.Sprintf("f%d.pyjs", i)), "x = 1\n")
		}
	}
}

func TestPollerReportsNewFile(t *testing.T) {
	dir := t.TempDir()
	pl := newPoller(dir, 10*time.Millisecond)
	defer pl.Close()
	waitForEvent(t, pl, dir)
}

func TestSnapshotIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pyjs"), "x = 1\n")
	writeFile(t, filepath.Join(dir, "sub", "b.pyjs"), "y = 2\n")
	writeFile(t, filepath.Join(dir, "readme.md"), "docs\n")

	before := snapshot(dir)
	if len(before) != 2 {
		t.Fatalf("snapshot has %d files, want 2", len(before))
	}
	writeFile(t, filepath.Join(dir, "readme.md"), "more docs\n")
	if !sameSnapshot(before, snapshot(dir)) {
		t.Error("a non-source file changed the snapshot")
	}
	writeFile(t, filepath.Join(dir, "sub", "b.pyjs"), "y = 22\n")
	if sameSnapshot(before, snapshot(dir)) {
		t.Error("an edited source file was not noticed")
	}
}
