package project

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"sync"
	"time"
)

const (
	debounceDelay = 300 * time.Millisecond
	pollInterval  = 500 * time.Millisecond
)

// watcher reports on Events that a source file below a directory changed.
type watcher interface {
	Events() <-chan struct{}
	Close() error
}

// Watch calls rebuild after source files change, until ctx is done. Changes
// that arrive close together cause a single rebuild, and rebuilds never
// overlap.
func (p *Project) Watch(ctx context.Context, rebuild func()) error {
	w, err := newWatcher(p.SrcDir())
	if err != nil {
		log.Printf("file notifications unavailable (%v), polling %s", err, p.SrcDir())
		w = newPoller(p.SrcDir(), pollInterval)
	}
	defer w.Close()
	return watchLoop(ctx, w.Events(), debounceDelay, rebuild)
}

func watchLoop(ctx context.Context, events <-chan struct{}, delay time.Duration, rebuild func()) error {
	var running sync.Mutex
	d := &debouncer{delay: delay, fn: func() {
		running.Lock()
		defer running.Unlock()
		if ctx.Err() == nil {
			rebuild()
		}
	}}
	defer d.stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return errors.New("watcher stopped")
			}
			d.trigger()
		}
	}
}

// debouncer runs fn once delay has passed without another trigger.
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	fn    func()
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

// poller compares the modification times of the source files on every
// tick. It is used where inotify is not available.
type poller struct {
	dir    string
	events chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
}

func newPoller(dir string, interval time.Duration) *poller {
	pl := &poller{
		dir:    dir,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	pl.wg.Add(1)
	go pl.loop(interval)
	return pl
}

func (pl *poller) Events() <-chan struct{} { return pl.events }

func (pl *poller) Close() error {
	close(pl.done)
	pl.wg.Wait()
	return nil
}

func (pl *poller) loop(interval time.Duration) {
	defer pl.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := snapshot(pl.dir)
	for {
		select {
		case <-pl.done:
			return
		case <-ticker.C:
			cur := snapshot(pl.dir)
			if !sameSnapshot(last, cur) {
				notify(pl.events)
			}
			last = cur
		}
	}
}

type fileStamp struct {
	mod  time.Time
	size int64
}

func snapshot(dir string) map[string]fileStamp {
	files := make(map[string]fileStamp)
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != SourceExt {
			return nil
		}
		if info, err := d.Info(); err == nil {
			files[path] = fileStamp{mod: info.ModTime(), size: info.Size()}
		}
		return nil
	})
	return files
}

func sameSnapshot(a, b map[string]fileStamp) bool {
	if len(a) != len(b) {
		return false
	}
	for path, stamp := range a {
		other, ok := b[path]
		if !ok || !other.mod.Equal(stamp.mod) || other.size != stamp.size {
			return false
		}
	}
	return true
}

// notify sends without blocking; a pending event already covers this one.
func notify(events chan struct{}) {
	select {
	case events <- struct{}{}:
	default:
	}
}
