//go:build linux

package project

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const inotifyMask = unix.IN_MODIFY | unix.IN_CLOSE_WRITE | unix.IN_CREATE |
	unix.IN_DELETE | unix.IN_MOVED_FROM | unix.IN_MOVED_TO

// inotifyWatcher watches a directory tree. Directories created later are
// added as they appear.
type inotifyWatcher struct {
	fd     int
	dirs   map[int]string // watch descriptor -> directory
	events chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
}

func newWatcher(dir string) (watcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify_init failed: %w", err)
	}
	w := &inotifyWatcher{
		fd:     fd,
		dirs:   make(map[int]string),
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	if err := w.addTree(dir); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *inotifyWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		wd, err := unix.InotifyAddWatch(w.fd, path, inotifyMask)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.dirs[wd] = path
		return nil
	})
}

func (w *inotifyWatcher) Events() <-chan struct{} { return w.events }

func (w *inotifyWatcher) Close() error {
	close(w.done)
	w.wg.Wait()
	return unix.Close(w.fd)
}

func (w *inotifyWatcher) loop() {
	defer w.wg.Done()
	// room for at least one event with the longest file name
	buf := make([]byte, 4096)
	for {
		select {
		case <-w.done:
			return
		default:
		}
		n, err := unix.Read(w.fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				time.Sleep(50 * time.Millisecond)
				continue
			}
			return
		}
		changed := false
		for offset := 0; offset+unix.SizeofInotifyEvent <= n; {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			start := offset + unix.SizeofInotifyEvent
			offset = start + int(event.Len)
			name := strings.TrimRight(string(buf[start:offset]), "\x00")

			if event.Mask&unix.IN_ISDIR != 0 {
				if event.Mask&(unix.IN_CREATE|unix.IN_MOVED_TO) != 0 {
					if parent, ok := w.dirs[int(event.Wd)]; ok {
						_ = w.addTree(filepath.Join(parent, name))
					}
				}
				changed = true
				continue
			}
			if filepath.Ext(name) == SourceExt {
				changed = true
			}
		}
		if changed {
			notify(w.events)
		}
	}
}
