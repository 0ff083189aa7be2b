//go:build !linux

package project

import "errors"

func newWatcher(string) (watcher, error) {
	return nil, errors.New("inotify is only available on linux")
}
