// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/usedbytes/log"
)

// FileWatcher calls a handler when a single file changes. The containing
// directory is watched, so editors which save by renaming over the file
// are picked up too.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	done    chan bool
	running bool
}

func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(abs)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching '%s': %v", dir, err)
	}
	log.Verbosef("Watching %s\n", abs)

	return &FileWatcher{
		watcher: w,
		path:    abs,
		done:    make(chan bool),
	}, nil
}

func (fw *FileWatcher) Path() string {
	return fw.path
}

func (fw *FileWatcher) matches(evt fsnotify.Event) bool {
	if filepath.Clean(evt.Name) != fw.path {
		return false
	}

	return evt.Op&(fsnotify.Write|fsnotify.Create) != 0
}

// Start runs the watcher in the background. handler is called once the
// file has been quiet for backoff after a change, so a burst of writes
// results in a single call. Errors from handler are logged and don't stop
// the watcher.
func (fw *FileWatcher) Start(backoff time.Duration, handler func() error) error {
	if fw.watcher == nil {
		return fmt.Errorf("file watcher not initialized or stopped")
	}

	if fw.running {
		return fmt.Errorf("file watcher already started")
	}
	fw.running = true

	go func() {
		defer close(fw.done)

		var timer *time.Timer
		var pending <-chan time.Time

		for {
			select {
			case evt, ok := <-fw.watcher.Events:
				if !ok {
					if timer != nil {
						timer.Stop()
					}
					log.Verboseln("File watcher exiting")
					return
				}

				if !fw.matches(evt) {
					continue
				}
				log.Verbosef("%s: %s\n", evt.Name, evt.Op)

				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(backoff)
				pending = timer.C

			case err, ok := <-fw.watcher.Errors:
				if ok {
					log.Println("File watcher error:", err)
				}

			case <-pending:
				pending = nil
				if err := handler(); err != nil {
					log.Println("ERROR:", err)
				}
			}
		}
	}()

	return nil
}

// Stop closes the watcher and waits for the handler goroutine to exit.
// A stopped watcher can't be restarted.
func (fw *FileWatcher) Stop() {
	if fw.watcher == nil {
		return
	}

	if err := fw.watcher.Close(); err != nil {
		log.Println("Closing file watcher:", err)
	}

	if fw.running {
		<-fw.done
	}

	fw.watcher = nil
	fw.running = false
}
