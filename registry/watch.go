// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"context"
	"log/slog"
	"path/filepath"

	"cogentcore.org/tailor/base/errors"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads r from the given file whenever the file is written
// or replaced, until ctx is done. A file that fails to load is logged
// and r keeps its previous garments. If onReload is non-nil it is
// called after every reload attempt with its result.
// The directory of the file is watched, so that editors that save
// by renaming a new file into place are handled.
func Watch(ctx context.Context, r *Registry, fname string, onReload func(err error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	fname = filepath.Clean(fname)
	if err := watcher.Add(filepath.Dir(fname)); err != nil {
		watcher.Close()
		return err
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != fname || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				nr, err := Open(fname)
				if err == nil {
					r.Replace(nr)
					slog.Info("registry: reloaded", "file", fname)
				} else {
					slog.Error("registry: reload failed, keeping previous data", "file", fname, "err", err)
				}
				if onReload != nil {
					onReload(err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				errors.Log(err)
			}
		}
	}()
	return nil
}
