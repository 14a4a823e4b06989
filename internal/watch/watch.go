// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package watch notices when input files change.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Changed returns a context that is canceled when one of paths is
// written, created, removed, renamed, or has its mode changed. The
// cause of the cancellation names the file and operation.
//
// Paths are watched through their parent directories, so a file that
// an editor replaces by renaming a new file over it is still noticed.
//
// The returned function stops watching. If err is non-nil, both the
// context and the function are nil.
func Changed(ctx context.Context, paths ...string) (context.Context, func(), error) {
	cctx, cancel := context.WithCancelCause(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		cancel(err)
		return nil, nil, err
	}
	fail := func(err error) (context.Context, func(), error) {
		w.Close()
		cancel(err)
		return nil, nil, err
	}

	want := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fail(err)
		}
		want[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fail(err)
		}
	}

	go func() {
		defer w.Close()

		for {
			select {
			case <-cctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !want[filepath.Clean(event.Name)] {
					continue
				}
				cancel(fmt.Errorf("%s is updated (%s)", event.Name, event.Op.String()))
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				cancel(err)
				return
			}
		}
	}()

	return cctx, func() { cancel(nil) }, nil
}

// Loop calls reload each time one of paths changes, until ctx is
// done. After a change, Loop waits for settle before reloading so a
// file being written in several steps is read once it is complete.
// Reload errors are logged and do not stop the loop.
func Loop(ctx context.Context, settle time.Duration, reload func() error, paths ...string) error {
	for {
		mctx, stop, err := Changed(ctx, paths...)
		if err != nil {
			return err
		}
		<-mctx.Done()
		stop()
		if ctx.Err() != nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(settle):
		}
		log.Printf("%v; reloading", context.Cause(mctx))
		if err := reload(); err != nil {
			log.Printf("reload failed: %v", err)
		}
	}
}
