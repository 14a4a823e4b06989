// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// wait reports whether ctx is done before the test deadline, or
// before d if d is non-zero.
func wait(t *testing.T, ctx context.Context, d time.Duration) bool {
	deadline := make(<-chan time.Time)
	if d != 0 {
		deadline = time.After(d)
	} else if dl, ok := t.Deadline(); ok {
		deadline = time.After(time.Until(dl) - 1*time.Second)
	}
	select {
	case <-ctx.Done():
		return true
	case <-deadline:
		return false
	}
}

func TestChangedWrite(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data.csv")
	writeFile(t, file, "a\n")

	ctx, cancel, err := Changed(context.Background(), file)
	if err != nil {
		t.Fatal(err)
	}
	defer cancel()
	if err := ctx.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeFile(t, file, "a\n1\n")
	if !wait(t, ctx, 0) {
		t.Fatal("write not noticed")
	}
	if cause := context.Cause(ctx); !strings.Contains(cause.Error(), "data.csv") {
		t.Errorf("cause %v does not name the file", cause)
	}
}

func TestChangedRenameOver(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.csv")
	writeFile(t, file, "a\n")

	ctx, cancel, err := Changed(context.Background(), file)
	if err != nil {
		t.Fatal(err)
	}
	defer cancel()

	tmp := filepath.Join(dir, "data.csv~")
	writeFile(t, tmp, "a\n2\n")
	if err := os.Rename(tmp, file); err != nil {
		t.Fatal(err)
	}
	if !wait(t, ctx, 0) {
		t.Fatal("rename not noticed")
	}
}

func TestChangedIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.csv")
	writeFile(t, file, "a\n")

	ctx, cancel, err := Changed(context.Background(), file)
	if err != nil {
		t.Fatal(err)
	}
	defer cancel()

	writeFile(t, filepath.Join(dir, "other.csv"), "b\n")
	if wait(t, ctx, 200*time.Millisecond) {
		t.Fatalf("canceled by unrelated file: %v", context.Cause(ctx))
	}
}

func TestChangedMissingDir(t *testing.T) {
	_, _, err := Changed(context.Background(), filepath.Join(t.TempDir(), "no", "such", "file"))
	if err == nil {
		t.Fatal("want error watching missing directory")
	}
}

func TestLoop(t *testing.T) {
	file := filepath.Join(t.TempDir(), "chart.yaml")
	writeFile(t, file, "v1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan string, 10)
	done := make(chan error, 1)
	go func() {
		done <- Loop(ctx, 10*time.Millisecond, func() error {
			buf, err := os.ReadFile(file)
			reloaded <- string(buf)
			return err
		}, file)
	}()

	// Give the watcher a moment to start.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, file, "v2")

	select {
	case got := <-reloaded:
		if got != "v2" {
			t.Errorf("reloaded %q; want v2", got)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("reload not called")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Loop returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Loop did not stop")
	}
}
