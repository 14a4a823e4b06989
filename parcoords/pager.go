// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"golang.org/x/term"
)

func stdoutIsTerminal() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	switch os.Getenv("TERM") {
	case "", "dumb":
		return false
	}
	return true
}

// pagerCommand returns the user's pager command line, split into
// words. PARCOORDS_PAGER takes precedence over PAGER, and the default
// is less. An empty result means output should not be paged.
func pagerCommand(getenv func(string) string) ([]string, error) {
	cmd := getenv("PARCOORDS_PAGER")
	if cmd == "" {
		cmd = getenv("PAGER")
	}
	if cmd == "" {
		cmd = "less"
	}
	if cmd == "cat" {
		return nil, nil
	}
	return shellquote.Split(cmd)
}

type pager struct {
	io.WriteCloser
	cmd *exec.Cmd
}

// Close closes the pager's input and waits for the user to quit it.
func (p *pager) Close() error {
	err := p.WriteCloser.Close()
	if err2 := p.cmd.Wait(); err == nil {
		err = err2
	}
	return err
}

// startPager starts the user's pager with its input connected to the
// returned writer. If there is no pager or it fails to start,
// startPager returns false and output should go to stdout.
func startPager() (io.WriteCloser, bool) {
	args, err := pagerCommand(os.Getenv)
	if err != nil || len(args) == 0 {
		return nil, false
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// -F so single-screen output doesn't invoke paging, and -S so
	// wide tables aren't wrapped.
	cmd.Env = append(os.Environ(), "LESS=-FRS "+os.Getenv("LESS"))
	w, err := cmd.StdinPipe()
	if err != nil {
		return nil, false
	}
	if err := cmd.Start(); err != nil {
		return nil, false
	}
	return &pager{w, cmd}, true
}
