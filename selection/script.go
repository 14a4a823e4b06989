// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selection

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aclements/go-parcoords/dims"
	"github.com/kballard/go-shellquote"
)

// ParseScript parses an event script. Each non-blank line is one
// event, split into words with shell quoting rules:
//
//	start KEY
//	brush KEY LO HI
//	brushpx KEY Y0 Y1
//	select KEY CATEGORY...
//	clear KEY
//	reset
//
// brush takes scale units (dates for Date axes) and brushpx takes
// pixels from the top of the axis. An unquoted word starting with '#'
// begins a comment that runs to the end of the line.
//
// Keys and units are checked against cfg.
func ParseScript(cfg *dims.Config, r io.Reader) ([]Event, error) {
	var evs []Event
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words, err := shellquote.Split(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", lineno, err)
		}
		words = stripComment(line, words)
		if len(words) == 0 {
			continue
		}
		ev, err := parseEvent(cfg, words)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		evs = append(evs, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return evs, nil
}

// stripComment drops words from the first unquoted '#' word on.
// shellquote removes quotes, so a word starting with '#' is a comment
// only if it also appears unquoted in line.
func stripComment(line string, words []string) []string {
	for i, w := range words {
		if strings.HasPrefix(w, "#") && hasUnquotedWord(line, w) {
			return words[:i]
		}
	}
	return words
}

func hasUnquotedWord(line, w string) bool {
	for _, f := range strings.Fields(line) {
		if f == w {
			return true
		}
	}
	return false
}

func parseEvent(cfg *dims.Config, words []string) (Event, error) {
	nargs := map[string]int{
		"start": 1, "brush": 3, "brushpx": 3, "clear": 1, "reset": 0,
	}
	verb, args := words[0], words[1:]
	n, ok := nargs[verb]
	if !ok && verb != "select" {
		return nil, fmt.Errorf("unknown event %q", verb)
	}
	if ok && len(args) != n {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", verb, n, len(args))
	}
	if verb == "select" && len(args) < 2 {
		return nil, fmt.Errorf("select takes a key and at least one category")
	}
	if verb != "reset" && len(args) > 0 {
		if _, err := lookup(cfg, args[0]); err != nil {
			return nil, err
		}
	}

	switch verb {
	case "start":
		return Start{args[0]}, nil
	case "brush":
		d, _ := lookup(cfg, args[0])
		lo, err := dims.ParseUnits(d, args[1])
		if err != nil {
			return nil, err
		}
		hi, err := dims.ParseUnits(d, args[2])
		if err != nil {
			return nil, err
		}
		return Move{args[0], lo, hi}, nil
	case "brushpx":
		y0, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, err
		}
		y1, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return nil, err
		}
		return MovePixels{args[0], y0, y1}, nil
	case "select":
		return Select{args[0], args[1:]}, nil
	case "clear":
		return Clear{args[0]}, nil
	case "reset":
		return Reset{}, nil
	}
	return nil, fmt.Errorf("unknown event %q", verb)
}

// Replay applies evs to c in order.
func Replay(cfg *dims.Config, c Constraints, evs []Event) (Constraints, error) {
	for _, ev := range evs {
		var err error
		c, err = Update(cfg, c, ev)
		if err != nil {
			return c, err
		}
	}
	return c, nil
}

// ParseBrush parses a command-line brush of the form key=lo:hi (or
// key=lo..hi, for values that contain colons) for quantitative axes,
// or key=cat1,cat2,... for categorical axes.
func ParseBrush(cfg *dims.Config, arg string) (Event, error) {
	i := strings.Index(arg, "=")
	if i < 0 {
		return nil, fmt.Errorf("brush %q: want key=range", arg)
	}
	key, val := arg[:i], arg[i+1:]
	d, err := lookup(cfg, key)
	if err != nil {
		return nil, err
	}
	if d.Type.Kind() == dims.String {
		return Select{key, strings.Split(val, ",")}, nil
	}

	var lo, hi string
	if j := strings.Index(val, ".."); j >= 0 {
		lo, hi = val[:j], val[j+2:]
	} else if j := strings.Index(val, ":"); j >= 0 {
		lo, hi = val[:j], val[j+1:]
	} else {
		return nil, fmt.Errorf("brush %q: want %s=lo:hi", arg, key)
	}
	x0, err := dims.ParseUnits(d, lo)
	if err != nil {
		return nil, fmt.Errorf("brush %q: %v", arg, err)
	}
	x1, err := dims.ParseUnits(d, hi)
	if err != nil {
		return nil, fmt.Errorf("brush %q: %v", arg, err)
	}
	return Move{key, x0, x1}, nil
}
