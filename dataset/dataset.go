// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset reads delimited tabular files into rows of typed
// values for a parallel-coordinates chart.
//
// The input has a header row followed by one row per entity. Every
// dimension key must name a header column; other columns are kept as
// raw cells and carried through to exports.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aclements/go-parcoords/dims"
)

// A LoadError reports that an input could not be loaded at all.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// A MalformedRowError reports a cell that failed its dimension's
// coercion rule.
type MalformedRowError struct {
	Line  int
	Key   string
	Value string
	Err   error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: malformed %s value %q: %v", e.Line, e.Key, e.Value, e.Err)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

var errMissingCell = errors.New("missing cell")

// A Row is one record of the input. Rows are immutable once loaded.
type Row struct {
	// Line is the 1-based line number of the record. The header
	// is line 1.
	Line int

	// Values holds one coerced value per dimension, in dimension
	// order. Cells that failed coercion are nil.
	Values []dims.Value

	// Cells holds the raw cells in header order.
	Cells []string
}

// Defined reports whether the row has a value for dimension i.
func (r *Row) Defined(i int) bool {
	return r.Values[i] != nil
}

// Options control how input is read.
type Options struct {
	// Comma is the field delimiter. If zero, ',' is used.
	Comma rune

	// Strict makes the first malformed cell a fatal error
	// instead of a warning.
	Strict bool
}

// A Dataset is a loaded input.
type Dataset struct {
	Header []string
	Specs  []dims.Spec
	Rows   []*Row

	// Malformed lists the cells that failed coercion, in input
	// order. The affected values are undefined in Rows.
	Malformed []*MalformedRowError
}

// Load reads the file at path. The path "-" reads standard input.
// If the input cannot be read or its header does not provide every
// dimension, Load returns a *LoadError.
func Load(path string, specs []dims.Spec, opts Options) (*Dataset, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, &LoadError{path, err}
		}
		defer f.Close()
		r = f
	}
	ds, err := Read(r, specs, opts)
	if err != nil {
		var merr *MalformedRowError
		if errors.As(err, &merr) {
			return nil, err
		}
		return nil, &LoadError{path, err}
	}
	return ds, nil
}

// Read reads a dataset from r. Read returns a *MalformedRowError only
// in strict mode.
func Read(r io.Reader, specs []dims.Spec, opts Options) (*Dataset, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input")
	} else if err != nil {
		return nil, err
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	// Find each dimension's column.
	cols := make([]int, len(specs))
	var missing []string
	for i, spec := range specs {
		cols[i] = -1
		for j, h := range header {
			if h == spec.Key {
				cols[i] = j
				break
			}
		}
		if cols[i] < 0 {
			missing = append(missing, spec.Key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %s", strings.Join(missing, ", "))
	}

	ds := &Dataset{Header: header, Specs: specs}
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(cells) == 1 && strings.TrimSpace(cells[0]) == "" {
			continue
		}

		row := &Row{Line: line, Values: make([]dims.Value, len(specs)), Cells: cells}
		for i, spec := range specs {
			var cell string
			var v dims.Value
			var err error
			if cols[i] < len(cells) {
				cell = cells[cols[i]]
				v, err = spec.Type.Coerce(cell, spec.Domain)
			} else {
				err = errMissingCell
			}
			if err != nil {
				merr := &MalformedRowError{Line: line, Key: spec.Key, Value: cell, Err: err}
				if opts.Strict {
					return nil, merr
				}
				ds.Malformed = append(ds.Malformed, merr)
				continue
			}
			row.Values[i] = v
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// Values returns every row's value for dimension i, for domain
// inference.
func (ds *Dataset) Values(i int) []dims.Value {
	vs := make([]dims.Value, len(ds.Rows))
	for j, row := range ds.Rows {
		vs[j] = row.Values[i]
	}
	return vs
}

// Config builds the chart configuration for this dataset, inferring
// any domains the specs leave open.
func (ds *Dataset) Config(layout dims.Layout) (*dims.Config, error) {
	return dims.NewConfig(ds.Specs, layout, ds.Values)
}
