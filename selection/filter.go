// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selection implements brushing for parallel-coordinates
// charts: the set of per-axis range constraints, the events that
// change it, and the filter that decides which rows those
// constraints select.
package selection

import (
	"sort"

	"github.com/aclements/go-parcoords/dataset"
	"github.com/aclements/go-parcoords/dims"
)

// Constraints is a set of brush constraints, at most one per
// dimension key. The zero value is the empty set.
//
// A Constraints value is never modified after it is built; With,
// Without, and Update return new sets.
type Constraints struct {
	m map[string]dims.Extent
}

// Len returns the number of active constraints.
func (c Constraints) Len() int {
	return len(c.m)
}

// Get returns the extent of the constraint on key, if any.
func (c Constraints) Get(key string) (dims.Extent, bool) {
	e, ok := c.m[key]
	return e, ok
}

// Keys returns the constrained keys in sorted order.
func (c Constraints) Keys() []string {
	keys := make([]string, 0, len(c.m))
	for k := range c.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// With returns c with key constrained to ext.
func (c Constraints) With(key string, ext dims.Extent) Constraints {
	m := make(map[string]dims.Extent, len(c.m)+1)
	for k, e := range c.m {
		m[k] = e
	}
	m[key] = ext.Norm()
	return Constraints{m}
}

// Without returns c with no constraint on key.
func (c Constraints) Without(key string) Constraints {
	if _, ok := c.m[key]; !ok {
		return c
	}
	m := make(map[string]dims.Extent, len(c.m))
	for k, e := range c.m {
		if k != key {
			m[k] = e
		}
	}
	return Constraints{m}
}

// Retain returns c without constraints on keys cfg does not have.
func (c Constraints) Retain(cfg *dims.Config) Constraints {
	for k := range c.m {
		if _, ok := cfg.Lookup(k); !ok {
			c = c.Without(k)
		}
	}
	return c
}

// An Active constraint is a constraint resolved against a
// configuration.
type Active struct {
	Dim    *dims.Dimension
	Index  int
	Extent dims.Extent
}

// Active returns the constraints in axis order. Constraints on keys
// cfg does not have are dropped.
func (c Constraints) Active(cfg *dims.Config) []Active {
	var act []Active
	for i := 0; i < cfg.Len(); i++ {
		d := cfg.Dim(i)
		if e, ok := c.m[d.Key]; ok {
			act = append(act, Active{d, i, e})
		}
	}
	return act
}

// Selected reports whether row satisfies every active constraint.
// A row with an undefined value on a constrained dimension is not
// selected.
func Selected(row *dataset.Row, act []Active) bool {
	for _, a := range act {
		if !a.Dim.Within(row.Values[a.Index], a.Extent) {
			return false
		}
	}
	return true
}

// A Selection is the result of filtering a dataset.
type Selection struct {
	// Flags[i] is whether rows[i] is selected.
	Flags []bool

	// Rows is the selected subset, in input order.
	Rows []*dataset.Row
}

// Filter applies c to rows. With no constraints every row is
// selected.
func Filter(cfg *dims.Config, rows []*dataset.Row, c Constraints) *Selection {
	act := c.Active(cfg)
	sel := &Selection{Flags: make([]bool, len(rows))}
	for i, row := range rows {
		if Selected(row, act) {
			sel.Flags[i] = true
			sel.Rows = append(sel.Rows, row)
		}
	}
	return sel
}
