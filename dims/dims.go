// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dims describes the typed dimensions of a
// parallel-coordinates chart and the scales that place each
// dimension's values along its axis.
//
// A chart is configured in two steps. First the caller lists the
// dimensions as Specs, which name each dimension's type and,
// optionally, an explicit domain. Then, once the data has been
// coerced, NewConfig infers any missing domains from the data and
// builds a scale per dimension. The resulting Config is immutable and
// may be shared freely between the renderer, the selection filter,
// and the interaction layer.
package dims

import (
	"fmt"
	"math"
)

// A Domain is the set of values a scale maps from. Quantitative
// dimensions use [Min,Max]; categorical dimensions use Categories.
// Date domains are in Unix seconds.
type Domain struct {
	Min, Max   float64
	Categories []string
}

func (d Domain) String() string {
	if d.Categories != nil {
		return fmt.Sprintf("%q", d.Categories)
	}
	return fmt.Sprintf("[%g,%g]", d.Min, d.Max)
}

// A Spec describes one dimension before its domain and scale are
// known.
type Spec struct {
	Key         string
	Description string
	Type        Type

	// Domain, if non-nil, is the dimension's explicit domain.
	// Otherwise the domain is inferred with Type.Extent.
	Domain *Domain
}

// A Dimension is one axis of the chart.
type Dimension struct {
	Key         string
	Description string
	Type        Type
	Domain      Domain
	Scale       Scale

	// Explicit is true if Domain was given rather than inferred.
	Explicit bool
}

// Title returns the dimension's axis title.
func (d *Dimension) Title() string {
	if d.Description != "" {
		return d.Description
	}
	return d.Key
}

// Within reports whether v is within ext under d's type.
func (d *Dimension) Within(v Value, ext Extent) bool {
	return d.Type.Within(v, ext, d)
}

// Margins are the space around the chart's content area, in pixels.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Layout gives the geometry of the chart.
type Layout struct {
	// Width and Height are the size of the content area, not
	// including margins.
	Width, Height float64
	Margins       Margins
}

// DefaultLayout is an 860×530 content area with 50/100/20/100
// margins.
var DefaultLayout = Layout{
	Width:   860,
	Height:  530,
	Margins: Margins{Top: 50, Right: 100, Bottom: 20, Left: 100},
}

// Outer returns the full size of the drawing including margins.
func (l Layout) Outer() (w, h float64) {
	return l.Width + l.Margins.Left + l.Margins.Right, l.Height + l.Margins.Top + l.Margins.Bottom
}

// Config is the immutable description of a configured chart.
type Config struct {
	dims   []*Dimension
	byKey  map[string]int
	layout Layout
	x      *Point
}

// NewConfig builds a Config from specs. values(i) must return the
// coerced values of dimension i for every row; it is only called for
// dimensions without an explicit domain.
func NewConfig(specs []Spec, layout Layout, values func(i int) []Value) (*Config, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no dimensions")
	}
	if !(layout.Width > 0 && layout.Height > 0) {
		return nil, fmt.Errorf("bad content size %gx%g", layout.Width, layout.Height)
	}
	cfg := &Config{
		byKey:  make(map[string]int, len(specs)),
		layout: layout,
	}
	keys := make([]string, len(specs))
	for i, spec := range specs {
		if spec.Key == "" {
			return nil, fmt.Errorf("dimension %d has no key", i)
		}
		if _, ok := cfg.byKey[spec.Key]; ok {
			return nil, fmt.Errorf("duplicate dimension %q", spec.Key)
		}
		if spec.Type == nil {
			return nil, fmt.Errorf("dimension %q has no type", spec.Key)
		}
		cfg.byKey[spec.Key] = i
		keys[i] = spec.Key

		d := &Dimension{
			Key:         spec.Key,
			Description: spec.Description,
			Type:        spec.Type,
		}
		if spec.Domain != nil {
			d.Domain = copyDomain(*spec.Domain)
			d.Explicit = true
		} else {
			var vs []Value
			if values != nil {
				vs = values(i)
			}
			d.Domain = spec.Type.Extent(vs)
		}
		if err := checkDomain(d); err != nil {
			return nil, err
		}
		d.Scale = spec.Type.DefaultScale(layout.Height).withDomain(d.Domain)
		cfg.dims = append(cfg.dims, d)
	}
	cfg.x = NewPoint(keys, 0, layout.Width)
	return cfg, nil
}

func copyDomain(d Domain) Domain {
	if d.Categories != nil {
		d.Categories = append([]string(nil), d.Categories...)
	}
	return d
}

func checkDomain(d *Dimension) error {
	switch d.Type.Kind() {
	case String:
		if d.Explicit && len(d.Domain.Categories) == 0 {
			return fmt.Errorf("dimension %q: empty category domain", d.Key)
		}
	default:
		if d.Domain.Categories != nil {
			return fmt.Errorf("dimension %q: %s dimension cannot have categories", d.Key, d.Type.Kind())
		}
		if math.IsNaN(d.Domain.Min) || math.IsNaN(d.Domain.Max) || d.Domain.Min > d.Domain.Max {
			return fmt.Errorf("dimension %q: bad domain %s", d.Key, d.Domain)
		}
	}
	return nil
}

// Len returns the number of dimensions.
func (c *Config) Len() int {
	return len(c.dims)
}

// Dim returns dimension i. The result is shared and must not be
// modified.
func (c *Config) Dim(i int) *Dimension {
	return c.dims[i]
}

// Lookup returns the index of the dimension with the given key.
func (c *Config) Lookup(key string) (int, bool) {
	i, ok := c.byKey[key]
	return i, ok
}

// Keys returns the dimension keys in axis order.
func (c *Config) Keys() []string {
	keys := make([]string, len(c.dims))
	for i, d := range c.dims {
		keys[i] = d.Key
	}
	return keys
}

// Layout returns the chart geometry.
func (c *Config) Layout() Layout {
	return c.layout
}

// X returns the horizontal position of dimension i's axis within
// the content area.
func (c *Config) X(i int) float64 {
	x, _ := c.x.Map(c.dims[i].Key)
	return x
}

// Spacing returns the horizontal distance between adjacent axes.
func (c *Config) Spacing() float64 {
	return c.x.Step()
}
