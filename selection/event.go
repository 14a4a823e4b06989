// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selection

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-parcoords/dims"
)

var (
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrNotCategorical   = errors.New("dimension is not categorical")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrBadExtent        = errors.New("bad extent")
)

// An Event is a brush interaction on one axis, or a reset of all
// axes.
type Event interface {
	apply(cfg *dims.Config, c Constraints) (Constraints, error)
}

// Start is the beginning of a drag on an axis. It does not change
// the constraints: a drag that never moves is followed by Clear.
type Start struct {
	Key string
}

// Move sets the brush on Key to [Lo, Hi] in the dimension's scale
// units.
type Move struct {
	Key    string
	Lo, Hi float64
}

// MovePixels sets the brush on Key from a drag between Y0 and Y1,
// in pixels from the top of the content area.
type MovePixels struct {
	Key    string
	Y0, Y1 float64
}

// Clear empties the brush on Key.
type Clear struct {
	Key string
}

// Reset empties every brush.
type Reset struct{}

// Select sets the brush on a categorical axis to the smallest
// interval covering the named categories. Since brushes are
// intervals, categories positioned between the named ones are
// selected too.
type Select struct {
	Key        string
	Categories []string
}

// Update returns the constraints that result from applying ev to c.
// c itself is not modified.
func Update(cfg *dims.Config, c Constraints, ev Event) (Constraints, error) {
	return ev.apply(cfg, c)
}

func lookup(cfg *dims.Config, key string) (*dims.Dimension, error) {
	i, ok := cfg.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDimension, key)
	}
	return cfg.Dim(i), nil
}

func (ev Start) apply(cfg *dims.Config, c Constraints) (Constraints, error) {
	if _, err := lookup(cfg, ev.Key); err != nil {
		return c, err
	}
	return c, nil
}

func (ev Move) apply(cfg *dims.Config, c Constraints) (Constraints, error) {
	if _, err := lookup(cfg, ev.Key); err != nil {
		return c, err
	}
	if !finite(ev.Lo) || !finite(ev.Hi) {
		return c, fmt.Errorf("%w [%g,%g] on %q", ErrBadExtent, ev.Lo, ev.Hi, ev.Key)
	}
	return c.With(ev.Key, dims.Extent{Lo: ev.Lo, Hi: ev.Hi}), nil
}

func (ev MovePixels) apply(cfg *dims.Config, c Constraints) (Constraints, error) {
	d, err := lookup(cfg, ev.Key)
	if err != nil {
		return c, err
	}
	if math.IsNaN(ev.Y0) || math.IsNaN(ev.Y1) {
		return c, fmt.Errorf("%w [%g,%g] on %q", ErrBadExtent, ev.Y0, ev.Y1, ev.Key)
	}
	// Brushes can't leave the axis.
	h := cfg.Layout().Height
	y0, y1 := clamp(ev.Y0, 0, h), clamp(ev.Y1, 0, h)
	ext := dims.Extent{Lo: y0, Hi: y1}
	if q, ok := d.Scale.(dims.Quantitative); ok {
		ext = dims.Extent{Lo: q.Invert(y0), Hi: q.Invert(y1)}
	}
	return c.With(ev.Key, ext), nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func (ev Clear) apply(cfg *dims.Config, c Constraints) (Constraints, error) {
	if _, err := lookup(cfg, ev.Key); err != nil {
		return c, err
	}
	return c.Without(ev.Key), nil
}

func (Reset) apply(cfg *dims.Config, c Constraints) (Constraints, error) {
	return Constraints{}, nil
}

func (ev Select) apply(cfg *dims.Config, c Constraints) (Constraints, error) {
	d, err := lookup(cfg, ev.Key)
	if err != nil {
		return c, err
	}
	p, ok := d.Scale.(*dims.Point)
	if !ok {
		return c, fmt.Errorf("%q: %w", ev.Key, ErrNotCategorical)
	}
	if len(ev.Categories) == 0 {
		return c, fmt.Errorf("%w: no categories for %q", ErrBadExtent, ev.Key)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, cat := range ev.Categories {
		y, ok := p.Map(cat)
		if !ok {
			return c, fmt.Errorf("%w %q on %q; want one of %q", ErrUnknownCategory, cat, ev.Key, p.Categories())
		}
		lo, hi = math.Min(lo, y), math.Max(hi, y)
	}
	return c.With(ev.Key, dims.Extent{Lo: lo, Hi: hi}), nil
}
