// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dims

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/aclements/go-moremath/scale"
)

// A Scale maps values of one dimension to pixel positions along
// that dimension's axis.
//
// Scales are immutable once configured. The only way to set a
// scale's domain is withDomain, which returns a new scale.
type Scale interface {
	// Map returns the pixel position of v. It returns false if v
	// has no position on this scale, including if v is undefined.
	Map(v Value) (float64, bool)

	// Ticks returns at most max labeled tick marks, in increasing
	// order of value. Point scales ignore max.
	Ticks(max int) []Tick

	withDomain(d Domain) Scale
}

// A Quantitative scale can map pixel positions back to domain
// values. Categorical scales cannot.
type Quantitative interface {
	Scale

	// MapUnits returns the pixel position of x, in scale units.
	MapUnits(x float64) float64

	// Invert returns the value in scale units at pixel position
	// px. It is the inverse of MapUnits.
	Invert(px float64) float64
}

// A Tick is a labeled position on an axis.
type Tick struct {
	Pos   float64
	Label string
}

// Linear is a continuous linear scale from [Min,Max] of its domain to
// [R0,R1] in pixels. R0 may be greater than R1 for axes that grow
// upward.
type Linear struct {
	R0, R1 float64

	s scale.Linear
}

func (l *Linear) String() string {
	return fmt.Sprintf("linear [%g,%g] => [%g,%g]", l.s.Min, l.s.Max, l.R0, l.R1)
}

func (l *Linear) withDomain(d Domain) Scale {
	l2 := *l
	l2.s = scale.Linear{Min: d.Min, Max: d.Max}
	return &l2
}

func (l *Linear) Map(v Value) (float64, bool) {
	x, ok := v.(float64)
	if !ok || math.IsNaN(x) {
		return math.NaN(), false
	}
	return l.MapUnits(x), true
}

func (l *Linear) MapUnits(x float64) float64 {
	if l.s.Min == l.s.Max {
		// Degenerate domain. Everything lands on the range start.
		return l.R0
	}
	return l.R0 + l.s.Map(x)*(l.R1-l.R0)
}

func (l *Linear) Invert(px float64) float64 {
	if l.R0 == l.R1 {
		return l.s.Min
	}
	return l.s.Unmap((px - l.R0) / (l.R1 - l.R0))
}

func (l *Linear) Ticks(max int) []Tick {
	return l.ticks(max, func(x float64) string {
		return strconv.FormatFloat(x, 'g', 6, 64)
	})
}

func (l *Linear) ticks(max int, label func(float64) string) []Tick {
	if l.s.Min == l.s.Max || max < 1 {
		return []Tick{{l.MapUnits(l.s.Min), label(l.s.Min)}}
	}
	major, _ := l.s.Ticks(scale.TickOptions{Max: max})
	ticks := make([]Tick, len(major))
	for i, x := range major {
		ticks[i] = Tick{l.MapUnits(x), label(x)}
	}
	return ticks
}

// Time is a linear scale over time.Time values. Its domain and
// Invert results are in Unix seconds.
type Time struct {
	Linear
}

func (t *Time) String() string {
	return fmt.Sprintf("time [%s,%s] => [%g,%g]", fromUnixSeconds(t.s.Min).Format(time.RFC3339), fromUnixSeconds(t.s.Max).Format(time.RFC3339), t.R0, t.R1)
}

func (t *Time) withDomain(d Domain) Scale {
	return &Time{*t.Linear.withDomain(d).(*Linear)}
}

func (t *Time) Map(v Value) (float64, bool) {
	tv, ok := v.(time.Time)
	if !ok {
		return math.NaN(), false
	}
	return t.MapUnits(unixSeconds(tv)), true
}

func (t *Time) Ticks(max int) []Tick {
	layout := "2006-01-02"
	if t.s.Max-t.s.Min < 2*24*60*60 {
		layout = "Jan 2 15:04"
	}
	return t.ticks(max, func(x float64) string {
		return fromUnixSeconds(x).Format(layout)
	})
}

// Point is an ordinal scale that places categories at evenly spaced
// points over [R0,R1], with the first and last categories at the
// ends of the range. A single category sits in the middle.
type Point struct {
	R0, R1 float64

	cats  []string
	index map[string]int
}

// NewPoint returns a Point scale over cats with range [r0, r1].
func NewPoint(cats []string, r0, r1 float64) *Point {
	return (&Point{R0: r0, R1: r1}).withDomain(Domain{Categories: cats}).(*Point)
}

func (p *Point) String() string {
	return fmt.Sprintf("point %q => [%g,%g]", p.cats, p.R0, p.R1)
}

func (p *Point) withDomain(d Domain) Scale {
	p2 := &Point{R0: p.R0, R1: p.R1, index: make(map[string]int)}
	for _, c := range d.Categories {
		if _, ok := p2.index[c]; ok {
			continue
		}
		p2.index[c] = len(p2.cats)
		p2.cats = append(p2.cats, c)
	}
	return p2
}

// Categories returns the scale's domain in position order.
func (p *Point) Categories() []string {
	return append([]string(nil), p.cats...)
}

func (p *Point) Map(v Value) (float64, bool) {
	s, ok := v.(string)
	if !ok {
		return math.NaN(), false
	}
	i, ok := p.index[s]
	if !ok {
		return math.NaN(), false
	}
	return p.pos(i), true
}

func (p *Point) pos(i int) float64 {
	n := len(p.cats)
	if n == 1 {
		return (p.R0 + p.R1) / 2
	}
	return p.R0 + float64(i)*(p.R1-p.R0)/float64(n-1)
}

// Step returns the distance in pixels between adjacent categories.
func (p *Point) Step() float64 {
	if len(p.cats) < 2 {
		return math.Abs(p.R1 - p.R0)
	}
	return math.Abs(p.R1-p.R0) / float64(len(p.cats)-1)
}

func (p *Point) Ticks(int) []Tick {
	ticks := make([]Tick, len(p.cats))
	for i, c := range p.cats {
		ticks[i] = Tick{p.pos(i), c}
	}
	return ticks
}
