// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dims

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// A Value is a coerced cell: a float64 for Number dimensions, a
// string for String dimensions, or a time.Time for Date dimensions.
// A nil Value is undefined and is never within any extent.
type Value interface{}

// Kind is the tag of a dimension type.
type Kind int

const (
	Number Kind = iota
	String
	Date
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "Number"
	case String:
		return "String"
	case Date:
		return "Date"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named s. Names are case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "number":
		return Number, nil
	case "string":
		return String, nil
	case "date":
		return Date, nil
	}
	return 0, fmt.Errorf("unknown dimension type %q", s)
}

// Type implements the per-kind behavior of a dimension.
type Type interface {
	Kind() Kind

	// Coerce converts a raw cell to a Value. The Domain is the
	// dimension's explicit domain, if any; categorical types use
	// it to reject values outside the category list.
	Coerce(cell string, explicit *Domain) (Value, error)

	// Extent infers a domain from observed values. Undefined
	// values are ignored.
	Extent(vs []Value) Domain

	// Within reports whether v lies in the closed interval ext.
	// ext is in d's scale units.
	Within(v Value, ext Extent, d *Dimension) bool

	// DefaultScale returns an unconfigured scale for this type
	// whose output range spans a content area of the given height.
	DefaultScale(height float64) Scale
}

// TypeOf returns the Type for kind k.
func TypeOf(k Kind) Type {
	switch k {
	case Number:
		return numberType{}
	case String:
		return stringType{}
	case Date:
		return dateType{}
	}
	panic(fmt.Sprintf("bad kind %d", int(k)))
}

// An Extent is a closed interval [Lo, Hi] in a dimension's scale
// units: domain units for quantitative dimensions and pixel
// positions for categorical dimensions.
type Extent struct {
	Lo, Hi float64
}

// Norm returns e with Lo <= Hi.
func (e Extent) Norm() Extent {
	if e.Lo > e.Hi {
		e.Lo, e.Hi = e.Hi, e.Lo
	}
	return e
}

func (e Extent) contains(x float64) bool {
	return e.Lo <= x && x <= e.Hi
}

func (e Extent) String() string {
	return fmt.Sprintf("[%g,%g]", e.Lo, e.Hi)
}

type numberType struct{}

func (numberType) Kind() Kind { return Number }

func (numberType) Coerce(cell string, _ *Domain) (Value, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", cell)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, fmt.Errorf("not a finite number: %q", cell)
	}
	return x, nil
}

func (numberType) Extent(vs []Value) Domain {
	min, max := math.NaN(), math.NaN()
	for _, v := range vs {
		x, ok := v.(float64)
		if !ok {
			continue
		}
		if x < min || math.IsNaN(min) {
			min = x
		}
		if x > max || math.IsNaN(max) {
			max = x
		}
	}
	if math.IsNaN(min) {
		// No defined values.
		min, max = 0, 1
	}
	return Domain{Min: min, Max: max}
}

func (numberType) Within(v Value, ext Extent, _ *Dimension) bool {
	x, ok := v.(float64)
	return ok && ext.contains(x)
}

func (numberType) DefaultScale(height float64) Scale {
	return &Linear{R0: height, R1: 0}
}

type stringType struct{}

func (stringType) Kind() Kind { return String }

func (stringType) Coerce(cell string, explicit *Domain) (Value, error) {
	if explicit != nil && len(explicit.Categories) > 0 {
		for _, c := range explicit.Categories {
			if c == cell {
				return cell, nil
			}
		}
		return nil, fmt.Errorf("%q is not one of %q", cell, explicit.Categories)
	}
	return cell, nil
}

func (stringType) Extent(vs []Value) Domain {
	seen := make(map[string]bool)
	var cats []string
	for _, v := range vs {
		s, ok := v.(string)
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		cats = append(cats, s)
	}
	sort.Strings(cats)
	return Domain{Categories: cats}
}

// Within compares in the ordinal scale's pixel space, which is the
// coordinate system brushes are drawn in.
func (stringType) Within(v Value, ext Extent, d *Dimension) bool {
	s, ok := v.(string)
	if !ok || d == nil || d.Scale == nil {
		return false
	}
	y, ok := d.Scale.Map(s)
	return ok && ext.contains(y)
}

func (stringType) DefaultScale(height float64) Scale {
	return &Point{R0: 0, R1: height}
}

type dateType struct{}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

func (dateType) Kind() Kind { return Date }

func (dateType) Coerce(cell string, _ *Domain) (Value, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("not a date: %q", cell)
}

func (dateType) Extent(vs []Value) Domain {
	var min, max time.Time
	found := false
	for _, v := range vs {
		t, ok := v.(time.Time)
		if !ok {
			continue
		}
		if !found || t.Before(min) {
			min = t
		}
		if !found || t.After(max) {
			max = t
		}
		found = true
	}
	if !found {
		min = time.Unix(0, 0).UTC()
		max = min.Add(24 * time.Hour)
	}
	return Domain{Min: unixSeconds(min), Max: unixSeconds(max)}
}

// Date extents are in Unix seconds.
func (dateType) Within(v Value, ext Extent, _ *Dimension) bool {
	t, ok := v.(time.Time)
	return ok && ext.contains(unixSeconds(t))
}

func (dateType) DefaultScale(height float64) Scale {
	return &Time{Linear{R0: 0, R1: height}}
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func fromUnixSeconds(x float64) time.Time {
	sec, frac := math.Modf(x)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}

// ParseUnits parses s as a position in d's scale units: a number for
// Number dimensions, a date for Date dimensions, and a pixel position
// for String dimensions. Infinities and NaN are rejected.
func ParseUnits(d *Dimension, s string) (float64, error) {
	if d.Type.Kind() == Date {
		v, err := d.Type.Coerce(s, nil)
		if err != nil {
			return 0, err
		}
		return unixSeconds(v.(time.Time)), nil
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return x, nil
}
