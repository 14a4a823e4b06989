// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dims

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCoerce(t *testing.T) {
	party := &Domain{Categories: []string{"Republicans", "Swing State", "Democrats"}}
	for _, test := range []struct {
		kind     Kind
		explicit *Domain
		cell     string
		want     Value
		ok       bool
	}{
		{Number, nil, "0.25", 0.25, true},
		{Number, nil, " 1 ", 1.0, true},
		{Number, nil, "N/A", nil, false},
		{Number, nil, "", nil, false},
		{Number, nil, "NaN", nil, false},
		{Number, nil, "Inf", nil, false},
		{String, nil, "Ohio", "Ohio", true},
		{String, party, "Swing State", "Swing State", true},
		{String, party, "Whigs", nil, false},
		{Date, nil, "2016-11-08", time.Date(2016, 11, 8, 0, 0, 0, 0, time.UTC), true},
		{Date, nil, "11/08/2016", time.Date(2016, 11, 8, 0, 0, 0, 0, time.UTC), true},
		{Date, nil, "tomorrow", nil, false},
	} {
		got, err := TypeOf(test.kind).Coerce(test.cell, test.explicit)
		if (err == nil) != test.ok {
			t.Errorf("%s.Coerce(%q): got error %v, want ok=%v", test.kind, test.cell, err, test.ok)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s.Coerce(%q) = %#v, want %#v", test.kind, test.cell, got, test.want)
		}
	}
}

func TestExtent(t *testing.T) {
	got := TypeOf(Number).Extent([]Value{0.5, nil, 0.1, 0.9})
	if want := (Domain{Min: 0.1, Max: 0.9}); !reflect.DeepEqual(got, want) {
		t.Errorf("number extent: want %v; got %v", want, got)
	}
	got = TypeOf(Number).Extent([]Value{nil})
	if want := (Domain{Min: 0, Max: 1}); !reflect.DeepEqual(got, want) {
		t.Errorf("empty number extent: want %v; got %v", want, got)
	}

	// Strings are distinct and sorted lexically, never numerically.
	got = TypeOf(String).Extent([]Value{"b", "10", "a", "9", "b", nil})
	if want := []string{"10", "9", "a", "b"}; !reflect.DeepEqual(got.Categories, want) {
		t.Errorf("string extent: want %q; got %q", want, got.Categories)
	}

	d1 := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2016, 6, 1, 0, 0, 0, 0, time.UTC)
	got = TypeOf(Date).Extent([]Value{d2, d1})
	if !near(got.Min, float64(d1.Unix())) || !near(got.Max, float64(d2.Unix())) {
		t.Errorf("date extent: got %v", got)
	}
}

func TestLinearScale(t *testing.T) {
	s := TypeOf(Number).DefaultScale(100).withDomain(Domain{Min: 0, Max: 1}).(*Linear)
	for _, test := range []struct {
		x, px float64
	}{
		{0, 100}, {1, 0}, {0.25, 75},
	} {
		got, ok := s.Map(test.x)
		if !ok || !near(got, test.px) {
			t.Errorf("Map(%g) = %g, %v; want %g", test.x, got, ok, test.px)
		}
		if x := s.Invert(test.px); !near(x, test.x) {
			t.Errorf("Invert(%g) = %g; want %g", test.px, x, test.x)
		}
	}
	if _, ok := s.Map(nil); ok {
		t.Errorf("Map(nil) should have no position")
	}

	ticks := s.Ticks(10)
	if len(ticks) == 0 || len(ticks) > 10 {
		t.Fatalf("want 1 to 10 ticks; got %v", ticks)
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i].Pos >= ticks[i-1].Pos {
			t.Errorf("ticks should move up the axis: %v", ticks)
		}
	}

	// Degenerate domain maps to the start of the range.
	d := TypeOf(Number).DefaultScale(100).withDomain(Domain{Min: 0.5, Max: 0.5})
	if got, _ := d.Map(0.5); got != 100 {
		t.Errorf("degenerate Map = %g; want 100", got)
	}
}

func TestPointScale(t *testing.T) {
	p := NewPoint([]string{"Republicans", "Swing State", "Democrats"}, 0, 530)
	for _, test := range []struct {
		cat string
		px  float64
	}{
		{"Republicans", 0}, {"Swing State", 265}, {"Democrats", 530},
	} {
		got, ok := p.Map(test.cat)
		if !ok || !near(got, test.px) {
			t.Errorf("Map(%q) = %g, %v; want %g", test.cat, got, ok, test.px)
		}
	}
	if _, ok := p.Map("Whigs"); ok {
		t.Errorf("unknown category should have no position")
	}
	if got := p.Step(); !near(got, 265) {
		t.Errorf("Step = %g; want 265", got)
	}

	one := NewPoint([]string{"only"}, 0, 100)
	if got, _ := one.Map("only"); got != 50 {
		t.Errorf("single category at %g; want 50", got)
	}
}

func TestTimeScale(t *testing.T) {
	d1 := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC)
	dom := TypeOf(Date).Extent([]Value{d1, d2})
	s := TypeOf(Date).DefaultScale(200).withDomain(dom).(*Time)
	if got, _ := s.Map(d1); !near(got, 0) {
		t.Errorf("Map(first) = %g; want 0", got)
	}
	if got, _ := s.Map(d2); !near(got, 200) {
		t.Errorf("Map(last) = %g; want 200", got)
	}
	if !TypeOf(Date).Within(d1, Extent{dom.Min, dom.Min}, nil) {
		t.Errorf("first date should be within its own point extent")
	}
	for _, tick := range s.Ticks(5) {
		if _, err := time.Parse("2006-01-02", tick.Label); err != nil {
			t.Errorf("tick label %q is not a date", tick.Label)
		}
	}
}

func TestParseUnits(t *testing.T) {
	num := &Dimension{Type: TypeOf(Number)}
	date := &Dimension{Type: TypeOf(Date)}
	for _, test := range []struct {
		d    *Dimension
		s    string
		want float64
		ok   bool
	}{
		{num, "0.25", 0.25, true},
		{num, " -3 ", -3, true},
		{num, "inf", 0, false},
		{num, "-Inf", 0, false},
		{num, "NaN", 0, false},
		{num, "abc", 0, false},
		{date, "1970-01-02", 24 * 60 * 60, true},
		{date, "Inf", 0, false},
	} {
		got, err := ParseUnits(test.d, test.s)
		if (err == nil) != test.ok {
			t.Errorf("ParseUnits(%s, %q): err = %v; want ok=%v", test.d.Type.Kind(), test.s, err, test.ok)
			continue
		}
		if test.ok && got != test.want {
			t.Errorf("ParseUnits(%s, %q) = %g; want %g", test.d.Type.Kind(), test.s, got, test.want)
		}
	}
}

func TestNewConfig(t *testing.T) {
	specs := []Spec{
		{Key: "state", Description: "State", Type: TypeOf(String)},
		{Key: "abortion", Description: "Abortion", Type: TypeOf(Number), Domain: &Domain{Min: 0, Max: 1}},
		{Key: "party", Type: TypeOf(String), Domain: &Domain{Categories: []string{"Republicans", "Swing State", "Democrats"}}},
	}
	values := func(i int) []Value {
		if i != 0 {
			t.Errorf("values called for dimension %d with explicit domain", i)
		}
		return []Value{"Texas", "Ohio", "Alaska"}
	}
	cfg, err := NewConfig(specs, DefaultLayout, values)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"state", "abortion", "party"}; !reflect.DeepEqual(cfg.Keys(), want) {
		t.Errorf("Keys: want %v; got %v", want, cfg.Keys())
	}
	if got := cfg.Dim(0).Domain.Categories; !reflect.DeepEqual(got, []string{"Alaska", "Ohio", "Texas"}) {
		t.Errorf("inferred state domain %q", got)
	}
	if cfg.Dim(2).Title() != "party" {
		t.Errorf("title should fall back to key; got %q", cfg.Dim(2).Title())
	}
	if x0, x2 := cfg.X(0), cfg.X(2); x0 != 0 || x2 != DefaultLayout.Width {
		t.Errorf("axes at %g and %g; want 0 and %g", x0, x2, DefaultLayout.Width)
	}
	if got := cfg.Spacing(); got != DefaultLayout.Width/2 {
		t.Errorf("Spacing = %g; want %g", got, DefaultLayout.Width/2)
	}
	if w, h := DefaultLayout.Outer(); w != 1060 || h != 600 {
		t.Errorf("Outer = %gx%g; want 1060x600", w, h)
	}

	// The Spec's domain is copied, not aliased.
	specs[2].Domain.Categories[0] = "changed"
	if cfg.Dim(2).Domain.Categories[0] != "Republicans" {
		t.Errorf("config aliases the Spec's domain")
	}
}

func TestNewConfigErrors(t *testing.T) {
	num := TypeOf(Number)
	for _, specs := range [][]Spec{
		nil,
		{{Key: "", Type: num}},
		{{Key: "a", Type: num}, {Key: "a", Type: num}},
		{{Key: "a"}},
		{{Key: "a", Type: num, Domain: &Domain{Min: 1, Max: 0}}},
		{{Key: "a", Type: TypeOf(String), Domain: &Domain{Categories: []string{}}}},
	} {
		if _, err := NewConfig(specs, DefaultLayout, nil); err == nil {
			t.Errorf("NewConfig(%+v) should fail", specs)
		}
	}
	if _, err := NewConfig([]Spec{{Key: "a", Type: num}}, Layout{}, nil); err == nil {
		t.Errorf("NewConfig with empty layout should fail")
	}
}
