// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads chart descriptions from YAML.
//
// A description lists the chart's dimensions in axis order, along
// with optional layout, color, and input settings:
//
//	title: US election issues
//	delimiter: ","
//	layout:
//	  width: 860
//	  height: 530
//	  margins: {top: 50, right: 100, bottom: 20, left: 100}
//	colors:
//	  key: party
//	  palette: {Republicans: "#FF0000", Democrats: "#0000FF"}
//	  default: "#555"
//	dimensions:
//	  - key: state
//	    type: String
//	  - key: abortion
//	    description: Abortion
//	    type: Number
//	    domain: [0, 1]
//	  - key: party
//	    type: String
//	    domain: [Republicans, Swing State, Democrats]
//
// A dimension without a description is titled after its key. A
// dimension without a domain has it inferred from the data.
package config

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	yaml "gopkg.in/yaml.v3"

	"github.com/aclements/go-parcoords/dims"
	"github.com/aclements/go-parcoords/render"
)

var ErrInvalid = errors.New("invalid chart description")

// Chart is a chart description.
type Chart struct {
	Title      string      `yaml:"title,omitempty"`
	Delimiter  string      `yaml:"delimiter,omitempty"`
	Layout     *Layout     `yaml:"layout,omitempty"`
	Colors     *Colors     `yaml:"colors,omitempty"`
	Dimensions []Dimension `yaml:"dimensions"`
}

type Layout struct {
	Width   float64  `yaml:"width"`
	Height  float64  `yaml:"height"`
	Margins *Margins `yaml:"margins,omitempty"`
}

type Margins struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

type Colors struct {
	Key     string            `yaml:"key,omitempty"`
	Palette map[string]string `yaml:"palette,omitempty"`
	Default string            `yaml:"default,omitempty"`
}

type Dimension struct {
	Key         string `yaml:"key"`
	Description string `yaml:"description,omitempty"`
	Type        string `yaml:"type"`

	// Domain is [min, max] for Number and Date dimensions, or the
	// category list for String dimensions.
	Domain []string `yaml:"domain,omitempty,flow"`
}

// Default returns the description of the US election issues chart.
func Default() *Chart {
	unit := []string{"0", "1"}
	num := func(key, desc string) Dimension {
		return Dimension{Key: key, Description: desc, Type: "Number", Domain: unit}
	}
	return &Chart{
		Title: "US election issues",
		Colors: &Colors{
			Key:     render.PartyColors.Key,
			Palette: maps.Clone(render.PartyColors.Palette),
			Default: render.PartyColors.Default,
		},
		Dimensions: []Dimension{
			{Key: "state", Description: "State", Type: "String"},
			num("abortion", "Abortion"),
			num("corruption", "Corruption"),
			num("economy", "Economy"),
			num("education", "Education"),
			num("environment", "Environment"),
			num("gun", "Gun Policy"),
			num("health", "Health Care"),
			num("immigration", "Immigration"),
			num("tax", "Taxes"),
			{Key: "party", Description: "Party", Type: "String", Domain: []string{"Republicans", "Swing State", "Democrats"}},
		},
	}
}

// Load reads a chart description from a YAML file.
func Load(path string) (*Chart, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse parses and verifies a YAML chart description.
func Parse(buf []byte) (*Chart, error) {
	c := new(Chart)
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, err
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}

// Marshal returns c as YAML.
func (c *Chart) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Verify checks that c describes a chart that can be drawn. Errors
// wrap ErrInvalid.
func (c *Chart) Verify() error {
	if len(c.Dimensions) == 0 {
		return fmt.Errorf("%w: no dimensions", ErrInvalid)
	}
	if _, err := c.Specs(); err != nil {
		return err
	}
	if _, err := c.Comma(); err != nil {
		return err
	}
	l := c.DimsLayout()
	if !(l.Width > 0 && l.Height > 0) {
		return fmt.Errorf("%w: layout must have positive width and height", ErrInvalid)
	}
	m := l.Margins
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalid)
	}
	return nil
}

// Specs returns the dimension specs described by c.
func (c *Chart) Specs() ([]dims.Spec, error) {
	title := cases.Title(language.English)
	seen := make(map[string]bool)
	specs := make([]dims.Spec, len(c.Dimensions))
	for i, d := range c.Dimensions {
		if d.Key == "" {
			return nil, fmt.Errorf("%w: dimension %d has no key", ErrInvalid, i+1)
		}
		if seen[d.Key] {
			return nil, fmt.Errorf("%w: duplicate dimension %q", ErrInvalid, d.Key)
		}
		seen[d.Key] = true

		kind, err := dims.ParseKind(d.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: dimension %q: %v", ErrInvalid, d.Key, err)
		}
		typ := dims.TypeOf(kind)
		desc := d.Description
		if desc == "" {
			desc = title.String(d.Key)
		}
		spec := dims.Spec{Key: d.Key, Description: desc, Type: typ}
		if d.Domain != nil {
			dom, err := parseDomain(typ, d.Domain)
			if err != nil {
				return nil, fmt.Errorf("%w: dimension %q: %v", ErrInvalid, d.Key, err)
			}
			spec.Domain = dom
		}
		specs[i] = spec
	}
	return specs, nil
}

func parseDomain(typ dims.Type, vals []string) (*dims.Domain, error) {
	if typ.Kind() == dims.String {
		if len(vals) == 0 {
			return nil, fmt.Errorf("empty category list")
		}
		return &dims.Domain{Categories: append([]string(nil), vals...)}, nil
	}
	if len(vals) != 2 {
		return nil, fmt.Errorf("%s domain must be [min, max], got %d values", typ.Kind(), len(vals))
	}
	var bounds [2]float64
	d := &dims.Dimension{Type: typ}
	for i, v := range vals {
		x, err := dims.ParseUnits(d, v)
		if err != nil || math.IsInf(x, 0) {
			return nil, fmt.Errorf("bad domain bound %q", v)
		}
		bounds[i] = x
	}
	if bounds[0] > bounds[1] {
		return nil, fmt.Errorf("domain min %s exceeds max %s", vals[0], vals[1])
	}
	return &dims.Domain{Min: bounds[0], Max: bounds[1]}, nil
}

// Comma returns the input field delimiter.
func (c *Chart) Comma() (rune, error) {
	switch c.Delimiter {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size != len(c.Delimiter) || r == '"' || r == '\n' || r == '\r' || r == utf8.RuneError {
		return 0, fmt.Errorf("%w: bad delimiter %q", ErrInvalid, c.Delimiter)
	}
	return r, nil
}

// DimsLayout returns the chart geometry, filling in defaults for
// anything c leaves unset.
func (c *Chart) DimsLayout() dims.Layout {
	l := dims.DefaultLayout
	if c.Layout == nil {
		return l
	}
	if c.Layout.Width != 0 {
		l.Width = c.Layout.Width
	}
	if c.Layout.Height != 0 {
		l.Height = c.Layout.Height
	}
	if m := c.Layout.Margins; m != nil {
		l.Margins = dims.Margins{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left}
	}
	return l
}

// RenderColors returns the line coloring rule. Without a colors
// section, lines are colored by party if the chart has a party
// dimension.
func (c *Chart) RenderColors() render.Colors {
	if c.Colors == nil {
		return render.PartyColors
	}
	return render.Colors{Key: c.Colors.Key, Palette: c.Colors.Palette, Default: c.Colors.Default}
}
