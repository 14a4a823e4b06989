// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws parallel-coordinates charts as SVG and
// writes the selected rows in text formats.
package render

import (
	"fmt"
	"html"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/aclements/go-parcoords/dataset"
	"github.com/aclements/go-parcoords/dims"
	"github.com/aclements/go-parcoords/selection"
)

// Colors assigns a stroke color to each line from one of its
// categorical values.
type Colors struct {
	// Key is the dimension whose value picks the color. If Key
	// is empty, every line gets Default.
	Key string

	// Palette maps values of Key to CSS colors.
	Palette map[string]string

	// Default is the color for values not in Palette.
	Default string
}

// PartyColors colors lines red for Republicans, blue for Democrats,
// and gray otherwise.
var PartyColors = Colors{
	Key:     "party",
	Palette: map[string]string{"Republicans": "#FF0000", "Democrats": "#0000FF"},
	Default: "#555",
}

func (c Colors) color(cfg *dims.Config, row *dataset.Row) string {
	def := c.Default
	if def == "" {
		def = "#555"
	}
	i, ok := cfg.Lookup(c.Key)
	if !ok {
		return def
	}
	if s, ok := row.Values[i].(string); ok {
		if col, ok := c.Palette[s]; ok {
			return col
		}
	}
	return def
}

// Options control SVG rendering.
type Options struct {
	Colors Colors

	// Title, if non-empty, is drawn above the chart.
	Title string

	// MaxTicks is the maximum number of ticks on quantitative
	// axes. If zero, 10 is used.
	MaxTicks int

	// Interactive adds a drag target over each axis for the
	// browser brushing script.
	Interactive bool
}

const style = `
.foreground path { fill: none; stroke-opacity: .7; stroke-width: 1.5; }
.axis line, .axis path.domain { fill: none; stroke: #000; shape-rendering: crispEdges; }
.axis text { font: 10px sans-serif; }
.axis text.title { font-weight: bold; cursor: move; }
.brush rect.extent { fill: #000; fill-opacity: .15; stroke: #fff; shape-rendering: crispEdges; }
.overlay { fill: none; pointer-events: all; cursor: crosshair; }
`

// SVG draws the chart. Rows that sel does not select are drawn with
// display:none, and each active constraint in c is drawn as a brush
// extent on its axis.
func SVG(w io.Writer, cfg *dims.Config, rows []*dataset.Row, sel *selection.Selection, c selection.Constraints, opts Options) {
	layout := cfg.Layout()
	ow, oh := layout.Outer()

	canvas := svg.New(w)
	canvas.Start(int(ow+0.5), int(oh+0.5), `class="parcoords"`)
	defer canvas.End()
	canvas.Style("text/css", style)
	if opts.Title != "" {
		canvas.Title(opts.Title)
		canvas.Text(int(ow/2), int(layout.Margins.Top/3), opts.Title, `text-anchor="middle" dy=".7em" font-size="14px" font-family="sans-serif"`)
	}
	canvas.Gtransform(translate(layout.Margins.Left, layout.Margins.Top))
	defer canvas.Gend()

	// Foreground lines.
	canvas.Group(`class="foreground"`)
	xs, ys := make([]float64, cfg.Len()), make([]float64, cfg.Len())
	for ri, row := range rows {
		for i := range xs {
			xs[i] = cfg.X(i)
			ys[i], _ = cfg.Dim(i).Scale.Map(row.Values[i])
		}
		path := linePath(xs, ys)
		if path == "" {
			continue
		}
		st := "stroke:" + opts.Colors.color(cfg, row)
		if sel != nil && !sel.Flags[ri] {
			st += ";display:none"
		}
		canvas.Path(path, st, fmt.Sprintf(`data-line="%d"`, row.Line))
	}
	canvas.Gend()

	// Axes.
	maxTicks := opts.MaxTicks
	if maxTicks == 0 {
		maxTicks = 10
	}
	for i := 0; i < cfg.Len(); i++ {
		d := cfg.Dim(i)
		canvas.Group(`class="axis"`, fmt.Sprintf(`transform="%s"`, translate(cfg.X(i), 0)), fmt.Sprintf(`data-key="%s"`, html.EscapeString(d.Key)))
		renderAxis(canvas, cfg, i, maxTicks)
		if ext, ok := c.Get(d.Key); ok {
			renderBrush(canvas, d, ext)
		}
		if opts.Interactive {
			canvas.Rect(-8, 0, 16, int(layout.Height+0.5), `class="overlay"`, fmt.Sprintf(`data-key="%s"`, html.EscapeString(d.Key)))
		}
		canvas.Gend()
	}
}

func translate(x, y float64) string {
	return "translate(" + fmtFloat(x) + "," + fmtFloat(y) + ")"
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}

// linePath returns SVG path data through the points (xs[i], ys[i]).
// Points with a non-finite coordinate break the line, so undefined
// values never reach the path.
func linePath(xs, ys []float64) string {
	var path []byte
	inLine := false
	for i := range xs {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			inLine = false
			continue
		}
		if !inLine {
			path = append(path, 'M')
			inLine = true
		} else {
			path = append(path, 'L')
		}
		path = strconv.AppendFloat(path, xs[i], 'g', 6, 64)
		path = append(path, ',')
		path = strconv.AppendFloat(path, ys[i], 'g', 6, 64)
	}
	return string(path)
}

func renderAxis(canvas *svg.SVG, cfg *dims.Config, i int, maxTicks int) {
	d := cfg.Dim(i)
	h := cfg.Layout().Height
	canvas.Path("M-6,0H0V"+fmtFloat(h)+"H-6", `class="domain"`)

	// Tick labels sit left of the axis. The first axis has the
	// left margin; the others have the gap to the previous axis.
	room := cfg.Layout().Margins.Left
	if i > 0 {
		room = cfg.Spacing()
	}
	room -= 12
	for _, tick := range d.Scale.Ticks(maxTicks) {
		y := int(tick.Pos + 0.5)
		canvas.Line(-6, y, 0, y)
		canvas.Text(-9, y, fitLabel(tick.Label, room), `text-anchor="end"`, `dy=".32em"`)
	}
	canvas.Text(0, -9, d.Title(), `class="title"`, `text-anchor="start"`)
}

func renderBrush(canvas *svg.SVG, d *dims.Dimension, ext dims.Extent) {
	y0, y1 := ext.Lo, ext.Hi
	if q, ok := d.Scale.(dims.Quantitative); ok {
		y0, y1 = q.MapUnits(ext.Lo), q.MapUnits(ext.Hi)
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	canvas.Group(`class="brush"`)
	// Give zero-height brushes (one category) something to see.
	top, height := int(y0+0.5), int(y1-y0+0.5)
	if height < 2 {
		top, height = top-1, 2
	}
	canvas.Rect(-8, top, 16, height, `class="extent"`)
	canvas.Gend()
}
