// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"encoding/xml"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-parcoords/dataset"
	"github.com/aclements/go-parcoords/dims"
	"github.com/aclements/go-parcoords/selection"
)

const input = `state,abortion,economy,party,note
Texas,0.1,0.8,Republicans,a
Ohio,0.5,0.2,Swing State,b
Oregon,0.9,N/A,Democrats,c
`

func load(t *testing.T) (*dims.Config, *dataset.Dataset) {
	t.Helper()
	unit := &dims.Domain{Min: 0, Max: 1}
	specs := []dims.Spec{
		{Key: "state", Description: "State", Type: dims.TypeOf(dims.String)},
		{Key: "abortion", Description: "Abortion", Type: dims.TypeOf(dims.Number), Domain: unit},
		{Key: "economy", Type: dims.TypeOf(dims.Number), Domain: unit},
		{Key: "party", Type: dims.TypeOf(dims.String), Domain: &dims.Domain{Categories: []string{"Republicans", "Swing State", "Democrats"}}},
	}
	ds, err := dataset.Read(strings.NewReader(input), specs, dataset.Options{})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := ds.Config(dims.DefaultLayout)
	if err != nil {
		t.Fatal(err)
	}
	return cfg, ds
}

type svgPath struct {
	D     string `xml:"d,attr"`
	Style string `xml:"style,attr"`
	Line  string `xml:"data-line,attr"`
}

// paths returns the foreground paths of an SVG document.
func paths(t *testing.T, doc []byte) []svgPath {
	var out []svgPath
	dec := xml.NewDecoder(bytes.NewReader(doc))
	depth, fg := 0, -1
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("bad SVG: %v\n%s", err, doc)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			depth++
			if tok.Name.Local == "g" {
				for _, a := range tok.Attr {
					if a.Name.Local == "class" && a.Value == "foreground" {
						fg = depth
					}
				}
			}
			if tok.Name.Local == "path" && fg > 0 {
				var p svgPath
				if err := dec.DecodeElement(&p, &tok); err != nil {
					t.Fatal(err)
				}
				depth--
				out = append(out, p)
			}
		case xml.EndElement:
			if depth == fg {
				fg = -1
			}
			depth--
		}
	}
	return out
}

func TestSVG(t *testing.T) {
	cfg, ds := load(t)
	c := selection.Constraints{}.With("abortion", dims.Extent{Lo: 0.4, Hi: 1})
	sel := selection.Filter(cfg, ds.Rows, c)

	var buf bytes.Buffer
	SVG(&buf, cfg, ds.Rows, sel, c, Options{Colors: PartyColors, Title: "Issues", Interactive: true})
	doc := buf.Bytes()

	ps := paths(t, doc)
	if len(ps) != 3 {
		t.Fatalf("want 3 lines; got %d", len(ps))
	}
	for i, p := range ps {
		hidden := strings.Contains(p.Style, "display:none")
		if hidden == sel.Flags[i] {
			t.Errorf("line %d: hidden=%v but selected=%v", i, hidden, sel.Flags[i])
		}
		if strings.Contains(p.D, "NaN") {
			t.Errorf("line %d has NaN in path %q", i, p.D)
		}
	}
	if !strings.Contains(ps[0].Style, "#FF0000") || !strings.Contains(ps[2].Style, "#0000FF") || !strings.Contains(ps[1].Style, "#555") {
		t.Errorf("wrong party colors: %+v", ps)
	}
	// Oregon's economy is undefined, so its line breaks there.
	if got := strings.Count(ps[2].D, "M"); got != 2 {
		t.Errorf("want 2 subpaths for broken line; got %q", ps[2].D)
	}
	if ps[1].Line != "3" {
		t.Errorf("data-line = %q; want 3", ps[1].Line)
	}

	s := string(doc)
	for _, want := range []string{`class="brush"`, `class="overlay"`, ">Abortion<", ">economy<", ">Swing State<", "<title>Issues</title>"} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing %s", want)
		}
	}
	if n := strings.Count(s, `class="axis"`); n != cfg.Len() {
		t.Errorf("want %d axes; got %d", cfg.Len(), n)
	}
}

func TestSVGNarrowAxes(t *testing.T) {
	_, ds := load(t)
	layout := dims.DefaultLayout
	layout.Width = 90
	cfg, err := ds.Config(layout)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	SVG(&buf, cfg, ds.Rows, selection.Filter(cfg, ds.Rows, selection.Constraints{}), selection.Constraints{}, Options{})
	s := buf.String()
	// Axes are 30px apart, too close for the party tick labels.
	if strings.Contains(s, ">Swing State<") || !strings.Contains(s, "…") {
		t.Errorf("party tick labels not fit to axis spacing %g", cfg.Spacing())
	}
	// The first axis has the whole left margin.
	if !strings.Contains(s, ">Oregon<") {
		t.Errorf("state tick labels should fit in the left margin")
	}
}

func TestLinePath(t *testing.T) {
	nan := math.NaN()
	for _, test := range []struct {
		xs, ys []float64
		want   string
	}{
		{[]float64{0, 1, 2}, []float64{5, 6, 7}, "M0,5L1,6L2,7"},
		{[]float64{0, 1, 2}, []float64{5, nan, 7}, "M0,5M2,7"},
		{[]float64{0, 1}, []float64{nan, nan}, ""},
	} {
		if got := linePath(test.xs, test.ys); got != test.want {
			t.Errorf("linePath(%v, %v) = %q; want %q", test.xs, test.ys, got, test.want)
		}
	}
}

func TestFitLabel(t *testing.T) {
	if got := fitLabel("Ohio", 100); got != "Ohio" {
		t.Errorf("short label changed: %q", got)
	}
	got := fitLabel("Massachusetts", 50)
	if !strings.HasSuffix(got, "…") || labelWidth(got) > 50 {
		t.Errorf("fitLabel = %q (width %g); want ellipsized to 50", got, labelWidth(got))
	}
}

func TestWriteTSV(t *testing.T) {
	cfg, ds := load(t)
	c := selection.Constraints{}.With("abortion", dims.Extent{Lo: 0.4, Hi: 1})
	sel := selection.Filter(cfg, ds.Rows, c)

	var buf bytes.Buffer
	if err := WriteTSV(&buf, ds.Header, sel.Rows); err != nil {
		t.Fatal(err)
	}
	want := "state\tabortion\teconomy\tparty\tnote\n" +
		"Ohio\t0.5\t0.2\tSwing State\tb\n" +
		"Oregon\t0.9\tN/A\tDemocrats\tc\n"
	if buf.String() != want {
		t.Errorf("want:\n%sgot:\n%s", want, buf.String())
	}
}

func TestTable(t *testing.T) {
	cfg, ds := load(t)
	tab := Table(cfg, ds.Rows)
	if tab.Len() != 3 {
		t.Fatalf("want 3 rows; got %d", tab.Len())
	}
	econ := tab.MustColumn("economy").([]float64)
	if econ[0] != 0.8 || !math.IsNaN(econ[2]) {
		t.Errorf("economy column %v", econ)
	}

	var buf bytes.Buffer
	WriteTable(&buf, cfg, ds.Rows)
	if !strings.Contains(buf.String(), "Swing State") {
		t.Errorf("table missing values:\n%s", buf.String())
	}
}

func TestSummary(t *testing.T) {
	cfg, ds := load(t)
	sum := Summary(cfg, ds.Rows)
	n := sum.MustColumn("n").([]int)
	mean := sum.MustColumn("mean").([]float64)
	top := sum.MustColumn("top").([]string)

	// abortion: 0.1, 0.5, 0.9.
	if n[1] != 3 || math.Abs(mean[1]-0.5) > 1e-9 {
		t.Errorf("abortion n=%d mean=%g; want 3, 0.5", n[1], mean[1])
	}
	// economy: one undefined.
	if n[2] != 2 {
		t.Errorf("economy n=%d; want 2", n[2])
	}
	if n[3] != 3 || top[3] != "Democrats" {
		t.Errorf("party n=%d top=%q; want 3, Democrats", n[3], top[3])
	}

	var buf bytes.Buffer
	WriteSummary(&buf, cfg, nil)
	if !strings.Contains(buf.String(), "abortion") {
		t.Errorf("empty summary missing dimensions:\n%s", buf.String())
	}
}
