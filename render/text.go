// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"encoding/csv"
	"io"
	"math"
	"sort"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/aclements/go-parcoords/dataset"
	"github.com/aclements/go-parcoords/dims"
)

// WriteTSV writes rows as tab-separated values with a header line.
// Cells are written as they appeared in the input, including columns
// that are not dimensions.
func WriteTSV(w io.Writer, header []string, rows []*dataset.Row) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'
	if err := tw.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(header))
	for _, row := range rows {
		for i := range rec {
			rec[i] = ""
			if i < len(row.Cells) {
				rec[i] = row.Cells[i]
			}
		}
		if err := tw.Write(rec); err != nil {
			return err
		}
	}
	tw.Flush()
	return tw.Error()
}

// Table returns rows as a table with one column per dimension.
// Number columns are float64, with NaN for undefined values; other
// columns are strings.
func Table(cfg *dims.Config, rows []*dataset.Row) *table.Table {
	b := new(table.Builder)
	for i := 0; i < cfg.Len(); i++ {
		d := cfg.Dim(i)
		switch d.Type.Kind() {
		case dims.Number:
			col := make([]float64, len(rows))
			for j, row := range rows {
				col[j] = math.NaN()
				if x, ok := row.Values[i].(float64); ok {
					col[j] = x
				}
			}
			b.Add(d.Key, col)
		default:
			col := make([]string, len(rows))
			for j, row := range rows {
				switch v := row.Values[i].(type) {
				case string:
					col[j] = v
				case time.Time:
					col[j] = v.Format("2006-01-02")
				}
			}
			b.Add(d.Key, col)
		}
	}
	return b.Done()
}

// WriteTable writes rows as an aligned text table.
func WriteTable(w io.Writer, cfg *dims.Config, rows []*dataset.Row) {
	formats := make([]string, cfg.Len())
	for i := range formats {
		formats[i] = "%v"
		if cfg.Dim(i).Type.Kind() == dims.Number {
			formats[i] = "%.3g"
		}
	}
	table.Fprint(w, Table(cfg, rows), formats...)
}

// Summary returns one row per dimension describing the values of
// rows on it: the count of defined values, and, for Number
// dimensions, their mean, standard deviation, and bounds. For other
// dimensions, "top" is the most common value.
func Summary(cfg *dims.Config, rows []*dataset.Row) *table.Table {
	n := cfg.Len()
	var (
		keys       = make([]string, n)
		counts     = make([]int, n)
		means      = make([]float64, n)
		sds        = make([]float64, n)
		mins, maxs = make([]float64, n), make([]float64, n)
		tops       = make([]string, n)
	)
	for i := 0; i < n; i++ {
		d := cfg.Dim(i)
		keys[i] = d.Key
		means[i], sds[i], mins[i], maxs[i] = math.NaN(), math.NaN(), math.NaN(), math.NaN()

		if d.Type.Kind() == dims.Number {
			var xs []float64
			for _, row := range rows {
				if x, ok := row.Values[i].(float64); ok {
					xs = append(xs, x)
				}
			}
			counts[i] = len(xs)
			if len(xs) > 0 {
				means[i] = stats.Mean(xs)
				mins[i], maxs[i] = stats.Bounds(xs)
			}
			if len(xs) > 1 {
				sds[i] = stats.StdDev(xs)
			}
			continue
		}

		freq := make(map[string]int)
		for _, row := range rows {
			switch v := row.Values[i].(type) {
			case string:
				freq[v]++
				counts[i]++
			case time.Time:
				freq[v.Format("2006-01-02")]++
				counts[i]++
			}
		}
		tops[i] = mostCommon(freq)
	}
	return new(table.Builder).
		Add("dimension", keys).
		Add("n", counts).
		Add("mean", means).
		Add("stddev", sds).
		Add("min", mins).
		Add("max", maxs).
		Add("top", tops).
		Done()
}

func mostCommon(freq map[string]int) string {
	vals := make([]string, 0, len(freq))
	for v := range freq {
		vals = append(vals, v)
	}
	sort.Slice(vals, func(i, j int) bool {
		if freq[vals[i]] != freq[vals[j]] {
			return freq[vals[i]] > freq[vals[j]]
		}
		return vals[i] < vals[j]
	})
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// WriteSummary writes Summary(cfg, rows) as an aligned text table.
func WriteSummary(w io.Writer, cfg *dims.Config, rows []*dataset.Row) {
	table.Fprint(w, Summary(cfg, rows), "%v", "%d", "%.3g", "%.3g", "%.3g", "%.3g", "%v")
}
