// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command parcoords draws a parallel-coordinates chart of a CSV file
// and filters its rows with brushes on the chart's axes.
//
// Each column named by the chart description becomes a vertical
// axis and each row becomes a line across them. By default the chart
// is the US election issues chart: a state axis, one axis per issue
// scored in [0,1], and a party axis, with lines colored by party.
//
// Brushes restrict the selection to rows whose value on an axis lies
// in an interval. They are given with -brush flags:
//
//	-brush abortion=0.4:1
//	-brush party=Democrats,Swing\ State
//
// or replayed from an event script with -events. An event script has
// one event per line:
//
//	start abortion
//	brush abortion 0.4 1
//	brushpx economy 0 120
//	select party Democrats
//	clear abortion
//	reset
//
// brushpx gives the drag in axis pixels, as a browser would.
//
// parcoords writes the chart as SVG, or the selected rows as TSV,
// an aligned table, or per-axis summary statistics. With -serve it
// instead serves the chart over HTTP, where dragging on an axis
// brushes it.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/aclements/go-parcoords/config"
	"github.com/aclements/go-parcoords/dataset"
	"github.com/aclements/go-parcoords/dims"
	"github.com/aclements/go-parcoords/internal/server"
	"github.com/aclements/go-parcoords/internal/watch"
	"github.com/aclements/go-parcoords/render"
	"github.com/aclements/go-parcoords/selection"
)

// brushFlags collects repeated -brush flags.
type brushFlags []string

func (b *brushFlags) String() string {
	return strings.Join(*b, " ")
}

func (b *brushFlags) Set(s string) error {
	if !strings.Contains(s, "=") {
		return fmt.Errorf("want key=range, got %q", s)
	}
	*b = append(*b, s)
	return nil
}

var formats = []string{"svg", "tsv", "table", "summary"}

func main() {
	log.SetPrefix("parcoords: ")
	log.SetFlags(0)

	var brushes brushFlags
	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagMemProfile = flag.String("memprofile", "", "write heap profile to `file`")
		flagConfig     = flag.String("config", "", "read the chart description from YAML `file` (default: US election chart)")
		flagDumpConfig = flag.Bool("dump-config", false, "print the chart description as YAML and exit")
		flagDelim      = flag.String("delim", "", "input field `delimiter` (overrides the chart description)")
		flagStrict     = flag.Bool("strict", false, "fail on the first malformed cell instead of warning")
		flagEvents     = flag.String("events", "", "replay brush events from `file`")
		flagOut        = flag.String("o", "", "write output to `file` (default: stdout)")
		flagFormat     = flag.String("format", "", "output `format`: "+strings.Join(formats, ", ")+" (default: table on a terminal, otherwise svg)")
		flagTitle      = flag.String("title", "", "chart `title` (overrides the chart description)")
		flagTicks      = flag.Int("ticks", 10, "maximum ticks per quantitative axis")
		flagServe      = flag.String("serve", "", "serve the chart over HTTP on `addr`")
		flagWatch      = flag.Bool("watch", false, "with -serve, reload when the input or chart description changes")
		flagLogLevel   = flag.String("loglevel", "warn", "HTTP server log `level`: debug, info, warn, error, off")
	)
	flag.Var(&brushes, "brush", "brush `key=lo:hi` or key=cat1,cat2 (may be repeated)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input.csv]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *flagMemProfile != "" {
		defer func() {
			runtime.GC()
			f, err := os.Create(*flagMemProfile)
			if err != nil {
				log.Fatal(err)
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	// Read the chart description.
	loadChart := func() (*config.Chart, error) {
		chart := config.Default()
		if *flagConfig != "" {
			var err error
			if chart, err = config.Load(*flagConfig); err != nil {
				return nil, err
			}
		}
		if *flagDelim != "" {
			chart.Delimiter = *flagDelim
		}
		if *flagTitle != "" {
			chart.Title = *flagTitle
		}
		return chart, chart.Verify()
	}
	chart, err := loadChart()
	if err != nil {
		log.Fatal(err)
	}
	if *flagDumpConfig {
		buf, err := chart.Marshal()
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(buf)
		return
	}

	// Load the input.
	path := "-"
	if flag.NArg() == 1 {
		path = flag.Arg(0)
	}
	ds, cfg, err := load(chart, path, *flagStrict)
	if err != nil {
		log.Fatal(err)
	}

	// Apply brushes.
	c := selection.Constraints{}
	for _, arg := range brushes {
		ev, err := selection.ParseBrush(cfg, arg)
		if err == nil {
			c, err = selection.Update(cfg, c, ev)
		}
		if err != nil {
			log.Fatalf("-brush %s: %v", arg, err)
		}
	}
	if *flagEvents != "" {
		c, err = replay(cfg, c, *flagEvents)
		if err != nil {
			log.Fatal(err)
		}
	}

	ropts := renderOptions(chart, *flagTicks)

	if *flagServe != "" {
		srv := server.New(ds, cfg, c, server.Options{Render: ropts, LogLevel: *flagLogLevel})
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if *flagWatch {
			if path == "-" {
				log.Fatal("-watch requires an input file")
			}
			paths := []string{path}
			if *flagConfig != "" {
				paths = append(paths, *flagConfig)
			}
			reload := func() error {
				chart, err := loadChart()
				if err != nil {
					return err
				}
				ds, cfg, err := load(chart, path, *flagStrict)
				if err != nil {
					return err
				}
				srv.Reload(ds, cfg, renderOptions(chart, *flagTicks))
				return nil
			}
			go func() {
				if err := watch.Loop(ctx, 100*time.Millisecond, reload, paths...); err != nil {
					log.Printf("watching %s: %v", strings.Join(paths, ", "), err)
				}
			}()
		}
		log.Printf("serving on %s", *flagServe)
		if err := srv.Run(ctx, *flagServe); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Prepare for output.
	format := *flagFormat
	var w io.Writer = os.Stdout
	if *flagOut != "" {
		f, err := os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	} else if format == "" && stdoutIsTerminal() {
		format = "table"
		if p, ok := startPager(); ok {
			defer p.Close()
			w = p
		}
	}
	if format == "" {
		format = "svg"
	}

	if err := write(w, format, ds, cfg, c, ropts); err != nil {
		log.Fatal(err)
	}
}

// renderOptions returns how chart is drawn with at most maxTicks
// ticks per quantitative axis.
func renderOptions(chart *config.Chart, maxTicks int) render.Options {
	return render.Options{
		Colors:   chart.RenderColors(),
		Title:    chart.Title,
		MaxTicks: maxTicks,
	}
}

// load reads the input at path as described by chart. Malformed cells
// are logged as warnings unless strict is set, in which case the
// first is an error.
func load(chart *config.Chart, path string, strict bool) (*dataset.Dataset, *dims.Config, error) {
	specs, err := chart.Specs()
	if err != nil {
		return nil, nil, err
	}
	comma, err := chart.Comma()
	if err != nil {
		return nil, nil, err
	}
	ds, err := dataset.Load(path, specs, dataset.Options{Comma: comma, Strict: strict})
	if err != nil {
		return nil, nil, err
	}
	for _, m := range ds.Malformed {
		log.Printf("warning: %s: %v", path, m)
	}
	cfg, err := ds.Config(chart.DimsLayout())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, cfg, nil
}

func replay(cfg *dims.Config, c selection.Constraints, path string) (selection.Constraints, error) {
	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()
	evs, err := selection.ParseScript(cfg, f)
	if err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	c, err = selection.Replay(cfg, c, evs)
	if err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// write writes the chart or its selected rows to w in format.
func write(w io.Writer, format string, ds *dataset.Dataset, cfg *dims.Config, c selection.Constraints, opts render.Options) error {
	sel := selection.Filter(cfg, ds.Rows, c)
	switch format {
	case "svg":
		render.SVG(w, cfg, ds.Rows, sel, c, opts)
	case "tsv":
		return render.WriteTSV(w, ds.Header, sel.Rows)
	case "table":
		render.WriteTable(w, cfg, sel.Rows)
	case "summary":
		render.WriteSummary(w, cfg, sel.Rows)
	default:
		return fmt.Errorf("unknown format %q; want one of %s", format, strings.Join(formats, ", "))
	}
	return nil
}
