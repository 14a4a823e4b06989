// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server serves a chart over HTTP and applies brush events
// posted by the page's drag script.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/aclements/go-parcoords/dataset"
	"github.com/aclements/go-parcoords/dims"
	"github.com/aclements/go-parcoords/render"
	"github.com/aclements/go-parcoords/selection"
)

// Options configure a Server.
type Options struct {
	// Render is how the chart is drawn until the next Reload.
	Render render.Options

	// LogLevel is one of debug, info, warn, error, or off. The
	// default is warn.
	LogLevel string

	// GracefulPeriod bounds how long Run waits for requests in
	// flight when its context is canceled. The default is 15s.
	GracefulPeriod time.Duration
}

// Server holds the chart being served and its brushes.
type Server struct {
	e    *echo.Echo
	opts Options

	mu    sync.Mutex
	ds    *dataset.Dataset
	cfg   *dims.Config
	cons  selection.Constraints
	ropts render.Options
}

// state is a consistent snapshot of a Server. Everything in it is
// immutable, so handlers render from it without holding the lock.
type state struct {
	ds    *dataset.Dataset
	cfg   *dims.Config
	cons  selection.Constraints
	ropts render.Options
}

// New returns a Server for ds drawn with cfg and initially brushed
// with c.
func New(ds *dataset.Dataset, cfg *dims.Config, c selection.Constraints, opts Options) *Server {
	if opts.GracefulPeriod == 0 {
		opts.GracefulPeriod = 15 * time.Second
	}
	s := &Server{opts: opts, ds: ds, cfg: cfg, cons: c.Retain(cfg), ropts: opts.Render}

	e := echo.New()
	e.HideBanner = true
	setLevel(e, opts.LogLevel)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		e.DefaultHTTPErrorHandler(err, c)
		e.Logger.Error(err)
	}
	e.Use(logRequests)

	e.GET("/", s.page)
	e.GET("/chart.svg", s.chart)
	e.GET("/selected.tsv", s.selected)
	e.GET("/summary", s.summary)
	e.GET("/brushes", s.brushes)
	e.POST("/events", s.event)
	e.DELETE("/brushes", s.reset)
	e.DELETE("/brushes/:key", s.clear)
	s.e = e
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Run serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.e.Start(addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	graceful, cancel := context.WithTimeout(context.Background(), s.opts.GracefulPeriod)
	defer cancel()
	if err := s.e.Shutdown(graceful); err != nil {
		s.e.Close()
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Reload replaces the data being served and how it is drawn.
// Brushes on dimensions that cfg still has are kept.
func (s *Server) Reload(ds *dataset.Dataset, cfg *dims.Config, ropts render.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds, s.cfg, s.ropts = ds, cfg, ropts
	s.cons = s.cons.Retain(cfg)
}

// Constraints returns the current brushes.
func (s *Server) Constraints() selection.Constraints {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cons
}

func (s *Server) snapshot() state {
	s.mu.Lock()
	defer s.mu.Unlock()
	return state{s.ds, s.cfg, s.cons, s.ropts}
}

// update applies ev to the current brushes.
func (s *Server) update(ev selection.Event) (state, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := selection.Update(s.cfg, s.cons, ev)
	if err != nil {
		return state{}, err
	}
	s.cons = c
	return state{s.ds, s.cfg, s.cons, s.ropts}, nil
}

func (st state) filter() *selection.Selection {
	return selection.Filter(st.cfg, st.ds.Rows, st.cons)
}

func (s *Server) svg(st state, interactive bool) []byte {
	opts := st.ropts
	opts.Interactive = interactive
	var buf bytes.Buffer
	render.SVG(&buf, st.cfg, st.ds.Rows, st.filter(), st.cons, opts)
	return buf.Bytes()
}

func (s *Server) page(c echo.Context) error {
	st := s.snapshot()
	sel := st.filter()
	title := st.ropts.Title
	if title == "" {
		title = "parcoords"
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, pageHead, html.EscapeString(title))
	fmt.Fprintf(&buf, `<p id="count">%d of %d rows selected</p>`+"\n", len(sel.Rows), len(st.ds.Rows))
	buf.WriteString(`<div id="chart">`)
	buf.Write(s.svg(st, true))
	buf.WriteString("</div>\n")
	buf.WriteString(pageTail)
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) chart(c echo.Context) error {
	interactive := c.QueryParam("interactive") != ""
	return c.Blob(http.StatusOK, "image/svg+xml", s.svg(s.snapshot(), interactive))
}

func (s *Server) selected(c echo.Context) error {
	st := s.snapshot()
	var buf bytes.Buffer
	if err := render.WriteTSV(&buf, st.ds.Header, st.filter().Rows); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/tab-separated-values; charset=utf-8", buf.Bytes())
}

func (s *Server) summary(c echo.Context) error {
	st := s.snapshot()
	var buf bytes.Buffer
	render.WriteSummary(&buf, st.cfg, st.filter().Rows)
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, buf.Bytes())
}

// Brush is the JSON form of one constraint.
type Brush struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Status is the JSON response describing the current brushes and
// how many rows they select.
type Status struct {
	Brushes  map[string]Brush `json:"brushes"`
	Selected int              `json:"selected"`
	Total    int              `json:"total"`
}

func (st state) status() Status {
	out := Status{Brushes: make(map[string]Brush), Total: len(st.ds.Rows)}
	for _, k := range st.cons.Keys() {
		ext, _ := st.cons.Get(k)
		out.Brushes[k] = Brush{ext.Lo, ext.Hi}
	}
	out.Selected = len(st.filter().Rows)
	return out
}

func (s *Server) brushes(c echo.Context) error {
	return c.JSON(http.StatusOK, s.snapshot().status())
}

// EventRequest is the JSON form of a brush event. Type is one of
// start, brush, brushpx, select, clear, or reset.
type EventRequest struct {
	Type       string   `json:"type"`
	Key        string   `json:"key,omitempty"`
	Lo         *float64 `json:"lo,omitempty"`
	Hi         *float64 `json:"hi,omitempty"`
	Y0         *float64 `json:"y0,omitempty"`
	Y1         *float64 `json:"y1,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

func (r *EventRequest) event() (selection.Event, error) {
	both := func(a, b *float64, names string) error {
		if a == nil || b == nil {
			return fmt.Errorf("%s event needs %s", r.Type, names)
		}
		return nil
	}
	switch strings.ToLower(r.Type) {
	case "start":
		return selection.Start{Key: r.Key}, nil
	case "brush":
		if err := both(r.Lo, r.Hi, "lo and hi"); err != nil {
			return nil, err
		}
		return selection.Move{Key: r.Key, Lo: *r.Lo, Hi: *r.Hi}, nil
	case "brushpx":
		if err := both(r.Y0, r.Y1, "y0 and y1"); err != nil {
			return nil, err
		}
		return selection.MovePixels{Key: r.Key, Y0: *r.Y0, Y1: *r.Y1}, nil
	case "select":
		return selection.Select{Key: r.Key, Categories: r.Categories}, nil
	case "clear":
		return selection.Clear{Key: r.Key}, nil
	case "reset":
		return selection.Reset{}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", r.Type)
}

func (s *Server) event(c echo.Context) error {
	req := new(EventRequest)
	if err := c.Bind(req); err != nil {
		return err
	}
	ev, err := req.event()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return s.apply(c, ev)
}

func (s *Server) reset(c echo.Context) error {
	return s.apply(c, selection.Reset{})
}

func (s *Server) clear(c echo.Context) error {
	return s.apply(c, selection.Clear{Key: c.Param("key")})
}

func (s *Server) apply(c echo.Context, ev selection.Event) error {
	st, err := s.update(ev)
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, selection.ErrUnknownDimension) {
			code = http.StatusNotFound
		}
		return echo.NewHTTPError(code, err.Error()).SetInternal(err)
	}
	return c.JSON(http.StatusOK, st.status())
}

func setLevel(e *echo.Echo, level string) {
	switch strings.ToLower(level) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info":
		e.Logger.SetLevel(log.INFO)
	case "warn", "":
		e.Logger.SetLevel(log.WARN)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown log level %q; using warn", level)
	}
}

func logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		begin := time.Now()
		err := next(c)
		c.Logger().Infof("%s %s: status %d in %v (err: %v)",
			req.Method, req.URL, c.Response().Status, time.Since(begin), err)
		return err
	}
}
