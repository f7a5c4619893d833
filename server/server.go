// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server serves garment viewers to remote renderers: each
// websocket connection gets its own [resolver.Viewer], sends it
// customizations, and receives the manifests and paint plans.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cogentcore.org/tailor/base/errors"
	"cogentcore.org/tailor/classify"
	"cogentcore.org/tailor/customize"
	"cogentcore.org/tailor/registry"
	"cogentcore.org/tailor/resolver"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// writeWait is the time allowed to write a message.
const writeWait = 10 * time.Second

// Server is the configurator server.
type Server struct {
	// Registry resolves customizations into manifests.
	Registry *registry.Registry

	// Loader loads the parts of all viewers; it is normally
	// an [assets.Cache] shared by all connections.
	Loader resolver.Loader

	// Applier paints the parts of all viewers.
	Applier *customize.Applier

	// Metrics, if non-nil, records connections and updates.
	Metrics *Metrics

	// Gatherer, if non-nil, is served at /metrics.
	Gatherer prometheus.Gatherer

	// UpdateTimeout is the longest time an update may take; 0 means no limit.
	UpdateTimeout time.Duration

	upgrader websocket.Upgrader
}

// New returns a new server.
func New(reg *registry.Registry, loader resolver.Loader) *Server {
	return &Server{Registry: reg, Loader: loader, Applier: customize.NewApplier()}
}

// Handler returns the HTTP handler of the server:
//
//	GET /ws/{garment}        websocket viewer connection
//	GET /manifest/{garment}  manifest for the selections in the query
//	GET /classify/{id}       category of a mesh name
//	GET /metrics             Prometheus metrics, if a Gatherer is set
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/{garment}", s.serveViewer)
	mux.HandleFunc("GET /manifest/{garment}", s.serveManifest)
	mux.HandleFunc("GET /classify/{id}", s.serveClassify)
	if s.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

// ListenAndServe serves on the given address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	slog.Info("server: listening", "addr", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}

// connection is a websocket connection, which allows one writer at a time.
type connection struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *connection) send(m Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return errors.Log(c.ws.WriteJSON(m))
}

func (s *Server) serveViewer(w http.ResponseWriter, r *http.Request) {
	garment := r.PathValue("garment")
	v, err := resolver.NewViewer(s.Registry, garment, s.Loader)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if s.Applier != nil {
		v.Applier = s.Applier
	}
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		v.Close()
		return
	}
	c := &connection{ws: ws}
	v.OnManifestReady = func(m *registry.Manifest) {
		c.send(Message{Type: TypeManifestReady, Manifest: m})
	}
	v.OnPaintApplied = func(rep *customize.Report) {
		c.send(Message{Type: TypePaintApplied, Report: rep})
	}
	v.OnStateChanged = func(st resolver.States, err error) {
		msg := Message{Type: TypeState, State: st.String()}
		if err != nil {
			msg.Error = err.Error()
		}
		c.send(msg)
	}
	if s.Metrics != nil {
		s.Metrics.Connections.Inc()
		defer s.Metrics.Connections.Dec()
	}
	slog.Info("server: viewer connected", "garment", garment, "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		v.Close()
		wg.Wait()
		ws.Close()
		slog.Info("server: viewer disconnected", "garment", garment, "remote", r.RemoteAddr)
	}()
	for {
		var msg Message
		if err := ws.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("server: read failed", "err", err)
			}
			return
		}
		switch msg.Type {
		case TypeUpdate:
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.update(ctx, v, c, msg)
			}()
		default:
			c.send(Message{Type: TypeError, Seq: msg.Seq, Error: fmt.Sprintf("unknown message type %q", msg.Type)})
		}
	}
}

// update runs one viewer update. Superseded updates are not errors.
func (s *Server) update(ctx context.Context, v *resolver.Viewer, c *connection, msg Message) {
	if s.UpdateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.UpdateTimeout)
		defer cancel()
	}
	err := v.Update(ctx, msg.Customization)
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, resolver.ErrSuperseded), errors.Is(err, resolver.ErrClosed):
		result = "superseded"
	default:
		result = "error"
		c.send(Message{Type: TypeError, Seq: msg.Seq, Error: err.Error()})
	}
	if s.Metrics != nil {
		s.Metrics.Updates.WithLabelValues(result).Inc()
	}
}

func (s *Server) serveManifest(w http.ResponseWriter, r *http.Request) {
	sel := registry.Map{}
	for k, vs := range r.URL.Query() {
		sel[k] = vs[0]
	}
	m, err := s.Registry.Resolve(r.PathValue("garment"), sel)
	switch {
	case errors.Is(err, registry.ErrUnknownGarment):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, m)
}

func (s *Server) serveClassify(w http.ResponseWriter, r *http.Request) {
	cl := classify.Default()
	if s.Applier != nil && s.Applier.Classifier != nil {
		cl = s.Applier.Classifier
	}
	cat, rule := cl.Explain(r.PathValue("id"))
	writeJSON(w, map[string]any{"id": r.PathValue("id"), "category": cat, "rule": rule})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	errors.Log(json.NewEncoder(w).Encode(v))
}
