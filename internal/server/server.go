// Package server exposes the rendering of chart documents over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/midbel/barchart/document"
	"github.com/midbel/barchart/internal/config"
	"github.com/midbel/barchart/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const svgContentType = "image/svg+xml"

type Handler struct {
	cfg      config.Config
	metrics  *metrics.Registry
	gatherer prometheus.Gatherer
}

// NewHandler returns the handler of the server. The metrics endpoint is
// only mounted when prometheus is enabled and gatherer is not nil.
func NewHandler(cfg config.Config, reg *metrics.Registry, gatherer prometheus.Gatherer) http.Handler {
	h := Handler{
		cfg:      cfg,
		metrics:  reg,
		gatherer: gatherer,
	}
	var (
		mux   = http.NewServeMux()
		chain = alice.New(LogRequest, Instrument(reg))
	)
	mux.Handle("/render", chain.ThenFunc(h.render))
	mux.Handle("/health", chain.ThenFunc(h.health))
	if cfg.Prometheus.Enabled && gatherer != nil {
		mux.Handle("/metrics", alice.New(LogRequest).Then(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return mux
}

func (h Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{}`))
}

func (h Handler) render(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.HTTP.MaxBody))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := document.Decode(bytes.NewReader(body), document.WithDimension(h.cfg.Render.Width, h.cfg.Render.Height))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	n, err := document.Render(doc, &buf, log.Logger)
	h.metrics.ObserveRender(n, err)
	if err != nil {
		log.Info().Err(err).Str("title", doc.Title).Msg("document rejected")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", svgContentType)
	_, _ = w.Write(buf.Bytes())
}

// Run serves handler until ctx is done, then shuts the server down.
func Run(ctx context.Context, cfg config.HTTPServer, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}
