package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/neox5/ocimon/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter provides HTTP server for Prometheus metrics.
type PrometheusExporter struct {
	addr   string
	path   string
	server *http.Server
}

// NewPrometheusExporter creates a new Prometheus HTTP exporter serving reg.
func NewPrometheusExporter(
	port int,
	path string,
	reg *prometheus.Registry,
	internalMetricsEnabled bool,
) *PrometheusExporter {
	addr := fmt.Sprintf(":%d", port)

	return &PrometheusExporter{
		addr: addr,
		path: path,
		server: &http.Server{
			Addr:              addr,
			Handler:           newHandler(path, reg, internalMetricsEnabled),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// newHandler routes the metrics path, a health check and a landing page.
func newHandler(path string, reg *prometheus.Registry, internalMetricsEnabled bool) http.Handler {
	mux := http.NewServeMux()

	// Create base handler
	var handler http.Handler = promhttp.HandlerFor(
		reg,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
		},
	)

	// Conditionally wrap with instrumentation
	if internalMetricsEnabled {
		handler = promhttp.InstrumentMetricHandler(reg, handler)
		slog.Info("enabled prometheus internal metrics",
			"metrics", []string{
				"promhttp_metric_handler_requests_total",
				"promhttp_metric_handler_requests_in_flight",
			})
	}

	mux.Handle(path, loggingMiddleware(handler))
	mux.HandleFunc(config.HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if path != "/" {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprintf(w, "<html><head><title>ocimon</title></head><body><h1>ocimon</h1><p><a href=%q>Metrics</a></p></body></html>\n", path)
		})
	}

	return mux
}

// loggingMiddleware logs scrape requests when debug logging is enabled
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("prometheus scrape", "remote", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

// Handler returns the HTTP handler of the exporter.
func (e *PrometheusExporter) Handler() http.Handler {
	return e.server.Handler
}

// Start begins serving HTTP requests. Blocks until ctx is cancelled.
func (e *PrometheusExporter) Start(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		slog.Info("starting prometheus exporter", "addr", e.addr, "path", e.path)
		if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return e.Stop()
	}
}

// Stop gracefully stops the exporter.
func (e *PrometheusExporter) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down prometheus exporter")
	return e.server.Shutdown(ctx)
}
