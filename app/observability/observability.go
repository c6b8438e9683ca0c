// Package observability wires logging, metrics and tracing for the match tracker.
package observability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName      = "match-tracker"
	metricsNamespace = "match_tracker"
)

// Config selects observability behaviour.
type Config struct {
	Environment    string
	LogLevel       string
	MetricsAddress string
}

// Observability bundles the components every module receives.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Tracer   trace.Tracer
	Metrics  MatchMetrics
}

// Init builds the process-wide observability components. Tracing uses the global otel
// provider, which is a no-op until an exporter is installed.
func Init(cfg Config) Observability {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Observability{
		Logger:   NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel),
		Registry: registry,
		Tracer:   otel.Tracer(ServiceName),
		Metrics:  NewPrometheusMatchMetrics(registry),
	}
}

// ServeMetrics exposes the registry on addr until ctx is cancelled. An empty addr disables it.
func (o Observability) ServeMetrics(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{Registry: o.Registry}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	o.Logger.Info("Metrics server listening", slog.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
