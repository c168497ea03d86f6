package observability

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/planvane/allocation-advisor/internal/observability/logging"
)

// Config describes the service identity and telemetry wiring.
type Config struct {
	ServiceInfo   logging.ServiceInfo
	Environment   logging.Environment
	GCPProjectID  string
	SamplingRate  float64
	LogLevel      slog.Level
	DefaultModule logging.Module
}

// Resources holds the initialized telemetry providers and their shutdown
// hooks.
type Resources struct {
	logger    *slog.Logger
	shutdowns []func(context.Context) error
}

func (r *Resources) Logger() *slog.Logger {
	return r.logger
}

// Shutdown flushes and stops every provider in reverse init order.
func (r *Resources) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(r.shutdowns) - 1; i >= 0; i-- {
		if err := r.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Init sets up logging, tracing and metrics for the process and installs
// the otel global providers. The exporter backends differ per platform
// build; see the platform-tagged files in this package.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceInfo.Name),
			semconv.ServiceVersion(cfg.ServiceInfo.Version),
			semconv.DeploymentEnvironment(string(cfg.Environment)),
		),
	)
	if err != nil {
		return nil, err
	}

	resources := &Resources{
		logger: logging.NewLogger(cfg.Environment, cfg.ServiceInfo, cfg.LogLevel, cfg.DefaultModule, cfg.GCPProjectID),
	}

	tp, err := newTracerProvider(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	if tp != nil {
		otel.SetTracerProvider(tp)
		resources.shutdowns = append(resources.shutdowns, tp.Shutdown)
	}

	mp, err := newMeterProvider(ctx, cfg, res)
	if err != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = resources.Shutdown(shutdownCtx)
		return nil, err
	}
	if mp != nil {
		otel.SetMeterProvider(mp)
		resources.shutdowns = append(resources.shutdowns, mp.Shutdown)
	}

	return resources, nil
}
