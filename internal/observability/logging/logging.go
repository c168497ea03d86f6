package logging

import (
	"context"
	"log/slog"
	"os"
)

// Module labels log records with the subsystem that emitted them.
type Module string

// Environment selects the log output format.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// ServiceInfo identifies the running service in every log record.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type moduleKey struct{}

// WithModule attaches a module label to the context so the handler can emit
// it on every record logged under that context.
func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey{}, module)
}

func moduleFromContext(ctx context.Context) (Module, bool) {
	m, ok := ctx.Value(moduleKey{}).(Module)
	return m, ok
}

// NewLogger builds the service-wide logger. Dev environments get
// human-readable text output; everything else gets structured JSON suitable
// for log aggregation.
func NewLogger(env Environment, info ServiceInfo, level slog.Level, defaultModule Module, projectID string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var inner slog.Handler
	if env == EnvDev {
		inner = slog.NewTextHandler(os.Stdout, opts)
	} else {
		inner = slog.NewJSONHandler(os.Stdout, opts)
	}

	handler := &contextHandler{
		inner:         inner,
		defaultModule: defaultModule,
		projectID:     projectID,
	}

	logger := slog.New(handler)
	if info.Name != "" {
		attrs := []any{slog.String("service", info.Name)}
		if info.Version != "" {
			attrs = append(attrs, slog.String("version", info.Version))
		}
		if info.Revision != "" {
			attrs = append(attrs, slog.String("revision", info.Revision))
		}
		logger = logger.With(attrs...)
	}

	return logger
}

// contextHandler decorates records with the module label and, on GCP,
// the trace correlation attributes.
type contextHandler struct {
	inner         slog.Handler
	defaultModule Module
	projectID     string
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	module := h.defaultModule
	if m, ok := moduleFromContext(ctx); ok {
		module = m
	}
	if module != "" {
		record.AddAttrs(slog.String("module", string(module)))
	}

	if attrs := gcpTraceAttrs(ctx, h.projectID); len(attrs) > 0 {
		record.AddAttrs(attrs...)
	}

	return h.inner.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{
		inner:         h.inner.WithAttrs(attrs),
		defaultModule: h.defaultModule,
		projectID:     h.projectID,
	}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{
		inner:         h.inner.WithGroup(name),
		defaultModule: h.defaultModule,
		projectID:     h.projectID,
	}
}
