//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/infra/cyclequeue"
	"github.com/planvane/allocation-advisor/internal/observability"
	"github.com/planvane/allocation-advisor/internal/observability/logging"
)

func initCycleQueue(_ context.Context, cfg *config.Config) (cyclequeue.CycleQueue, func() error, error) {
	if cfg.Cycle.SchedulerURL == "" {
		slog.Warn("CYCLE_SCHEDULER_URL not set, automatic re-evaluation disabled")

		return nil, nil, nil
	}

	cq := cyclequeue.NewSchedulerClient(
		cfg.Cycle.SchedulerURL,
		cfg.Cycle.QueueName,
		cfg.Cycle.MaxRetries,
	)

	slog.Info("cycle queue initialized",
		slog.String("type", "scheduler_http"),
		slog.String("url", cfg.Cycle.SchedulerURL),
		slog.String("queue", cfg.Cycle.QueueName),
	)

	return cq, nil, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "allocation-advisor"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: logging.Module("allocation-advisor"),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
