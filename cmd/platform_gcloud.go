//go:build gcloud

package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/infra/cyclequeue"
	"github.com/planvane/allocation-advisor/internal/observability"
	"github.com/planvane/allocation-advisor/internal/observability/logging"
)

func initCycleQueue(ctx context.Context, cfg *config.Config) (cyclequeue.CycleQueue, func() error, error) {
	cloudTasksClient, err := cyclequeue.NewCloudTasksClient(ctx, cyclequeue.CloudTasksConfig{
		ProjectID:  cfg.Cycle.GCloudProjectID,
		LocationID: cfg.Cycle.GCloudLocationID,
		QueueID:    cfg.Cycle.GCloudQueueID,
		TargetURL:  cfg.Cycle.GCloudTargetURL,
		MaxRetries: cfg.Cycle.MaxRetries,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("cycle queue initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.Cycle.GCloudProjectID),
		slog.String("location", cfg.Cycle.GCloudLocationID),
		slog.String("queue", cfg.Cycle.GCloudQueueID),
	)

	cleanup := func() error {
		if err := cloudTasksClient.Close(); err != nil {
			slog.Warn("failed to close cloud tasks client", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return cloudTasksClient, cleanup, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "allocation-advisor"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	samplingRate := 0.1
	if v := os.Getenv("TRACE_SAMPLING_RATE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			samplingRate = parsed
		}
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  projectID,
		SamplingRate:  samplingRate,
		DefaultModule: logging.Module("allocation-advisor"),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
