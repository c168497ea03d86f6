package config

import (
	"os"
	"strconv"
)

const (
	cycleSchedulerURLEnv  = "CYCLE_SCHEDULER_URL"
	cycleQueueNameEnv     = "CYCLE_QUEUE_NAME"
	cycleIntervalEnv      = "CYCLE_INTERVAL_MINUTES"
	cycleMaxRetriesEnv    = "CYCLE_MAX_RETRIES"
	defaultCycleQueueName = "planning-cycles"
	defaultCycleInterval  = 60
	defaultCycleRetries   = 3
)

// CycleConfig drives scheduling of the next planning cycle after a
// recommendation run.
type CycleConfig struct {
	SchedulerURL    string
	QueueName       string
	IntervalMinutes int

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	MaxRetries int
}

func LoadCycleConfig() CycleConfig {
	queueName := os.Getenv(cycleQueueNameEnv)
	if queueName == "" {
		queueName = defaultCycleQueueName
	}

	interval := defaultCycleInterval
	if v := os.Getenv(cycleIntervalEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	maxRetries := defaultCycleRetries
	if v := os.Getenv(cycleMaxRetriesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	return CycleConfig{
		SchedulerURL:    os.Getenv(cycleSchedulerURLEnv),
		QueueName:       queueName,
		IntervalMinutes: interval,

		GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
		GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
		GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
		GCloudTargetURL:  os.Getenv("GCLOUD_TARGET_URL"),

		MaxRetries: maxRetries,
	}
}
