package runrecorder

import (
	"os"
)

type Config struct {
	Disabled bool

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	BigQueryProjectID       string
	BigQueryDataset         string
	BigQueryTable           string
	BigQueryCredentialsFile string
}

func LoadConfig() *Config {
	cfg := &Config{
		Disabled: os.Getenv("RUN_ANALYTICS_DISABLED") == "true",

		InfluxDBURL:    getEnvOrDefault("INFLUXDB_URL", "http://localhost:8086"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: getEnvOrDefault("INFLUXDB_BUCKET", "advisor_runs"),

		BigQueryProjectID:       getEnvOrDefault("BIGQUERY_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		BigQueryDataset:         getEnvOrDefault("BIGQUERY_DATASET", "advisor_runs"),
		BigQueryTable:           getEnvOrDefault("BIGQUERY_TABLE", "advisor_runs"),
		BigQueryCredentialsFile: os.Getenv("BIGQUERY_CREDENTIALS_FILE"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
