package app

// defaults apply to keys the config file leaves unset, and to everything
// when there is no config file.
func defaults() map[string]any {
	return map[string]any{
		"tz":                       "UTC",
		"log.level":                "info",
		"log.format":               "text",
		"storage.provider":         "s3",
		"storage.bucket":           "qle-retail-pipeline",
		"storage.prefix":           "raw",
		"storage.region":           "us-east-2",
		"storage.force_path_style": false,
		"ledger.path":              "logs/ingestion_log.csv",
		"upload.max_retries":       0,
		"upload.base_backoff":      "200ms",
		"server.enabled":           false,
		"server.address":           ":8080",
	}
}
