package docs

var componentDescriptions = map[string]string{
	"prometheus.scrape":                   "Scrapes Prometheus metrics from the configured targets.",
	"prometheus.remote_write":             "Sends metrics to Prometheus-compatible remote write endpoints.",
	"prometheus.relabel":                  "Rewrites the label set of metrics passed to it.",
	"prometheus.exporter.unix":            "Exposes host-level metrics from a Unix system.",
	"prometheus.exporter.postgres":        "Collects metrics from a PostgreSQL database.",
	"prometheus.exporter.mysql":           "Collects metrics from a MySQL database.",
	"prometheus.exporter.redis":           "Collects metrics from a Redis server.",
	"prometheus.exporter.self":            "Exposes metrics about the collector itself.",
	"prometheus.operator.podmonitors":     "Discovers PodMonitor resources and scrapes their targets.",
	"prometheus.operator.servicemonitors": "Discovers ServiceMonitor resources and scrapes their targets.",
	"loki.source.file":                    "Tails log entries from files on disk.",
	"loki.source.kubernetes":              "Tails logs from Kubernetes containers.",
	"loki.source.journal":                 "Reads log entries from the systemd journal.",
	"loki.process":                        "Transforms log entries through a pipeline of stages.",
	"loki.relabel":                        "Rewrites the label set of log entries passed to it.",
	"loki.write":                          "Sends log entries to a Loki endpoint.",
	"local.file_match":                    "Discovers files on the local filesystem using glob patterns.",
	"local.file":                          "Exposes the contents of a local file.",
	"discovery.kubernetes":                "Discovers scrape targets from the Kubernetes API.",
	"discovery.relabel":                   "Rewrites the label set of discovered targets.",
	"discovery.docker":                    "Discovers running Docker containers.",
	"otelcol.receiver.otlp":               "Accepts OTLP telemetry over gRPC and HTTP.",
	"otelcol.processor.batch":             "Batches telemetry before forwarding it.",
	"otelcol.exporter.otlp":               "Sends telemetry to an OTLP gRPC endpoint.",
	"otelcol.exporter.otlphttp":           "Sends telemetry to an OTLP HTTP endpoint.",
	"pyroscope.scrape":                    "Collects profiles from the configured targets.",
	"pyroscope.write":                     "Sends profiles to a Pyroscope endpoint.",
	"remote.http":                         "Polls an HTTP endpoint and exposes the response body.",
}

// Describe returns the one-line description for a known component, or ""
func Describe(qualifiedName string) string {
	return componentDescriptions[qualifiedName]
}
