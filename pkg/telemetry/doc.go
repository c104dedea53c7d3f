// Package telemetry groups the observability concerns of the mirror proxy:
// structured logging with bot token redaction (logging) and Prometheus
// metrics (metrics).
package telemetry
