// Package observability provides structured logging and Prometheus metrics for lint runs.
//
// # Structured Logging
//
//	logger := observability.NewLogger(observability.ParseLogLevel("debug"), os.Stderr)
//	logger.WithField("file", path).Debug("protocol cache miss")
//
// Loggers travel through a context with WithLogger / FromContext. FromContext never
// returns nil; without a logger it returns one that discards output.
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.RecordRule("documentation_comments", elapsed, map[string]int{"warning": 2})
//
// A nil *Metrics is valid and records nothing, so callers need not guard every record.
// WriteTextfile dumps a registry in the text exposition format for node_exporter's
// textfile collector.
package observability
