// Package pkglog contains logging helpers used across the application.
//
// It is built around slog and keeps logs consistent by:
//   - Initializing a text (or JSON) handler with stable keys on stderr.
//   - Attaching the ingestion run ID (when present) to each log record.
package pkglog
