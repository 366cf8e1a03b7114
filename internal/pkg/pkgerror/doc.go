// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// It helps keep error handling consistent by:
//   - Providing sentinel errors that can be checked with errors.Is.
//   - Providing a structured Error type that carries a message, type, and code.
//     Ingestion failures (schema mismatch, file access, upload, ledger write)
//     are distinguished by code, and codes map to HTTP status codes at the edge.
package pkgerror
