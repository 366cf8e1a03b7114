package pkglog

import "context"

type runIDContextKey struct{}

// GetRunID returns the ingestion run ID stored in the context, or "" when
// the context does not belong to a run.
func GetRunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDContextKey{}).(string)
	return id
}

// SetRunID stores the ingestion run ID into the context so every log record
// emitted during the run can be correlated.
func SetRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDContextKey{}, runID)
}

type requestIDContextKey struct{}

// GetRequestID returns the HTTP request ID stored in the context.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

// SetRequestID stores the HTTP request ID into the context.
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}
