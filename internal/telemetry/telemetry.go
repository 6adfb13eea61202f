package telemetry

import (
	"context"
	"fmt"
)

// API reports the health of a running component. Handlers receive one so
// tests can assert on what was reported.
type API interface {
	// ReportBroken reports a failure on our side that should be fixed, ex.
	// a snapshot that could not be written is reported as `store.push`.
	//
	// ids are lowercase, dots separate a component from the failing step.
	ReportBroken(ctx context.Context, id string, params ...any)

	// ReportWarning reports an upstream or client problem that is worth
	// looking at but is not ours to fix, ex. osuskills changing its markup.
	ReportWarning(ctx context.Context, id string, params ...any)

	// ReportCount reports the size of something observed while handling a
	// request, these are data points and should not be summed.
	ReportCount(ctx context.Context, id string, count int64)
}

// ScopedAPI prefixes every id with "<namespace>:".
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) scope(id string) string {
	return fmt.Sprintf("%s:%s", s.namespace, id)
}

func (s ScopedAPI) ReportBroken(ctx context.Context, id string, params ...any) {
	s.inner.ReportBroken(ctx, s.scope(id), params...)
}

func (s ScopedAPI) ReportWarning(ctx context.Context, id string, params ...any) {
	s.inner.ReportWarning(ctx, s.scope(id), params...)
}

func (s ScopedAPI) ReportCount(ctx context.Context, id string, count int64) {
	s.inner.ReportCount(ctx, s.scope(id), count)
}
