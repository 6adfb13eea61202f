package telemetry

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAPI logs reports through the default slog logger. The context is
// passed along so handlers that read trace ids from it can correlate a
// report with its request span.
type SlogAPI struct{}

// attrs turns report params into slog attributes, errors are logged under
// "err" (then "err.1", ...) and everything else under "params.<n>".
func (SlogAPI) attrs(id string, params []any) []any {
	out := []any{slog.String("id", id)}
	errCount := 0
	for i, p := range params {
		if err, ok := p.(error); ok {
			key := "err"
			if errCount > 0 {
				key = fmt.Sprintf("err.%d", errCount)
			}
			errCount++
			out = append(out, slog.String(key, err.Error()))
			continue
		}
		out = append(out, slog.Any(fmt.Sprintf("params.%d", i), p))
	}
	return out
}

func (s SlogAPI) ReportBroken(ctx context.Context, id string, params ...any) {
	slog.ErrorContext(ctx, "broken component", s.attrs(id, params)...)
}

func (s SlogAPI) ReportWarning(ctx context.Context, id string, params ...any) {
	slog.WarnContext(ctx, "warning", s.attrs(id, params)...)
}

func (s SlogAPI) ReportCount(ctx context.Context, id string, count int64) {
	slog.DebugContext(ctx, "count", "id", id, "n", count)
}
