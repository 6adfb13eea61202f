package main

import (
	"context"
	"log/slog"
	"os"
	"osucard-backend/lib/restyutil"
	"osucard-backend/lib/serviceutil"
	"osucard-backend/lib/telemetry"
)

// InitTelemetry sets up logging and, when a telemetry.json5 can be found,
// otel exporters. The returned output is non-nil only when verbose.
func InitTelemetry(ctx context.Context, verbose bool) restyutil.InstrumentOutput {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	tel, err := telemetry.SetupFromEnv(ctx, "osucard-server")
	if os.IsNotExist(err) {
		slog.WarnContext(ctx, "telemetry.json5 not found, traces and metrics will not be exported")
	} else if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	} else {
		go func() {
			<-ctx.Done()
			tel.Shutdown(context.Background())
		}()
		telemetry.InstrumentPerfStats(ctx)
	}

	if !verbose {
		return nil
	}

	out, err := restyutil.NewFilesystemOutput("<dev_state>/resty/server")
	if err != nil {
		slog.WarnContext(ctx, "http exchanges will not be dumped", "err", err)
		return nil
	}
	return out
}
