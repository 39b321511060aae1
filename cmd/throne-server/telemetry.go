package main

import (
	"context"
	"log/slog"
	"throne-backend/lib/exchange"
	"throne-backend/lib/restyutil"
	scraper "throne-backend/lib/scrapers/throne"
	"throne-backend/lib/serviceutil"
	"throne-backend/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	err := telemetry.SetupFromEnv(ctx, "throne-server")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		telemetry.Shutdown(context.Background())
	}()
	telemetry.InstrumentPerfStats(ctx)

	if !verbose {
		return
	}

	scraper.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/throne"),
	)
	exchange.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/exchange"),
	)
}
