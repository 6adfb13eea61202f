package main

import (
	"flag"
	"log/slog"
	"osucard-backend/internal/service"
	"osucard-backend/lib/configutil"
	"osucard-backend/lib/scrapers/osu"
	"osucard-backend/lib/scrapers/osuskills"
	"osucard-backend/lib/serviceutil"
	"osucard-backend/lib/skillstore"
	"osucard-backend/lib/skillstore/db"
	"time"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	configPath := flag.String("config", "config.json5", "Path to the server configuration.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	instrumentOutput := InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfigWithDefaults(*configPath, defaultConfig)
	if err != nil {
		serviceutil.Fatal("read config", err)
	}

	upstreamTimeout := time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second

	osuClient, err := osu.NewClient(osu.ClientOptions{
		FixtureDir:       cfg.FixtureDir,
		Timeout:          upstreamTimeout,
		InstrumentOutput: instrumentOutput,
	})
	if err != nil {
		serviceutil.Fatal("init osu client", err)
	}
	skillsClient, err := osuskills.NewClient(osuskills.ClientOptions{
		BaseUrl:          cfg.OsuskillsUrl,
		CloudflareBypass: cfg.CloudflareBypass,
		Timeout:          upstreamTimeout,
		InstrumentOutput: instrumentOutput,
	})
	if err != nil {
		serviceutil.Fatal("init osuskills client", err)
	}

	options := []service.Option{
		service.WithRequestTimeout(time.Duration(cfg.RequestTimeoutSeconds) * time.Second),
	}
	if cfg.Store.Enabled() {
		database, err := cfg.Store.OpenDB(db.Schema)
		if err != nil {
			serviceutil.Fatal("open skill store", err)
		}
		defer database.Close()
		options = append(options, service.WithStore(skillstore.NewStore(database)))
		slog.Info("recording skill snapshots", "file", cfg.Store.File, "remote", cfg.Store.Url != "")
	}

	svc := service.NewService(osuClient, skillsClient, options...)
	serviceutil.StartHttpServer(ctx, cfg.Port, svc.Handler())
}
