package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"garagewatch-backend/lib/configutil"
	"garagewatch-backend/lib/scrapers/sjsuparking"
	"garagewatch-backend/lib/telemetry"
	"garagewatch-backend/lib/util/serviceutil"
	"garagewatch-backend/services/garagestatus"
)

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("garagestatus.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	config = config.withEnvFallback()

	t, err := telemetry.SetupFromEnv(ctx, "garagestatusd")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	var sink garagestatus.Sink
	supabase, err := garagestatus.NewSupabaseSink(config.Supabase)
	if err != nil {
		slog.Warn("supabase sink unavailable, runs will be rejected", "err", err)
	} else {
		sink = supabase
	}

	mux := http.NewServeMux()
	mux.Handle("/", garagestatus.Handler{
		Secret: config.Secret,
		Service: garagestatus.Service{
			Client: sjsuparking.NewClient(),
			Url:    sjsuparking.SourceUrl,
			Sink:   sink,
		},
	})
	go serviceutil.StartHttpServer(config.Port, mux)

	<-ctx.Done()
}
