package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/MikhailRaia/mini-shortener/internal/app"
	"github.com/MikhailRaia/mini-shortener/internal/config"
	"github.com/MikhailRaia/mini-shortener/internal/logger"
	"github.com/MikhailRaia/mini-shortener/internal/tracing"
	"github.com/rs/zerolog/log"
)

const serviceName = "url-shortener"

var memprofile = flag.String("memprofile", "", "write memory profile to `file` on exit")

func writeHeapProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to create heap profile")
		return
	}
	defer f.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Error().Err(err).Msg("Failed to write heap profile")
	}
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.OTLPEndpoint, serviceName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	application := app.NewApp(cfg)
	runErr := application.Run(ctx)

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}
	cancel()

	if *memprofile != "" {
		writeHeapProfile(*memprofile)
	}

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("Error running application")
	}

	log.Info().Msg("Server stopped")
}
