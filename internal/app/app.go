package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MikhailRaia/mini-shortener/internal/config"
	"github.com/MikhailRaia/mini-shortener/internal/handler"
	"github.com/MikhailRaia/mini-shortener/internal/logger"
	"github.com/MikhailRaia/mini-shortener/internal/metrics"
	"github.com/MikhailRaia/mini-shortener/internal/proto"
	"github.com/MikhailRaia/mini-shortener/internal/service"
	"github.com/MikhailRaia/mini-shortener/internal/storage/memory"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const readHeaderTimeout = 5 * time.Second

// App owns the registry and the servers exposing it.
type App struct {
	config     *config.Config
	handler    http.Handler
	grpcServer *grpc.Server
}

func NewApp(cfg *config.Config) *App {
	metrics.Init()

	storage := memory.NewStorage()

	urlService := service.NewURLService(storage, cfg.BaseURL)

	httpHandler := handler.NewHandler(urlService)

	a := &App{
		config:  cfg,
		handler: otelhttp.NewHandler(httpHandler.RegisterRoutes(), "shortener"),
	}

	if cfg.GRPCAddress != "" {
		a.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(logger.UnaryServerInterceptor))
		proto.RegisterShortenerServiceServer(a.grpcServer,
			handler.NewShortenerGRPCServer(urlService, handler.BaseURLFromAddress(cfg.ServerAddress)))
	}

	return a
}

// Run serves HTTP (and gRPC when configured) until ctx is cancelled or a
// server fails, then shuts everything down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	var grpcListener net.Listener
	if a.grpcServer != nil {
		lis, err := net.Listen("tcp", a.config.GRPCAddress)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", a.config.GRPCAddress, err)
		}
		grpcListener = lis
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", a.config.ServerAddress).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if grpcListener != nil {
		g.Go(func() error {
			log.Info().Str("address", a.config.GRPCAddress).Msg("Starting gRPC server")
			if err := a.grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
		defer cancel()

		if a.grpcServer != nil {
			a.grpcServer.GracefulStop()
		}

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
