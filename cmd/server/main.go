package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"meeting-scheduler-api/internal/config"
	"meeting-scheduler-api/internal/handler"
	"meeting-scheduler-api/internal/health"
	"meeting-scheduler-api/internal/logger"
	"meeting-scheduler-api/internal/middleware"
	"meeting-scheduler-api/internal/store"
)

func main() {
	app := &cli.App{
		Name:  "meeting-scheduler-api",
		Usage: "Schedule, reschedule and cancel meetings over HTTP/JSON.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "HTTP listen port (overrides PORT)"},
			&cli.StringFlag{Name: "grpc-port", Usage: "gRPC health listen port (overrides GRPC_PORT)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (overrides LOG_LEVEL)"},
		},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.IsSet("port") {
		cfg.Port = c.String("port")
	}
	if c.IsSet("grpc-port") {
		cfg.GRPCPort = c.String("grpc-port")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	lg, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.New(store.SeedUsers())
	h := handler.New(st, lg)

	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rl.Sweep(ctx, time.Minute, 3*time.Minute)

	// grpc health
	hs := health.New(lg)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	go func() {
		lg.Info("grpc health listening", zap.String("addr", lis.Addr().String()))
		if err := hs.Serve(lis); err != nil {
			lg.Error("grpc", zap.Error(err))
		}
	}()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Server(rl),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		lg.Info("server running", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	hs.SetServing(true)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		hs.Stop()
		return fmt.Errorf("http: %w", err)
	}

	lg.Info("shutting down")
	hs.SetServing(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http shutdown", zap.Error(err))
	}
	hs.Stop()
	return nil
}
