package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"anggotaku_backend/internals/configs"
	database "anggotaku_backend/internals/databases"
	"anggotaku_backend/internals/logging"
	"anggotaku_backend/internals/observability"
	routes "anggotaku_backend/internals/route"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Jalankan HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := configs.Load()
	if err != nil {
		return err
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer lg.Closer()
	log := lg.Base

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, cfg.Release)
	if err != nil {
		log.Warn("sentry init gagal, lanjut tanpa sentry", zap.Error(err))
	}
	defer flushSentry()

	// 🔌 DB connect + pool
	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	if err := database.TunePool(db, cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = database.Ping(ctx, db)
	cancel()
	if err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	if cfg.DBAutoMigrate {
		n, err := database.Migrate(context.Background(), db)
		if err != nil {
			return err
		}
		log.Info("✅ migrations applied", zap.Int("count", n))
	}

	app := routes.NewApp(cfg, db, log)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	errCh := make(chan error, 1)
	go func() {
		log.Info("✅ Listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	return app.ShutdownWithContext(shutdownCtx)
}
