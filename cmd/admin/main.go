package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	"github.com/BruksfildServices01/barber-bot/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-bot/internal/db"
	"github.com/BruksfildServices01/barber-bot/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-bot/internal/infra/repository"
	"github.com/BruksfildServices01/barber-bot/internal/logging"
	"github.com/BruksfildServices01/barber-bot/internal/mq"
	"github.com/BruksfildServices01/barber-bot/internal/notify"
	"github.com/BruksfildServices01/barber-bot/internal/routes"
	"github.com/BruksfildServices01/barber-bot/internal/storage"
	"github.com/BruksfildServices01/barber-bot/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		slog.Error("admin server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	repo := infraRepo.NewAppointmentGormRepository(db)
	if err := handlers.BootstrapAdmin(ctx, infraRepo.NewAdminGormRepository(db), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer auditDispatcher.Close()

	deps := routes.Deps{Audit: auditDispatcher, Logger: logger}

	if cfg.S3Enabled() {
		deps.Images = storage.NewS3Uploader(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	}

	if cfg.BotToken != "" {
		api, err := telegram.NewBotAPI(cfg.BotToken)
		if err != nil {
			return err
		}
		client := telegram.NewClient(api)
		deps.Sender = client
		broadcaster := notify.NewBroadcaster(repo, client, logger, 0)
		if cfg.RabbitURL != "" {
			publisher, err := mq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
			if err != nil {
				return err
			}
			defer publisher.Close()
			broadcaster.WithEvents(publisher)
		}
		deps.Broadcaster = broadcaster
	}

	if deps.Images == nil || deps.Broadcaster == nil {
		logger.Warn("broadcast endpoint disabled: set S3_BUCKET and BOT_TOKEN to enable it")
	}

	r := gin.Default()

	routes.RegisterRoutes(r, db, cfg, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("admin server running", "addr", cfg.Addr(), "base_path", cfg.AdminBasePath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
