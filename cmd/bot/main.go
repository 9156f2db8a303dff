package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	"github.com/BruksfildServices01/barber-bot/internal/config"
	"github.com/BruksfildServices01/barber-bot/internal/conversation"
	dbpkg "github.com/BruksfildServices01/barber-bot/internal/db"
	infraRepo "github.com/BruksfildServices01/barber-bot/internal/infra/repository"
	"github.com/BruksfildServices01/barber-bot/internal/logging"
	"github.com/BruksfildServices01/barber-bot/internal/mq"
	"github.com/BruksfildServices01/barber-bot/internal/notify"
	"github.com/BruksfildServices01/barber-bot/internal/telegram"
	ucAppointment "github.com/BruksfildServices01/barber-bot/internal/usecase/appointment"
)

func main() {
	if err := run(); err != nil {
		slog.Error("bot stopped", "error", err)
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

	if cfg.AdminID == 0 {
		return conversation.ErrAdminNotConfigured
	}
	if cfg.BotToken == "" {
		return errors.New("BOT_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	loc := cfg.Location()
	repo := infraRepo.NewAppointmentGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer auditDispatcher.Close()

	var store conversation.Store = conversation.NewMemoryStore(cfg.SessionTTL, nil)
	if cfg.RedisURL != "" {
		rdb, err := conversation.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = conversation.NewRedisStore(rdb, cfg.SessionTTL, nil)
		logger.Info("sessions stored in redis")
	}

	api, err := telegram.NewBotAPI(cfg.BotToken)
	if err != nil {
		return err
	}
	client := telegram.NewClient(api)
	logger.Info("telegram connected", "bot", api.Self.UserName)

	var sms notify.SMSSender
	if cfg.TwilioEnabled() {
		sms = notify.NewTwilioSMS(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
	}

	broadcaster := notify.NewBroadcaster(repo, client, logger, 0)

	var events ucAppointment.EventPublisher
	if cfg.RabbitURL != "" {
		publisher, err := mq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			return err
		}
		defer publisher.Close()
		events = publisher
		broadcaster.WithEvents(publisher)
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	availability := ucAppointment.NewAvailability(repo, loc, nil)
	booking := ucAppointment.NewConfirmBooking(
		repo,
		auditDispatcher,
		notify.NewBookingNotifier(client, sms),
		events,
		loc,
		logger,
	)
	agenda := ucAppointment.NewDailyAgenda(repo, client, loc, nil, logger)

	controller := conversation.NewController(
		repo,
		availability,
		booking,
		broadcaster,
		store,
		conversation.Options{
			AdminID:       cfg.AdminID,
			AdminPanelURL: cfg.AdminPanelURL,
			WindowDays:    cfg.WindowDays,
			Reporter:      client,
		},
		logger,
	)

	// ======================================================
	// ⏰ DAILY AGENDA
	// ======================================================
	scheduler := cron.New(cron.WithLocation(loc))
	if _, err := scheduler.AddFunc(cfg.AgendaSchedule, func() {
		sent, err := agenda.Execute(ctx)
		if err != nil {
			logger.Error("daily agenda", "error", err)
			return
		}
		logger.Info("daily agenda sent", "barbers", sent)
	}); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	// ======================================================
	// 🤖 POLLING
	// ======================================================
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	logger.Info("bot polling started", "admin_id", cfg.AdminID, "window_days", cfg.WindowDays)
	err = telegram.NewBot(api, controller, logger).Run(ctx, updates)
	controller.Wait()
	return err
}
