package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bezzego/healthy-bot-AI/internal/admin"
	"github.com/bezzego/healthy-bot-AI/internal/checkin"
	"github.com/bezzego/healthy-bot-AI/internal/config"
	"github.com/bezzego/healthy-bot-AI/internal/nutrition"
	"github.com/bezzego/healthy-bot-AI/internal/outbox"
	persistence "github.com/bezzego/healthy-bot-AI/internal/persistence/postgres"
	"github.com/bezzego/healthy-bot-AI/internal/recognition"
	"github.com/bezzego/healthy-bot-AI/internal/report"
	"github.com/bezzego/healthy-bot-AI/internal/scheduler"
	"github.com/bezzego/healthy-bot-AI/internal/transport/telegram"
)

func main() {
	cfg := config.Load()
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := persistence.NewUserRepository(pool)
	questionnaires := persistence.NewQuestionnaireRepository(pool)
	daily := persistence.NewDailyRepository(pool)
	meals := persistence.NewNutritionRepository(pool)
	measurements := persistence.NewMeasurementRepository(pool)
	requests := persistence.NewAdminRequestRepository(pool)
	notifications := persistence.NewNotificationLogRepository(pool)

	producer := outbox.NewKafkaProducer(cfg.KafkaBrokers)
	defer producer.Close()

	dispatcher := outbox.NewDispatcher(pool, producer, cfg.OutboxPollInterval, cfg.OutboxBatchSize)
	go dispatcher.Start(ctx)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("failed to create telegram client: %v", err)
	}
	log.Printf("authorized as @%s", api.Self.UserName)

	sender := telegram.NewSender(api)
	alerter := admin.NewChatAlerter(cfg.AdminChatID, sender.SendText)

	recognizer := recognition.NewClient(recognition.Config{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.OpenAIModel,
		Timeout:     cfg.RecognitionTimeout,
		MinInterval: cfg.RecognitionMinGap,
	})

	checkins := checkin.NewService(daily, measurements, questionnaires, persistence.NewEventRecorder(pool))
	foods := nutrition.NewService(daily, meals)
	reports := report.NewService(daily, measurements)
	admins := admin.NewService(requests, alerter)

	bot := telegram.NewBot(api, users, questionnaires, checkins, foods, reports,
		admins, recognizer, alerter, cfg.AdminChatID)

	schedCfg := scheduler.DefaultConfig()
	schedCfg.SweepInterval = cfg.SweepInterval
	sched := scheduler.New(schedCfg, users, daily, notifications, reports, sender)
	sched.Start(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	opsServer := &http.Server{
		Addr:         cfg.OpsAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("ops server listening on %s", cfg.OpsAddress)
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ops server error: %v", err)
		}
	}()

	go bot.Run(ctx)
	log.Printf("bot started")

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	sched.Wait()
	dispatcher.Wait()
}
