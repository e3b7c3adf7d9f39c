package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"MarketAdvisor/internal/advisor"
	"MarketAdvisor/internal/api"
	"MarketAdvisor/internal/catalog"
	"MarketAdvisor/internal/collector"
	"MarketAdvisor/internal/config"
	"MarketAdvisor/internal/logging"
	"MarketAdvisor/internal/metrics"
	"MarketAdvisor/internal/notifier"
	"MarketAdvisor/internal/recorder"
	"MarketAdvisor/internal/scheduler"
	"MarketAdvisor/internal/store"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		boot := logging.New("market-advisor", "info")
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logging.New(cfg.App.Name, cfg.App.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Str("config", cfgPath).Msg("market advisor starting")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Market data store
	st, err := store.Open(ctx, cfg.Database.Driver, storeDSN(cfg))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("open store")
	}
	defer st.Close()

	// Advice history
	var rec recorder.Recorder
	if cfg.Database.HistoryPath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.HistoryPath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := advisor.New(
		catalog.NewSymbols(cfg.Symbols),
		st,
		advisor.WithRecorder(rec),
		advisor.WithMetrics(m),
		advisor.WithLogger(log.With().Str("component", "advisor").Logger()),
	)

	// Ingestion
	fetcher := newFetcher(cfg)
	log.Info().Str("provider", fetcher.Name()).Msg("data source selected")
	col := collector.NewCollector(fetcher, st, cfg.DataSource.HistoryDays, log.With().Str("component", "collector").Logger())

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log.With().Str("component", "telegram").Logger())

	sched := scheduler.NewScheduler(ctx, col, svc, tn, rec, log.With().Str("component", "scheduler").Logger())
	if err := sched.RegisterAll(cfg.Schedule.IngestCron, cfg.Schedule.AdviceCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if cfg.TelegramEnabled() {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, ingesting now")
		go sched.RunIngestNow()
	}

	srv := api.NewAPIHandler(svc, m.Handler(), log.With().Str("component", "http").Logger()).NewServer(cfg.App.HTTPAddr)
	go func() {
		log.Info().Str("addr", cfg.App.HTTPAddr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("market advisor stopped")
}

// storeDSN picks the connection string for the configured driver.
func storeDSN(cfg *config.Config) string {
	if cfg.Database.Driver == "postgres" {
		return cfg.Database.PostgresURL
	}
	return cfg.Database.SQLitePath
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	if cfg.DataSource.Provider == "mock" {
		return &collector.MockFetcher{Price: 100}
	}
	return collector.NewYahooFetcher(cfg.Proxy)
}
