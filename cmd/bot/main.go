package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/config"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/decision"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/inference"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/ledger"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/marketdata"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/metrics"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/store"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/trader"
	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandling(cancel)

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	setupLogging(cfg.LogLevel)
	log.Info().Str("symbol", cfg.Symbol).Msg("Starting trader executor")

	// 3. Analyzer knobs: documented defaults plus optional JSON overrides
	analyzerCfg, err := models.AnalyzerConfigFromJSON([]byte(cfg.AnalyzerOverrides))
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid analyzer configuration")
	}

	// 4. Collaborators
	market := marketdata.NewClient(marketdata.ClientOptions{
		BaseURL:        cfg.MarketDataURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})

	infer := inference.NewClient(inference.ClientOptions{
		URL:            cfg.InferenceURL,
		APIKey:         cfg.InferenceAPIKey,
		Model:          cfg.InferenceModel,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})

	var decisionStore trader.Store
	db, err := store.New(store.ConnectionParams{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Database unavailable, running without persistence")
	} else {
		defer db.Close()
		decisionStore = db
	}

	validator := decision.NewValidator()
	if cfg.LenientValidate {
		validator = decision.NewLenientValidator()
	}

	go func() {
		if err := metrics.Serve(cfg.MetricsAddr); err != nil {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	// 5. Wire the loop
	bot := trader.New(trader.Options{
		Pair: models.TokenPair{
			Symbol:        cfg.Symbol,
			StableToken:   cfg.StableToken,
			VolatileToken: cfg.VolatileToken,
		},
		Analyzer:  analyzerCfg,
		Market:    market,
		Inference: infer,
		Executor:  ledger.NewLogExecutor(),
		Store:     decisionStore,
		Validator: validator,
		Cooldown:  time.Duration(cfg.CooldownSeconds) * time.Second,
	})

	watcher := ledger.NewSpikeWatcher(cfg.LedgerWSURL)
	bot.Run(ctx, watcher.Watch(ctx))

	log.Info().Msg("Trader stopped")
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}
