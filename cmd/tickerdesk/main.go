package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TickerDesk/internal/api"
	"TickerDesk/internal/config"
	"TickerDesk/internal/llm"
	"TickerDesk/internal/pipeline"
	"TickerDesk/internal/quote"
	"TickerDesk/internal/recorder"
	"TickerDesk/internal/refresh"
	"TickerDesk/internal/resolver"
	"TickerDesk/internal/table"
	"TickerDesk/internal/watchlist"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TickerDesk starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init quote source and adapter
	srcOpts := []quote.YahooOption{quote.WithRateLimit(cfg.Provider.RatePerSec)}
	if cfg.Provider.BaseURL != "" {
		srcOpts = append(srcOpts, quote.WithBaseURL(cfg.Provider.BaseURL))
	}
	src := quote.NewYahooSource(cfg.Proxy, srcOpts...)
	log.Printf("[INFO] quote source: %s", src.Name())
	quotes := quote.NewAdapter(src)

	// Init narrative completer
	timeout, err := cfg.AnthropicTimeout()
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	completer, err := llm.NewClaude(cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens, timeout)
	if err != nil {
		log.Fatalf("[FATAL] init completer: %v", err)
	}

	// Init resolver and pipeline
	res := resolver.New(completer, src)
	pipe := pipeline.New(res, quotes, completer, cfg.Chart.Dir)

	// Init watchlist store and table builder
	store := watchlist.NewStore(cfg.Watchlist.File)
	builder := table.NewBuilder(quotes, cfg.Refresh.Workers)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init refresh scheduler
	ref := refresh.NewRefresher(ctx, store, builder, rec)
	if cfg.Refresh.Cron != "" {
		if err := ref.Register(cfg.Refresh.Cron); err != nil {
			log.Fatalf("[FATAL] register refresh task: %v", err)
		}
		ref.Start()
		defer ref.Stop()
	}

	// HTTP server
	handler := api.NewHandler(pipe, res, store, builder, rec)
	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.SetupRoutes(handler, cfg.Chart.Dir),
	}
	go func() {
		log.Printf("[INFO] http server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Optional: refresh immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing watchlist now")
		go ref.RunNow()
	}

	log.Println("[INFO] TickerDesk is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] TickerDesk stopped")
}
