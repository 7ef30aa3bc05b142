package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"TradeScope/internal/alerts"
	"TradeScope/internal/collector"
	"TradeScope/internal/config"
	"TradeScope/internal/grading"
	"TradeScope/internal/model"
	"TradeScope/internal/monitor"
	"TradeScope/internal/notifier"
	"TradeScope/internal/recorder"
	"TradeScope/internal/scheduler"
	"TradeScope/internal/synthesis"
)

func main() {
	once := flag.Bool("once", false, "run one analysis cycle and exit")
	useCron := flag.Bool("cron", false, "drive cycles from the cron schedule instead of the interval loop")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TradeScope starting...")

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

	// Init market data provider
	provider := collector.NewYahooProvider(cfg.Proxy)
	log.Printf("[INFO] data source: %s", provider.Name())

	// Init grading engine
	rubric, err := grading.LoadRubric(cfg.Grading.RubricPath)
	if err != nil {
		log.Fatalf("[FATAL] load rubric: %v", err)
	}
	engine, err := grading.NewEngine(rubric)
	if err != nil {
		log.Fatalf("[FATAL] init grading engine: %v", err)
	}

	// Init report synthesizer
	gen := synthesis.NewOpenAIGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	if cfg.OpenAI.BaseURL != "" {
		gen.BaseURL = cfg.OpenAI.BaseURL
	}
	synth := synthesis.NewSynthesizer(gen, synthesis.LoadKnowhow(cfg.Grading.KnowhowPath))

	// Init Slack notifier
	var notify notifier.Notifier
	if cfg.Slack.Token != "" && cfg.Slack.Channel != "" {
		notify = notifier.NewSlackNotifier(cfg.Slack.Token, cfg.Slack.Channel, cfg.Proxy)
	} else {
		log.Println("[WARN] slack not configured, notifications disabled")
	}

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

	mon := monitor.New(monitor.Options{
		Symbols:          cfg.Watchlist.Symbols,
		SecurityType:     model.SecurityType(cfg.Watchlist.SecurityType),
		LookbackDays:     cfg.Watchlist.LookbackDays,
		UpdateInterval:   cfg.Monitor.UpdateInterval,
		InterSymbolDelay: cfg.Monitor.InterSymbolDelay,
		SummaryPath:      cfg.Monitor.SummaryPath,
	}, provider, provider, engine, synth,
		alerts.NewLog(cfg.Monitor.AlertLogPath), rec, notify)

	if *once {
		mon.RunAnalysisCycle(ctx)
		log.Println("[INFO] one-shot cycle complete")
		return
	}

	sched := scheduler.NewScheduler(ctx, mon, notify)
	cycleCron := ""
	if *useCron {
		cycleCron = cfg.Schedule.CycleCron
		if cycleCron == "" {
			log.Fatalf("[FATAL] -cron requires schedule.cycle_cron")
		}
	}
	if err := sched.RegisterAll(cycleCron, cfg.Schedule.SummaryCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if *useCron {
		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, executing cycle now")
			go sched.RunCycleNow()
		}
	} else {
		go mon.Start(ctx)
	}

	log.Println("[INFO] TradeScope is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TradeScope stopped")
}
