package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"TradeScope/internal/monitor"
	"TradeScope/internal/notifier"
)

// Scheduler drives analysis cycles and summary pushes on cron schedules.
type Scheduler struct {
	Cron     *cron.Cron
	Monitor  *monitor.Monitor
	Notifier notifier.Notifier
	Ctx      context.Context

	cycleRunning atomic.Bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, m *monitor.Monitor, n notifier.Notifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Monitor:  m,
		Notifier: n,
		Ctx:      ctx,
	}
}

// RegisterAll registers the analysis cycle and summary push tasks. An
// empty cycleCron skips cycle registration (the caller runs the monitor
// loop itself).
func (s *Scheduler) RegisterAll(cycleCron, summaryCron string) error {
	if cycleCron != "" {
		if _, err := s.Cron.AddFunc(cycleCron, s.cycleTask); err != nil {
			return fmt.Errorf("register cycle task: %w", err)
		}
	}
	if summaryCron != "" {
		if _, err := s.Cron.AddFunc(summaryCron, s.summaryTask); err != nil {
			return fmt.Errorf("register summary task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunCycleNow executes one analysis cycle immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunCycleNow() {
	s.cycleTask()
}

func (s *Scheduler) cycleTask() {
	// Cycles never overlap; a tick that fires mid-cycle is skipped.
	if !s.cycleRunning.CompareAndSwap(false, true) {
		log.Println("[WARN] previous cycle still running, skipping this tick")
		return
	}
	defer s.cycleRunning.Store(false)

	s.Monitor.RunAnalysisCycle(s.Ctx)
}

func (s *Scheduler) summaryTask() {
	log.Println("[INFO] pushing summary report")
	report := s.Monitor.GetSummaryReport()
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, notifier.FormatSummary(report), 3); err != nil {
		log.Printf("[ERROR] send summary: %v", err)
	}
}
