package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"SectorSentinel/internal/calculator"
	"SectorSentinel/internal/collector"
	"SectorSentinel/internal/logger"
	"SectorSentinel/internal/notifier"
	"SectorSentinel/internal/recorder"
	"SectorSentinel/internal/store"
	"SectorSentinel/internal/viewmodel"
)

// ErrRunInProgress is returned by RunNow while another run is active.
var ErrRunInProgress = errors.New("collect run already in progress")

// Scheduler runs the snapshot collector on a cron schedule.
type Scheduler struct {
	Cron       *cron.Cron
	Collector  *collector.Collector
	Recorder   recorder.Recorder
	Notifier   *notifier.TelegramNotifier // nil disables notifications
	OutputFile string
	EventDate  string
	EventLabel string
	Ctx        context.Context

	running sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, rec recorder.Recorder, tn *notifier.TelegramNotifier, outputFile string) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds(), cron.WithLocation(calculator.Tokyo)),
		Collector:  col,
		Recorder:   rec,
		Notifier:   tn,
		OutputFile: outputFile,
		Ctx:        ctx,
	}
}

// Register adds the collect task under spec (six-field, seconds first).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.collectTask); err != nil {
		return fmt.Errorf("register collect task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Component("scheduler").Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Component("scheduler").Info("scheduler stopped")
}

// RunNow executes one collect run immediately (for --once / RUN_ON_START).
func (s *Scheduler) RunNow() error {
	if !s.running.TryLock() {
		return ErrRunInProgress
	}
	defer s.running.Unlock()
	return s.run()
}

func (s *Scheduler) collectTask() {
	if err := s.RunNow(); err != nil {
		logger.Component("scheduler").WithError(err).Error("collect run failed")
	}
}

func (s *Scheduler) run() error {
	log := logger.Component("scheduler")
	runID := uuid.NewString()
	log.WithField("run_id", runID).Info("running collect task")

	p, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		s.trySend(fmt.Sprintf("❌ スナップショット収集に失敗しました: %v", err))
		return fmt.Errorf("collect: %w", err)
	}
	if err := store.Save(s.OutputFile, p); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	log.WithField("run_id", runID).WithField("path", s.OutputFile).Info("snapshot written")

	if err := s.Recorder.RecordRun(&recorder.RunRecord{
		RunID:       runID,
		CollectedAt: time.Now(),
		OutputFile:  s.OutputFile,
		Payload:     p,
	}); err != nil {
		log.WithError(err).Error("record run")
	}

	if s.Notifier != nil {
		vm := viewmodel.Build(p, s.EventDate)
		s.trySend("✅ スナップショット更新\n\n" + notifier.FormatOverview(&vm, s.EventLabel))
	}
	return nil
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		logger.Component("scheduler").WithError(err).Error("send notification")
	}
}
