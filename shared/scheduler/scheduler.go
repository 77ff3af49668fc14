package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"land-regen/shared/config"

	"github.com/robfig/cron/v3"
)

// Pinger checks backend reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// Scheduler probes the backend on a cron schedule and reports each outcome
type Scheduler struct {
	schedule string
	timeout  time.Duration
	pinger   Pinger
	onResult func(err error)
	cron     *cron.Cron
}

func New(cfg *config.Config, pinger Pinger, onResult func(err error)) *Scheduler {
	timeout := time.Duration(cfg.Backend.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	// cron.DefaultLogger writes to stdout, which the TUI owns
	logger := cron.PrintfLogger(log.Default())

	return &Scheduler{
		schedule: cfg.Monitoring.ProbeSchedule,
		timeout:  timeout,
		pinger:   pinger,
		onResult: onResult,
		// Prevent overlapping probes against a slow backend
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.SkipIfStillRunning(logger)),
		),
	}
}

// Start runs an immediate probe, then probes on schedule until ctx is cancelled
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("failed to add probe job: %w", err)
	}

	log.Printf("Backend probe scheduled: %s", s.schedule)
	s.RunOnce(ctx)
	s.cron.Start()

	<-ctx.Done()
	<-s.cron.Stop().Done()
	log.Printf("Backend probe stopped")
	return ctx.Err()
}

// RunOnce performs a single probe and hands the result to the callback
func (s *Scheduler) RunOnce(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.pinger.Ping(probeCtx)
	if err != nil {
		log.Printf("Backend probe failed: %v", err)
	}
	if s.onResult != nil {
		s.onResult(err)
	}
	return err
}
