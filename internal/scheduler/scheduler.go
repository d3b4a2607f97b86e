package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"emission-estimator/internal/services"
)

// Scheduler refreshes corridor-region weather on a cron schedule so estimates
// usually hit the cache instead of waiting on BMKG.
type Scheduler struct {
	estimator *services.Estimator
	regions   []string
	spec      string
	logger    *zap.Logger

	cron *cron.Cron

	mu      sync.Mutex
	running bool
	lastRun time.Time
}

func NewScheduler(estimator *services.Estimator, regions []string, spec string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		estimator: estimator,
		regions:   regions,
		spec:      spec,
		logger:    logger,
		cron:      cron.New(),
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.refresh); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("Weather refresh scheduler started",
		zap.String("spec", s.spec),
		zap.Strings("regions", s.regions))

	// Warm the cache immediately instead of waiting for the first tick.
	go s.refresh()

	return nil
}

func (s *Scheduler) refresh() {
	s.mu.Lock()
	s.lastRun = time.Now()
	s.mu.Unlock()

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	snapshots := s.estimator.CorridorWeather(ctx, s.regions)

	mocked := 0
	for _, snap := range snapshots {
		if snap.IsMock {
			mocked++
		}
	}

	s.logger.Info("Corridor weather refreshed",
		zap.Int("regions", len(snapshots)),
		zap.Int("mocked", mocked),
		zap.Duration("duration", time.Since(start)))
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.logger.Info("Stopping weather refresh scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
}

func (s *Scheduler) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"running":  s.running,
		"spec":     s.spec,
		"last_run": s.lastRun,
		"regions":  s.regions,
	}
}
