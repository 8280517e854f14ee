// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"classifieds-service/internal/app/service"
	"classifieds-service/pkg/locker"
)

// WarmupScheduler periodically refreshes the pre-computed search pages
// with distributed locking so that only one instance warms the shared
// cache per interval.
type WarmupScheduler struct {
	adsService *service.AdsService
	interval   time.Duration
	timeout    time.Duration
	logger     *zap.Logger
	locker     locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WarmupConfig holds warm-up scheduler configuration.
type WarmupConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewWarmupScheduler creates a new WarmupScheduler with distributed
// locking support.
func NewWarmupScheduler(
	adsSvc *service.AdsService,
	cfg WarmupConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *WarmupScheduler {
	return &WarmupScheduler{
		adsService: adsSvc,
		interval:   cfg.Interval,
		timeout:    cfg.Timeout,
		logger:     logger,
		locker:     locker,
	}
}

// Start begins the background warm-up job.
func (s *WarmupScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting warm-up scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *WarmupScheduler) Stop() {
	s.logger.Info("stopping warm-up scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("warm-up scheduler stopped")
}

// run is the main loop of the scheduler.
func (s *WarmupScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeWarmup()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeWarmup()
		}
	}
}

// executeWarmup refreshes the warmed pages under the distributed lock.
//
// Locking behavior:
//   - Lock TTL = interval duration (cooldown model, not timeout)
//   - Success: lock held for the full interval so other instances skip
//   - Failure: lock released immediately to allow retry by another instance
func (s *WarmupScheduler) executeWarmup() {
	const lockKey = "warmup:scheduler:lock"

	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is warming the cache, skipping execution")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	warmed, err := s.adsService.WarmUp(ctx)
	if err != nil {
		// Release the lock so another instance can retry right away
		if relErr := s.locker.Release(s.ctx, lockKey); relErr != nil {
			s.logger.Error("failed to release lock after warm-up error", zap.Error(relErr))
		}
		s.logger.Warn("warm-up completed with errors, lock released for retry",
			zap.Int("pages_warmed", warmed),
			zap.Error(err),
		)

		return
	}

	// Lock expires naturally after the interval (cooldown period)
	s.logger.Info("warm-up completed, lock held for cooldown",
		zap.Int("pages_warmed", warmed),
		zap.Duration("cooldown", s.interval),
	)
}
