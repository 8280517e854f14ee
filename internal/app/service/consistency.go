package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"classifieds-service/internal/domain"
)

// ConsistencyService runs the base/detail integrity scan. Ads and
// their detail rows are written without a shared transaction, so a
// crash between the two writes (or the base-only delete) can strand
// records; this scan is the cleanup path. It is operator-triggered
// and never runs on the read/write path.
type ConsistencyService struct {
	repo   domain.AdRepository
	logger *zap.Logger
}

// NewConsistencyService creates a new ConsistencyService.
func NewConsistencyService(repo domain.AdRepository, logger *zap.Logger) *ConsistencyService {
	return &ConsistencyService{
		repo:   repo,
		logger: logger,
	}
}

// ScanReport summarizes one consistency scan.
type ScanReport struct {
	Orphans  []domain.OrphanRecord `json:"orphans"`
	Purged   int64                 `json:"purged"`
	Duration time.Duration         `json:"duration"`
}

// Scan reports every orphaned record. With purge set, the orphans are
// deleted in the same pass.
func (s *ConsistencyService) Scan(ctx context.Context, purge bool) (*ScanReport, error) {
	start := time.Now()

	orphans, err := s.repo.FindOrphans(ctx)
	if err != nil {
		s.logger.Error("consistency scan failed", zap.Error(err))
		return nil, err
	}

	report := &ScanReport{Orphans: orphans}

	if purge && len(orphans) > 0 {
		purged, err := s.repo.PurgeOrphans(ctx, orphans)
		report.Purged = purged
		if err != nil {
			s.logger.Error("orphan purge failed",
				zap.Int64("purged_before_failure", purged),
				zap.Error(err),
			)
			report.Duration = time.Since(start)
			return report, err
		}
	}

	report.Duration = time.Since(start)

	s.logger.Info("consistency scan completed",
		zap.Int("orphans", len(orphans)),
		zap.Int64("purged", report.Purged),
		zap.Duration("duration", report.Duration),
	)

	return report, nil
}
