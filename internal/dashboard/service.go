package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
	"github.com/CRONANANI/ezana/backend/pkg/logger"
	"github.com/CRONANANI/ezana/backend/pkg/redis"
)

// Service loads snapshots, builds summaries and keeps the cache and store current
type Service struct {
	loader  contracts.SnapshotLoader
	store   contracts.SummaryStore
	cache   contracts.SummaryCache
	builder *Builder
	ttl     time.Duration
	logger  *logger.Logger
	now     func() time.Time
}

// NewService creates a new dashboard service
func NewService(
	loader contracts.SnapshotLoader,
	store contracts.SummaryStore,
	cache contracts.SummaryCache,
	builder *Builder,
	ttl time.Duration,
	log *logger.Logger,
) *Service {
	return &Service{
		loader:  loader,
		store:   store,
		cache:   cache,
		builder: builder,
		ttl:     ttl,
		logger:  log.WithComponent("dashboard"),
		now:     time.Now,
	}
}

// RefreshResult summarises one RefreshAll run
type RefreshResult struct {
	RunID     string        `json:"run_id"`
	Total     int           `json:"total"`
	Refreshed int           `json:"refreshed"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration"`
}

// GetSummary returns the cached summary, building it on a miss.
// Cache failures are logged and never fail the request.
func (s *Service) GetSummary(ctx context.Context, portfolioID string) (*contracts.DashboardCardsSummary, error) {
	key := redis.DashboardKey(portfolioID)

	var cached contracts.DashboardCardsSummary
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.WithPortfolio(portfolioID).WithError(err).Warn("Dashboard cache read failed")
	} else if hit {
		return &cached, nil
	}

	summary, err := s.build(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
		s.logger.WithPortfolio(portfolioID).WithError(err).Warn("Dashboard cache write failed")
	}

	return summary, nil
}

// Refresh rebuilds the summary, persists it and overwrites the cache
func (s *Service) Refresh(ctx context.Context, portfolioID string) (*contracts.DashboardCardsSummary, error) {
	summary, err := s.build(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveSummary(ctx, summary); err != nil {
		return nil, fmt.Errorf("save summary %s: %w", portfolioID, err)
	}

	if err := s.cache.Set(ctx, redis.DashboardKey(portfolioID), summary, s.ttl); err != nil {
		s.logger.WithPortfolio(portfolioID).WithError(err).Warn("Dashboard cache write failed")
	}

	s.logger.WithPortfolio(portfolioID).WithFields(map[string]interface{}{
		"health_score":  summary.PortfolioHealthScore,
		"health_status": summary.HealthStatus,
		"alerts":        len(summary.Alerts),
	}).Debug("Dashboard refreshed")

	return summary, nil
}

// RefreshAll refreshes every portfolio. A failing portfolio does not stop the run;
// the joined error carries every failure.
func (s *Service) RefreshAll(ctx context.Context) (*RefreshResult, error) {
	start := s.now()
	result := &RefreshResult{RunID: uuid.NewString()}
	log := s.logger.WithField("run_id", result.RunID)

	ids, err := s.loader.ListPortfolioIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}
	result.Total = len(ids)

	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if _, err := s.Refresh(ctx, id); err != nil {
			result.Failed++
			errs = append(errs, err)
			log.WithPortfolio(id).WithError(err).Error("Dashboard refresh failed")
			continue
		}
		result.Refreshed++
	}

	result.Duration = s.now().Sub(start)

	log.WithFields(map[string]interface{}{
		"total":     result.Total,
		"refreshed": result.Refreshed,
		"failed":    result.Failed,
		"duration":  result.Duration.String(),
	}).Info("Dashboard refresh run completed")

	return result, errors.Join(errs...)
}

// Invalidate drops the cached summary of a portfolio
func (s *Service) Invalidate(ctx context.Context, portfolioID string) error {
	return s.cache.Delete(ctx, redis.DashboardKey(portfolioID))
}

func (s *Service) build(ctx context.Context, portfolioID string) (*contracts.DashboardCardsSummary, error) {
	snap, err := s.loader.LoadSnapshot(ctx, portfolioID, s.now())
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", portfolioID, err)
	}
	return s.builder.Build(snap), nil
}
