package contracts

import (
	"context"
	"time"
)

// SnapshotLoader loads the raw inputs of a dashboard
// ⭐ SSOT: persistence sits behind this interface, the scoring core never sees it
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, portfolioID string, asOf time.Time) (*PortfolioSnapshot, error)
	ListPortfolioIDs(ctx context.Context) ([]string, error)
}

// SummaryStore persists computed summaries so later runs know the previous risk score
type SummaryStore interface {
	SaveSummary(ctx context.Context, summary *DashboardCardsSummary) error
}

// SummaryCache caches computed summaries between requests
type SummaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
