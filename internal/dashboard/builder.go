package dashboard

import (
	"github.com/google/uuid"

	"github.com/CRONANANI/ezana/backend/internal/allocation"
	"github.com/CRONANANI/ezana/backend/internal/contracts"
	"github.com/CRONANANI/ezana/backend/internal/risk"
	"github.com/CRONANANI/ezana/backend/internal/scoring"
	"github.com/CRONANANI/ezana/backend/internal/scoringconfig"
)

// =============================================================================
// Builder - pure calculator
// =============================================================================

// Builder turns a portfolio snapshot into the dashboard summary.
// ⭐ SSOT: no I/O here, the Service loads and stores
type Builder struct {
	cfg        *scoringconfig.Config
	allocation *allocation.Engine
	risk       *risk.Engine
	newID      func() string
}

// NewBuilder creates a builder for a scoring profile
func NewBuilder(cfg *scoringconfig.Config) *Builder {
	return &Builder{
		cfg:        cfg,
		allocation: allocation.NewEngine(cfg),
		risk:       risk.NewEngine(cfg),
		newID:      uuid.NewString,
	}
}

// WithIDGenerator replaces the alert id generator
func (b *Builder) WithIDGenerator(fn func() string) *Builder {
	b.newID = fn
	return b
}

// Build computes every card, the health score, insights and alerts.
// Cards without inputs stay nil so the health score treats them as absent.
func (b *Builder) Build(snap *contracts.PortfolioSnapshot) *contracts.DashboardCardsSummary {
	s := &contracts.DashboardCardsSummary{
		PortfolioID: snap.PortfolioID,
		GeneratedAt: snap.AsOf,
	}

	s.PortfolioValue = BuildValueCard(snap.Holdings, snap.Cash)
	s.TodaysPnl = BuildPnlCard(snap.Holdings, snap.Cash)
	s.MonthlyDividends = BuildDividendsCard(snap.Dividends, snap.AsOf)

	if len(snap.Holdings) > 0 {
		s.AssetAllocation = b.allocation.Build(snap.Holdings, snap.Cash)
		s.RiskScore = b.risk.ScoreCard(snap)
	}

	scoring.ApplyHealthScore(s)

	s.Insights = buildInsights(s, b.cfg.Alerts)
	s.Alerts = buildAlerts(s, snap, b.cfg.Alerts, b.newID)

	return s
}
