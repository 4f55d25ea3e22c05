package dashboard

import (
	"fmt"
	"math"
	"sort"

	"github.com/CRONANANI/ezana/backend/internal/allocation"
	"github.com/CRONANANI/ezana/backend/internal/contracts"
	"github.com/CRONANANI/ezana/backend/internal/scoringconfig"
)

// Alert kinds
const (
	AlertConcentration = "concentration"
	AlertHighRisk      = "high_risk"
	AlertLowHealth     = "low_health"
	AlertRebalance     = "rebalance"
	AlertDailyLoss     = "daily_loss"
)

// Insight kinds
const (
	InsightTopPerformer    = "top_performer"
	InsightDividendGrowth  = "dividend_growth"
	InsightDividendDecline = "dividend_decline"
	InsightDiversification = "diversification"
	InsightRiskChange      = "risk_change"
)

// buildAlerts derives alerts from a summary whose cards and health score are already set.
// Sorted critical first; order within a severity follows the checks below.
func buildAlerts(s *contracts.DashboardCardsSummary, snap *contracts.PortfolioSnapshot, cfg scoringconfig.Alerts, newID func() string) []contracts.Alert {
	alerts := make([]contracts.Alert, 0)
	add := func(a contracts.Alert) {
		a.ID = newID()
		alerts = append(alerts, a)
	}

	// === 1. Position concentration ===
	for _, w := range allocation.PositionWeights(snap.Holdings, snap.Cash) {
		if w.Weight*100 <= cfg.MaxPositionPct {
			break // sorted desc
		}
		add(contracts.Alert{
			Severity: contracts.SeverityWarning,
			Kind:     AlertConcentration,
			Ticker:   w.Key,
			Message:  fmt.Sprintf("%s is %.1f%% of the portfolio, above the %.0f%% limit", w.Key, w.Weight*100, cfg.MaxPositionPct),
		})
	}

	// === 2. Risk ===
	if s.RiskScore != nil && s.RiskScore.Level == contracts.RiskLevelHigh {
		add(contracts.Alert{
			Severity: contracts.SeverityCritical,
			Kind:     AlertHighRisk,
			Message:  fmt.Sprintf("Risk score %.1f is in the High band", s.RiskScore.Score),
		})
	}

	// === 3. Health ===
	switch s.HealthStatus {
	case contracts.HealthCritical:
		add(contracts.Alert{
			Severity: contracts.SeverityCritical,
			Kind:     AlertLowHealth,
			Message:  fmt.Sprintf("Portfolio health is Critical (%.0f)", s.PortfolioHealthScore),
		})
	case contracts.HealthPoor:
		add(contracts.Alert{
			Severity: contracts.SeverityWarning,
			Kind:     AlertLowHealth,
			Message:  fmt.Sprintf("Portfolio health is Poor (%.0f)", s.PortfolioHealthScore),
		})
	}

	// === 4. Rebalancing ===
	if s.AssetAllocation != nil {
		for _, rec := range s.AssetAllocation.Recommendations {
			add(contracts.Alert{
				Severity: contracts.SeverityInfo,
				Kind:     AlertRebalance,
				Category: rec.Category,
				Message:  fmt.Sprintf("%s is %+.1f points from target, %s %.2f", rec.Category, rec.Deviation, rec.Action, rec.Amount),
			})
		}
	}

	// === 5. Daily loss ===
	if s.TodaysPnl != nil && s.TodaysPnl.TodayPnlPercentage <= cfg.DailyLossPct {
		add(contracts.Alert{
			Severity: contracts.SeverityWarning,
			Kind:     AlertDailyLoss,
			Message:  fmt.Sprintf("Portfolio is down %.2f%% today", -s.TodaysPnl.TodayPnlPercentage),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.Rank() > alerts[j].Severity.Rank()
	})

	return alerts
}

// buildInsights derives informational observations from the cards
func buildInsights(s *contracts.DashboardCardsSummary, cfg scoringconfig.Alerts) []contracts.Insight {
	insights := make([]contracts.Insight, 0)

	if s.TodaysPnl != nil && s.TodaysPnl.BestPerformer != nil && s.TodaysPnl.BestPerformer.ChangePercentage > 0 {
		best := s.TodaysPnl.BestPerformer
		insights = append(insights, contracts.Insight{
			Kind:    InsightTopPerformer,
			Title:   "Top performer today",
			Message: fmt.Sprintf("%s is up %.2f%% today", best.Ticker, best.ChangePercentage),
		})
	}

	if d := s.MonthlyDividends; d != nil && d.LastMonth > 0 {
		switch {
		case d.ChangePercentage > 0:
			insights = append(insights, contracts.Insight{
				Kind:    InsightDividendGrowth,
				Title:   "Dividend income is growing",
				Message: fmt.Sprintf("Dividends are up %.1f%% on last month", d.ChangePercentage),
			})
		case d.ChangePercentage <= cfg.DividendDropPct:
			insights = append(insights, contracts.Insight{
				Kind:    InsightDividendDecline,
				Title:   "Dividend income dropped",
				Message: fmt.Sprintf("Dividends are down %.1f%% on last month", -d.ChangePercentage),
			})
		}
	}

	if a := s.AssetAllocation; a != nil && len(a.Items) > 0 {
		insights = append(insights, contracts.Insight{
			Kind:    InsightDiversification,
			Title:   "Diversification",
			Message: fmt.Sprintf("Diversification score %.0f carries %s risk", a.DiversificationScore, a.DiversificationLevel),
		})
	}

	if r := s.RiskScore; r != nil && r.ScoreChange() != 0 {
		direction := "down"
		if r.ScoreChange() > 0 {
			direction = "up"
		}
		insights = append(insights, contracts.Insight{
			Kind:    InsightRiskChange,
			Title:   "Risk score moved",
			Message: fmt.Sprintf("Risk score is %s %.1f to %.1f", direction, math.Abs(r.ScoreChange()), r.Score),
		})
	}

	return insights
}
