package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
	"github.com/CRONANANI/ezana/backend/internal/scoring"
	"github.com/CRONANANI/ezana/backend/internal/scoringconfig"
)

var testAsOf = time.Date(2026, 3, 16, 21, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func testSnapshot(id string) *contracts.PortfolioSnapshot {
	return &contracts.PortfolioSnapshot{
		PortfolioID: id,
		AsOf:        testAsOf,
		Cash:        1000,
		Holdings: []contracts.Holding{
			{Ticker: "AAPL", Shares: 60, Price: 100, PreviousClose: 98, CostBasis: 5000, Sector: "Technology", AssetClass: "US Equity"},
			{Ticker: "BND", Shares: 20, Price: 100, PreviousClose: 100, CostBasis: 2000, Sector: "Fixed Income", AssetClass: "Bonds"},
			{Ticker: "VXUS", Shares: 20, Price: 50, PreviousClose: 51, CostBasis: 1000, Sector: "Broad Market", AssetClass: "International Equity"},
		},
	}
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder(scoringconfig.Default()).WithIDGenerator(sequentialIDs())
	s := b.Build(testSnapshot("p1"))

	assert.Equal(t, "p1", s.PortfolioID)
	assert.Equal(t, testAsOf, s.GeneratedAt)

	require.NotNil(t, s.PortfolioValue)
	assert.InDelta(t, 10000.0, s.PortfolioValue.TotalValue, 1e-9)
	require.NotNil(t, s.TodaysPnl)
	require.NotNil(t, s.AssetAllocation)
	require.NotNil(t, s.RiskScore)
	assert.Nil(t, s.MonthlyDividends)

	expected := scoring.CalculateHealth(scoring.InputsFromSummary(s))
	assert.Equal(t, expected.Score, s.PortfolioHealthScore)
	assert.Equal(t, expected.Status, s.HealthStatus)
	assert.Len(t, expected.Contributions, 3)

	// AAPL at 60% breaches the 20% position limit; US Equity and International need rebalancing
	require.Len(t, s.Alerts, 3)
	assert.Equal(t, AlertConcentration, s.Alerts[0].Kind)
	assert.Equal(t, contracts.SeverityWarning, s.Alerts[0].Severity)
	assert.Equal(t, "AAPL", s.Alerts[0].Ticker)
	assert.Equal(t, "id-1", s.Alerts[0].ID)
	assert.Equal(t, AlertRebalance, s.Alerts[1].Kind)
	assert.Equal(t, "US Equity", s.Alerts[1].Category)
	assert.Equal(t, AlertRebalance, s.Alerts[2].Kind)
	assert.Equal(t, "International Equity", s.Alerts[2].Category)

	kinds := make([]string, 0, len(s.Insights))
	for _, in := range s.Insights {
		kinds = append(kinds, in.Kind)
	}
	assert.Equal(t, []string{InsightTopPerformer, InsightDiversification}, kinds)
}

func TestBuilder_Build_EmptyPortfolio(t *testing.T) {
	b := NewBuilder(scoringconfig.Default()).WithIDGenerator(sequentialIDs())
	s := b.Build(&contracts.PortfolioSnapshot{PortfolioID: "empty", AsOf: testAsOf})

	require.NotNil(t, s.PortfolioValue)
	assert.Nil(t, s.TodaysPnl)
	assert.Nil(t, s.MonthlyDividends)
	assert.Nil(t, s.AssetAllocation)
	assert.Nil(t, s.RiskScore)

	assert.Equal(t, 0.0, s.PortfolioHealthScore)
	assert.Equal(t, contracts.HealthCritical, s.HealthStatus)

	require.Len(t, s.Alerts, 1)
	assert.Equal(t, AlertLowHealth, s.Alerts[0].Kind)
	assert.True(t, s.HasCriticalAlerts())
	assert.Empty(t, s.Insights)
}

func TestBuildAlerts_Ordering(t *testing.T) {
	cfg := scoringconfig.Default().Alerts
	s := &contracts.DashboardCardsSummary{
		RiskScore:            &contracts.RiskScoreCard{Score: 9.4, Level: contracts.RiskLevelHigh},
		TodaysPnl:            &contracts.TodaysPnlCard{TodayPnlPercentage: -4},
		PortfolioHealthScore: 30,
		HealthStatus:         contracts.HealthPoor,
	}

	alerts := buildAlerts(s, &contracts.PortfolioSnapshot{}, cfg, sequentialIDs())

	require.Len(t, alerts, 3)
	assert.Equal(t, AlertHighRisk, alerts[0].Kind)
	assert.Equal(t, contracts.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, AlertLowHealth, alerts[1].Kind)
	assert.Equal(t, AlertDailyLoss, alerts[2].Kind)
}

func TestBuildInsights_Dividends(t *testing.T) {
	cfg := scoringconfig.Default().Alerts

	growth := buildInsights(&contracts.DashboardCardsSummary{
		MonthlyDividends: &contracts.MonthlyDividendsCard{ThisMonth: 120, LastMonth: 100, ChangePercentage: 20},
	}, cfg)
	require.Len(t, growth, 1)
	assert.Equal(t, InsightDividendGrowth, growth[0].Kind)

	decline := buildInsights(&contracts.DashboardCardsSummary{
		MonthlyDividends: &contracts.MonthlyDividendsCard{ThisMonth: 50, LastMonth: 100, ChangePercentage: -50},
	}, cfg)
	require.Len(t, decline, 1)
	assert.Equal(t, InsightDividendDecline, decline[0].Kind)

	small := buildInsights(&contracts.DashboardCardsSummary{
		MonthlyDividends: &contracts.MonthlyDividendsCard{ThisMonth: 90, LastMonth: 100, ChangePercentage: -10},
	}, cfg)
	assert.Empty(t, small)
}

func TestBuildInsights_RiskChange(t *testing.T) {
	insights := buildInsights(&contracts.DashboardCardsSummary{
		RiskScore: &contracts.RiskScoreCard{Score: 4.2, PreviousScore: 5.0},
	}, scoringconfig.Default().Alerts)

	require.Len(t, insights, 1)
	assert.Equal(t, InsightRiskChange, insights[0].Kind)
	assert.Contains(t, insights[0].Message, "down 0.8")
}
