package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHolding_Value(t *testing.T) {
	h := Holding{Ticker: "AAPL", Shares: 10, Price: 190, CostBasis: 1500, PreviousClose: 200}

	assert.InDelta(t, 1900.0, h.Value(), 1e-9)
	assert.InDelta(t, 26.6666, h.ReturnPercentage(), 1e-3)
	assert.InDelta(t, -5.0, h.DayChangePercentage(), 1e-9)
}

func TestHolding_ZeroBases(t *testing.T) {
	h := Holding{Ticker: "GIFT", Shares: 1, Price: 10}

	assert.Equal(t, 0.0, h.ReturnPercentage())
	assert.Equal(t, 0.0, h.DayChangePercentage())
}

func TestHolding_Category(t *testing.T) {
	assert.Equal(t, "Bonds", Holding{AssetClass: "Bonds", Sector: "Government"}.Category())
	assert.Equal(t, "Technology", Holding{Sector: "Technology"}.Category())
	assert.Equal(t, "Other", Holding{}.Category())
}

func TestPortfolioSnapshot_TotalValue(t *testing.T) {
	snap := &PortfolioSnapshot{
		Cash: 500,
		Holdings: []Holding{
			{Ticker: "AAPL", Shares: 10, Price: 100},
			{Ticker: "BND", Shares: 20, Price: 50},
		},
	}

	assert.InDelta(t, 2500.0, snap.TotalValue(), 1e-9)

	h, ok := snap.GetHolding("BND")
	assert.True(t, ok)
	assert.Equal(t, 20.0, h.Shares)

	_, ok = snap.GetHolding("MSFT")
	assert.False(t, ok)
}

func TestRiskScoreCard_Helpers(t *testing.T) {
	card := &RiskScoreCard{
		Score:         4.5,
		PreviousScore: 5.0,
		Factors: []RiskFactor{
			{Name: "volatility", Weight: 0.6, Value: 5},
			{Name: "beta", Weight: 0.4, Value: 3.75},
		},
	}

	assert.InDelta(t, -0.5, card.ScoreChange(), 1e-9)
	assert.InDelta(t, 1.0, card.TotalFactorWeight(), 1e-9)
	assert.InDelta(t, 3.0, card.Factors[0].Contribution(), 1e-9)

	card.PreviousScore = 0
	assert.Equal(t, 0.0, card.ScoreChange())
}

func TestRiskLevel_Rank(t *testing.T) {
	levels := []RiskLevel{RiskLevelLow, RiskLevelModerateLow, RiskLevelModerate, RiskLevelModerateHigh, RiskLevelHigh}
	for i, l := range levels {
		assert.Equal(t, i, l.Rank(), string(l))
	}
	assert.Equal(t, -1, RiskLevel("Unknown").Rank())
}

func TestSummary_HasCriticalAlerts(t *testing.T) {
	s := &DashboardCardsSummary{Alerts: []Alert{{Severity: SeverityWarning}}}
	assert.False(t, s.HasCriticalAlerts())

	s.Alerts = append(s.Alerts, Alert{Severity: SeverityCritical})
	assert.True(t, s.HasCriticalAlerts())
}
