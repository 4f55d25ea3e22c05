package contracts

import "time"

// =============================================================================
// Dashboard Cards
// =============================================================================
// All percentages on cards are whole percents (5 means 5%).

// PortfolioValueCard summarises the market value of a portfolio
type PortfolioValueCard struct {
	TotalValue          float64 `json:"total_value"`
	Cash                float64 `json:"cash"`
	CostBasis           float64 `json:"cost_basis"`
	TotalGain           float64 `json:"total_gain"`
	TotalGainPercentage float64 `json:"total_gain_percentage"`
	DayChange           float64 `json:"day_change"`
	DayChangePercentage float64 `json:"day_change_percentage"`
	HoldingsCount       int     `json:"holdings_count"`
}

// PerformerRef points at a single holding on a card
type PerformerRef struct {
	Ticker           string  `json:"ticker"`
	ChangePercentage float64 `json:"change_percentage"`
	Change           float64 `json:"change"`
}

// TodaysPnlCard is today's profit and loss
type TodaysPnlCard struct {
	TodayPnl           float64       `json:"today_pnl"`
	TodayPnlPercentage float64       `json:"today_pnl_percentage"`
	BestPerformer      *PerformerRef `json:"best_performer,omitempty"`
	WorstPerformer     *PerformerRef `json:"worst_performer,omitempty"`
}

// MonthlyDividendsCard compares this month's dividend income with last month's
type MonthlyDividendsCard struct {
	ThisMonth        float64 `json:"this_month"`
	LastMonth        float64 `json:"last_month"`
	ChangePercentage float64 `json:"change_percentage"`
	ProjectedAnnual  float64 `json:"projected_annual"`
	PaymentsCount    int     `json:"payments_count"`
}

// RiskFactor is one weighted component of the risk score
// Weight is 0..1, Value is 0..10. Weights across factors should sum to 1.
type RiskFactor struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
}

// Contribution returns the factor's share of the risk score
func (f RiskFactor) Contribution() float64 {
	return f.Weight * f.Value
}

// RiskScoreCard is the 0..10 risk score (lower is safer)
type RiskScoreCard struct {
	Score         float64      `json:"score"`
	PreviousScore float64      `json:"previous_score"`
	Level         RiskLevel    `json:"level"`
	Volatility    float64      `json:"volatility"` // annualised, whole percent
	Beta          float64      `json:"beta"`
	SharpeRatio   float64      `json:"sharpe_ratio"`
	VaR95         float64      `json:"var_95"`       // one-day historical VaR, loss positive, whole percent
	MaxDrawdown   float64      `json:"max_drawdown"` // whole percent, positive
	Factors       []RiskFactor `json:"factors"`
}

// ScoreChange returns the movement against the previous score
func (c *RiskScoreCard) ScoreChange() float64 {
	if c.PreviousScore == 0 {
		return 0
	}
	return c.Score - c.PreviousScore
}

// TotalFactorWeight returns the sum of factor weights
func (c *RiskScoreCard) TotalFactorWeight() float64 {
	total := 0.0
	for _, f := range c.Factors {
		total += f.Weight
	}
	return total
}

// AllocationItem is one category of the asset allocation
type AllocationItem struct {
	Category         string  `json:"category"`
	Value            float64 `json:"value"`
	Percentage       float64 `json:"percentage"`
	TargetPercentage float64 `json:"target_percentage"`
	Deviation        float64 `json:"deviation"` // Percentage - TargetPercentage
	NeedsRebalancing bool    `json:"needs_rebalancing"`
}

// RebalanceRecommendation suggests a trade bringing a category back to target
type RebalanceRecommendation struct {
	Category  string          `json:"category"`
	Action    RebalanceAction `json:"action"`
	Amount    float64         `json:"amount"`
	Deviation float64         `json:"deviation"`
}

// AssetAllocationCard is the allocation breakdown with diversification score
type AssetAllocationCard struct {
	Items                []AllocationItem          `json:"items"`
	DiversificationScore float64                   `json:"diversification_score"` // 0..100, higher is better
	DiversificationLevel RiskLevel                 `json:"diversification_level"`
	Recommendations      []RebalanceRecommendation `json:"recommendations"`
}

// GetItem finds an allocation item by category
func (c *AssetAllocationCard) GetItem(category string) (*AllocationItem, bool) {
	for i := range c.Items {
		if c.Items[i].Category == category {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// Insight is an informational observation shown on the dashboard
type Insight struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Alert is a condition the investor should act on
type Alert struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
	Ticker   string   `json:"ticker,omitempty"`
	Category string   `json:"category,omitempty"`
}

// DashboardCardsSummary aggregates every card plus the derived health score
// ⭐ SSOT: each card is optional; a nil card is "absent" for health scoring
type DashboardCardsSummary struct {
	PortfolioID      string                `json:"portfolio_id"`
	GeneratedAt      time.Time             `json:"generated_at"`
	PortfolioValue   *PortfolioValueCard   `json:"portfolio_value,omitempty"`
	TodaysPnl        *TodaysPnlCard        `json:"todays_pnl,omitempty"`
	MonthlyDividends *MonthlyDividendsCard `json:"monthly_dividends,omitempty"`
	RiskScore        *RiskScoreCard        `json:"risk_score,omitempty"`
	AssetAllocation  *AssetAllocationCard  `json:"asset_allocation,omitempty"`

	PortfolioHealthScore float64      `json:"portfolio_health_score"` // >= 0, not clamped above 100
	HealthStatus         HealthStatus `json:"health_status"`

	Insights []Insight `json:"insights"`
	Alerts   []Alert   `json:"alerts"`
}

// HasCriticalAlerts reports whether any alert is critical
func (s *DashboardCardsSummary) HasCriticalAlerts() bool {
	for _, a := range s.Alerts {
		if a.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
