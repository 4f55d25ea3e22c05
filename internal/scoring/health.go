package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
)

// =============================================================================
// Portfolio Health Score (pure)
// =============================================================================
// Percent inputs are whole percents (1.5 means 1.5%). The P&L and dividend
// contributions are floored at 0 but not capped, so the score can exceed 100.

const (
	performanceBaseline   = 80.0
	performanceMultiplier = 2.0
)

// HealthInputs are the four sub-scores feeding the health score.
// A nil field means the card was not available.
type HealthInputs struct {
	RiskScore            *float64 // 0..10, lower is better; exactly 0 counts as absent
	DiversificationScore *float64 // 0..100, higher is better
	TodayPnlPercentage   *float64
	DividendChange       *float64
}

// HealthResult is the blended score with the contributions that were averaged
type HealthResult struct {
	Score         float64                `json:"score"`
	Status        contracts.HealthStatus `json:"status"`
	Contributions map[string]float64     `json:"contributions"`
}

// ErrInputOutOfRange a sub-score is outside the scale it is defined on
var ErrInputOutOfRange = errors.New("health input out of range")

// ValidateInputs checks sub-scores that did not come from the builder.
// Out-of-range values would push the health score below 0.
func ValidateInputs(in HealthInputs) error {
	if in.RiskScore != nil && !within(*in.RiskScore, 0, 10) {
		return fmt.Errorf("%w: risk score %v not in [0, 10]", ErrInputOutOfRange, *in.RiskScore)
	}
	if in.DiversificationScore != nil && !within(*in.DiversificationScore, 0, 100) {
		return fmt.Errorf("%w: diversification score %v not in [0, 100]", ErrInputOutOfRange, *in.DiversificationScore)
	}
	if in.TodayPnlPercentage != nil && !finite(*in.TodayPnlPercentage) {
		return fmt.Errorf("%w: today's P&L percentage is not finite", ErrInputOutOfRange)
	}
	if in.DividendChange != nil && !finite(*in.DividendChange) {
		return fmt.Errorf("%w: dividend change is not finite", ErrInputOutOfRange)
	}
	return nil
}

func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// InputsFromSummary extracts the health inputs from the dashboard cards
func InputsFromSummary(s *contracts.DashboardCardsSummary) HealthInputs {
	var in HealthInputs
	if s == nil {
		return in
	}
	if s.RiskScore != nil {
		v := s.RiskScore.Score
		in.RiskScore = &v
	}
	if s.AssetAllocation != nil {
		v := s.AssetAllocation.DiversificationScore
		in.DiversificationScore = &v
	}
	if s.TodaysPnl != nil {
		v := s.TodaysPnl.TodayPnlPercentage
		in.TodayPnlPercentage = &v
	}
	if s.MonthlyDividends != nil {
		v := s.MonthlyDividends.ChangePercentage
		in.DividendChange = &v
	}
	return in
}

// CalculateHealth blends the available sub-scores into a health score.
// It never fails: with nothing to average the score is 0 (Critical).
func CalculateHealth(in HealthInputs) HealthResult {
	contributions := make(map[string]float64, 4)

	if in.RiskScore != nil && *in.RiskScore > 0 {
		contributions["risk"] = (10 - *in.RiskScore) * 10
	}
	if in.DiversificationScore != nil {
		contributions["diversification"] = *in.DiversificationScore
	}
	if in.TodayPnlPercentage != nil {
		contributions["todays_pnl"] = PerformanceContribution(*in.TodayPnlPercentage)
	}
	if in.DividendChange != nil {
		contributions["dividends"] = PerformanceContribution(*in.DividendChange)
	}

	score := 0.0
	if len(contributions) > 0 {
		var sum float64
		for _, v := range contributions {
			sum += v
		}
		score = sum / float64(len(contributions))
	}

	return HealthResult{
		Score:         score,
		Status:        HealthStatusFor(score),
		Contributions: contributions,
	}
}

// PerformanceContribution maps a percentage change onto the health scale:
// a baseline of 80 moved by twice the percentage, never below 0.
func PerformanceContribution(pct float64) float64 {
	v := performanceBaseline + pct*performanceMultiplier
	if v < 0 {
		return 0
	}
	return v
}

// ApplyHealthScore sets PortfolioHealthScore and HealthStatus on the summary.
// No other field is touched.
func ApplyHealthScore(s *contracts.DashboardCardsSummary) {
	if s == nil {
		return
	}
	result := CalculateHealth(InputsFromSummary(s))
	s.PortfolioHealthScore = result.Score
	s.HealthStatus = result.Status
}
