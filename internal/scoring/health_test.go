package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
)

func ptr(v float64) *float64 { return &v }

func TestCalculateHealth_Example(t *testing.T) {
	// risk 4 -> 60, diversification 70, pnl +1 -> 82, dividends -2 -> 76
	result := CalculateHealth(HealthInputs{
		RiskScore:            ptr(4),
		DiversificationScore: ptr(70),
		TodayPnlPercentage:   ptr(1),
		DividendChange:       ptr(-2),
	})

	assert.InDelta(t, 72.0, result.Score, 1e-9)
	assert.Equal(t, contracts.HealthGood, result.Status)
	assert.InDelta(t, 60.0, result.Contributions["risk"], 1e-9)
	assert.InDelta(t, 82.0, result.Contributions["todays_pnl"], 1e-9)
	assert.InDelta(t, 76.0, result.Contributions["dividends"], 1e-9)
}

func TestCalculateHealth_AllAbsent(t *testing.T) {
	result := CalculateHealth(HealthInputs{})

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, contracts.HealthCritical, result.Status)
	assert.Empty(t, result.Contributions)
}

func TestCalculateHealth_ZeroRiskIsAbsent(t *testing.T) {
	result := CalculateHealth(HealthInputs{
		RiskScore:            ptr(0),
		DiversificationScore: ptr(50),
	})

	_, hasRisk := result.Contributions["risk"]
	assert.False(t, hasRisk, "risk score of exactly 0 must not be averaged")
	assert.InDelta(t, 50.0, result.Score, 1e-9)
	assert.Equal(t, contracts.HealthFair, result.Status)
}

func TestCalculateHealth_NotClampedAbove100(t *testing.T) {
	// +20% today -> 120, +50% dividends -> 180
	result := CalculateHealth(HealthInputs{
		TodayPnlPercentage: ptr(20),
		DividendChange:     ptr(50),
	})

	assert.InDelta(t, 150.0, result.Score, 1e-9)
	assert.Equal(t, contracts.HealthExcellent, result.Status)
}

func TestCalculateHealth_NeverNegative(t *testing.T) {
	tests := []struct {
		name string
		in   HealthInputs
	}{
		{"crash", HealthInputs{TodayPnlPercentage: ptr(-60)}},
		{"dividends cut", HealthInputs{DividendChange: ptr(-100)}},
		{"both", HealthInputs{TodayPnlPercentage: ptr(-45), DividendChange: ptr(-100), DiversificationScore: ptr(0)}},
		{"max risk", HealthInputs{RiskScore: ptr(10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateHealth(tt.in)
			assert.GreaterOrEqual(t, result.Score, 0.0)
			assert.Equal(t, contracts.HealthCritical, result.Status)
		})
	}
}

func TestPerformanceContribution(t *testing.T) {
	tests := []struct {
		pct  float64
		want float64
	}{
		{0, 80},
		{1, 82},
		{-2, 76},
		{-40, 0},
		{-41, 0},
		{10, 100},
		{15, 110},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, PerformanceContribution(tt.pct), 1e-9, "pct=%v", tt.pct)
	}
}

func TestApplyHealthScore(t *testing.T) {
	summary := &contracts.DashboardCardsSummary{
		PortfolioID:      "p-1",
		RiskScore:        &contracts.RiskScoreCard{Score: 4},
		AssetAllocation:  &contracts.AssetAllocationCard{DiversificationScore: 70},
		TodaysPnl:        &contracts.TodaysPnlCard{TodayPnlPercentage: 1},
		MonthlyDividends: &contracts.MonthlyDividendsCard{ChangePercentage: -2},
	}

	ApplyHealthScore(summary)

	assert.InDelta(t, 72.0, summary.PortfolioHealthScore, 1e-9)
	assert.Equal(t, contracts.HealthGood, summary.HealthStatus)
	assert.Equal(t, "p-1", summary.PortfolioID)
	assert.Equal(t, 4.0, summary.RiskScore.Score)
}

func TestApplyHealthScore_Nil(t *testing.T) {
	require.NotPanics(t, func() { ApplyHealthScore(nil) })
}

func TestInputsFromSummary_MissingCards(t *testing.T) {
	in := InputsFromSummary(&contracts.DashboardCardsSummary{
		TodaysPnl: &contracts.TodaysPnlCard{TodayPnlPercentage: 0},
	})

	assert.Nil(t, in.RiskScore)
	assert.Nil(t, in.DiversificationScore)
	assert.Nil(t, in.DividendChange)
	require.NotNil(t, in.TodayPnlPercentage)
	assert.Equal(t, 0.0, *in.TodayPnlPercentage)
}

func TestValidateInputs(t *testing.T) {
	tests := []struct {
		name    string
		in      HealthInputs
		wantErr bool
	}{
		{"all absent", HealthInputs{}, false},
		{"bounds", HealthInputs{RiskScore: ptr(10), DiversificationScore: ptr(100)}, false},
		{"zero risk", HealthInputs{RiskScore: ptr(0), DiversificationScore: ptr(0)}, false},
		{"large pnl", HealthInputs{TodayPnlPercentage: ptr(-300), DividendChange: ptr(500)}, false},
		{"risk above 10", HealthInputs{RiskScore: ptr(10.1)}, true},
		{"negative risk", HealthInputs{RiskScore: ptr(-0.5)}, true},
		{"negative diversification", HealthInputs{DiversificationScore: ptr(-50)}, true},
		{"diversification above 100", HealthInputs{DiversificationScore: ptr(101)}, true},
		{"nan risk", HealthInputs{RiskScore: ptr(math.NaN())}, true},
		{"infinite pnl", HealthInputs{TodayPnlPercentage: ptr(math.Inf(1))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputs(tt.in)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInputOutOfRange)
		})
	}
}

func TestValidateInputs_KeepsScoreNonNegative(t *testing.T) {
	for _, risk := range []float64{0, 2.5, 5, 7.5, 10} {
		for _, div := range []float64{0, 50, 100} {
			in := HealthInputs{RiskScore: ptr(risk), DiversificationScore: ptr(div), TodayPnlPercentage: ptr(-90)}
			require.NoError(t, ValidateInputs(in))
			assert.GreaterOrEqual(t, CalculateHealth(in).Score, 0.0)
		}
	}
}
