package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/CRONANANI/ezana/backend/internal/allocation"
	"github.com/CRONANANI/ezana/backend/internal/contracts"
	"github.com/CRONANANI/ezana/backend/internal/scoring"
	"github.com/CRONANANI/ezana/backend/internal/scoringconfig"
)

// ErrInsufficientData fewer returns than the configured minimum
var ErrInsufficientData = errors.New("insufficient data")

// =============================================================================
// Engine - pure calculator
// =============================================================================

// Engine risk engine (pure calculator)
// ⭐ SSOT: the dashboard layer gathers inputs, this package only computes
type Engine struct {
	cfg scoringconfig.Risk
}

// NewEngine creates a new risk engine
func NewEngine(cfg *scoringconfig.Config) *Engine {
	return &Engine{cfg: cfg.Risk}
}

// Metrics computes market risk metrics over the lookback window.
// Beta is only computed when enough dates align with the benchmark.
func (e *Engine) Metrics(values, benchmark []contracts.ValuePoint) (*Metrics, error) {
	points := Lookback(values, e.cfg.LookbackDays)
	returns := Returns(points)

	// Fail-closed: minimum sample count
	if len(returns) < e.cfg.MinSamples || len(returns) < 2 {
		return nil, fmt.Errorf("%w: got %d returns, need %d",
			ErrInsufficientData, len(returns), e.cfg.MinSamples)
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, fmt.Errorf("volatility: %w", err)
	}

	m := &Metrics{
		Samples:      len(returns),
		Volatility:   stdev * math.Sqrt(TradingDaysPerYear),
		AnnualReturn: AnnualizedReturn(returns),
		MaxDrawdown:  MaxDrawdown(points),
		VaR95:        CalculateVaR(returns, 0.95),
		Beta:         1,
	}

	if m.Volatility > 0 {
		m.Sharpe = (m.AnnualReturn - e.cfg.RiskFreeRate) / m.Volatility
	}

	pr, br := AlignedReturns(points, Lookback(benchmark, e.cfg.LookbackDays))
	if len(br) >= e.cfg.MinSamples && len(br) >= 2 {
		beta, err := Beta(pr, br)
		if err != nil {
			return nil, fmt.Errorf("beta: %w", err)
		}
		m.Beta = beta
		m.BenchmarkSamples = len(br)
	}

	return m, nil
}

// Beta covariance(portfolio, benchmark) / variance(benchmark), 0 for a flat benchmark
func Beta(portfolio, benchmark []float64) (float64, error) {
	cov, err := stats.Covariance(portfolio, benchmark)
	if err != nil {
		return 0, err
	}
	variance, err := stats.SampleVariance(benchmark)
	if err != nil {
		return 0, err
	}
	if variance == 0 {
		return 0, nil
	}
	return cov / variance, nil
}

// =============================================================================
// Risk Score Card
// =============================================================================

// ScoreCard builds the 0..10 risk card of a snapshot.
// Short history never fails: market factors fall back to a neutral value.
func (e *Engine) ScoreCard(snap *contracts.PortfolioSnapshot) *contracts.RiskScoreCard {
	card := &contracts.RiskScoreCard{
		PreviousScore: snap.PreviousRiskScore,
	}

	volValue, betaValue, ddValue := neutralFactorValue, neutralFactorValue, neutralFactorValue

	if m, err := e.Metrics(snap.ValueHistory, snap.BenchmarkHistory); err == nil {
		card.Volatility = m.Volatility * 100
		card.SharpeRatio = m.Sharpe
		card.VaR95 = m.VaR95.VaR * 100
		card.MaxDrawdown = m.MaxDrawdown * 100

		volValue = factorValue(card.Volatility / 4) // 40% vol → 10
		ddValue = factorValue(card.MaxDrawdown / 3) // 30% drawdown → 10
		if m.HasBeta() {
			card.Beta = m.Beta
			betaValue = factorValue(m.Beta * 5) // beta 2 → 10
		}
	}

	maxPosition := allocation.MaxWeight(allocation.PositionWeights(snap.Holdings, snap.Cash)) * 100
	maxSector := allocation.MaxWeight(allocation.SectorWeights(snap.Holdings)) * 100

	w := e.cfg.Weights
	card.Factors = []contracts.RiskFactor{
		{Name: FactorVolatility, Weight: w.Volatility, Value: volValue},
		{Name: FactorBeta, Weight: w.Beta, Value: betaValue},
		{Name: FactorConcentration, Weight: w.Concentration, Value: factorValue(maxPosition / 5)},           // 50% position → 10
		{Name: FactorSectorConcentration, Weight: w.SectorConcentration, Value: factorValue(maxSector / 8)}, // 80% sector → 10
		{Name: FactorDrawdown, Weight: w.Drawdown, Value: ddValue},
	}

	card.Score = Score(card.Factors)
	card.Level = scoring.RiskLevelFromScore(card.Score)

	return card
}

// Score weighted sum of factors, one decimal, clamped to 0..10
func Score(factors []contracts.RiskFactor) float64 {
	var sum float64
	for _, f := range factors {
		sum += f.Contribution()
	}
	sum = math.Round(sum*10) / 10
	return math.Max(0, math.Min(maxFactorValue, sum))
}

func factorValue(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(maxFactorValue, v)
}
