package risk

// TradingDaysPerYear annualisation factor
const TradingDaysPerYear = 252

// VaRConvention VaR sign convention
// ⭐ SSOT: losses are positive (VaR=0.05 means a 5% possible loss)
const VaRConvention = "loss_positive"

// =============================================================================
// Factor Names
// =============================================================================

const (
	FactorVolatility          = "volatility"
	FactorBeta                = "beta"
	FactorConcentration       = "concentration"
	FactorSectorConcentration = "sector_concentration"
	FactorDrawdown            = "drawdown"
)

// neutralFactorValue is used for market factors when history is too short
const neutralFactorValue = 5.0

// maxFactorValue caps every factor
const maxFactorValue = 10.0

// =============================================================================
// Result Types
// =============================================================================

// VaRResult VaR calculation result
// ⭐ SSOT: VaR and CVaR report losses as positive numbers
// - VaR=0.05: at 95% confidence the loss is at most 5%
// - CVaR=0.07: the average loss in the 5% tail is 7%
type VaRResult struct {
	Confidence float64 `json:"confidence"`
	VaR        float64 `json:"var"`
	CVaR       float64 `json:"cvar"`
}

// Metrics market risk metrics of a value history, all fractions (0.2 = 20%)
type Metrics struct {
	Samples          int       `json:"samples"`           // daily returns used
	BenchmarkSamples int       `json:"benchmark_samples"` // aligned returns used for beta, 0 = no beta
	Volatility       float64   `json:"volatility"`        // annualised sample stdev
	AnnualReturn     float64   `json:"annual_return"`     // geometric
	Beta             float64   `json:"beta"`
	Sharpe           float64   `json:"sharpe"`
	MaxDrawdown      float64   `json:"max_drawdown"` // positive
	VaR95            VaRResult `json:"var_95"`
}

// HasBeta reports whether beta was computed from enough aligned samples
func (m *Metrics) HasBeta() bool {
	return m.BenchmarkSamples > 0
}
