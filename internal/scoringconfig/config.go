package scoringconfig

// Config holds every tunable parameter of the dashboard scoring engine
type Config struct {
	Meta            Meta            `yaml:"meta" json:"meta"`
	Allocation      Allocation      `yaml:"allocation" json:"allocation"`
	Diversification Diversification `yaml:"diversification" json:"diversification"`
	Risk            Risk            `yaml:"risk" json:"risk"`
	Alerts          Alerts          `yaml:"alerts" json:"alerts"`
}

// Meta identifies the scoring profile
type Meta struct {
	ProfileID string `yaml:"profile_id" json:"profile_id"`
	Version   string `yaml:"version" json:"version"`
}

// Allocation target weights per category, whole percents
type Allocation struct {
	Targets               []Target `yaml:"targets" json:"targets"` // sum = 100
	RebalanceThresholdPct float64  `yaml:"rebalance_threshold_pct" json:"rebalance_threshold_pct"`
	CashCategory          string   `yaml:"cash_category" json:"cash_category"`
}

type Target struct {
	Category string  `yaml:"category" json:"category"`
	Pct      float64 `yaml:"pct" json:"pct"`
}

// TargetFor returns the target percentage of a category, 0 if not listed
func (a Allocation) TargetFor(category string) float64 {
	for _, t := range a.Targets {
		if t.Category == category {
			return t.Pct
		}
	}
	return 0
}

// TotalPct returns the sum of all targets
func (a Allocation) TotalPct() float64 {
	total := 0.0
	for _, t := range a.Targets {
		total += t.Pct
	}
	return total
}

// Diversification controls the 0..100 diversification score
type Diversification struct {
	HoldingsReference int     `yaml:"holdings_reference" json:"holdings_reference"` // equal-weight count treated as fully diversified
	SectorsReference  int     `yaml:"sectors_reference" json:"sectors_reference"`
	HoldingsWeight    float64 `yaml:"holdings_weight" json:"holdings_weight"` // holdings + sectors = 1.0
	SectorsWeight     float64 `yaml:"sectors_weight" json:"sectors_weight"`
}

// Risk controls the 0..10 risk score
type Risk struct {
	RiskFreeRate float64       `yaml:"risk_free_rate" json:"risk_free_rate"` // annual, fraction
	LookbackDays int           `yaml:"lookback_days" json:"lookback_days"`
	MinSamples   int           `yaml:"min_samples" json:"min_samples"`
	Weights      FactorWeights `yaml:"factor_weights" json:"factor_weights"` // sum = 1.0
}

// FactorWeights weight of each risk factor, 0..1
type FactorWeights struct {
	Volatility          float64 `yaml:"volatility" json:"volatility"`
	Beta                float64 `yaml:"beta" json:"beta"`
	Concentration       float64 `yaml:"concentration" json:"concentration"`
	SectorConcentration float64 `yaml:"sector_concentration" json:"sector_concentration"`
	Drawdown            float64 `yaml:"drawdown" json:"drawdown"`
}

type namedWeight struct {
	name  string
	value float64
}

// named lists the weights in declaration order
func (w FactorWeights) named() []namedWeight {
	return []namedWeight{
		{"volatility", w.Volatility},
		{"beta", w.Beta},
		{"concentration", w.Concentration},
		{"sector_concentration", w.SectorConcentration},
		{"drawdown", w.Drawdown},
	}
}

// Sum returns the sum of all factor weights
func (w FactorWeights) Sum() float64 {
	total := 0.0
	for _, f := range w.named() {
		total += f.value
	}
	return total
}

// Alerts thresholds, whole percents
type Alerts struct {
	MaxPositionPct  float64 `yaml:"max_position_pct" json:"max_position_pct"`
	DailyLossPct    float64 `yaml:"daily_loss_pct" json:"daily_loss_pct"` // negative, e.g. -3
	DividendDropPct float64 `yaml:"dividend_drop_pct" json:"dividend_drop_pct"`
}

// Default returns the built-in scoring profile
func Default() *Config {
	return &Config{
		Meta: Meta{
			ProfileID: "balanced",
			Version:   "1",
		},
		Allocation: Allocation{
			Targets: []Target{
				{Category: "US Equity", Pct: 45},
				{Category: "International Equity", Pct: 20},
				{Category: "Bonds", Pct: 20},
				{Category: "Real Estate", Pct: 5},
				{Category: "Crypto", Pct: 5},
				{Category: "Cash", Pct: 5},
			},
			RebalanceThresholdPct: 5,
			CashCategory:          "Cash",
		},
		Diversification: Diversification{
			HoldingsReference: 20,
			SectorsReference:  8,
			HoldingsWeight:    0.6,
			SectorsWeight:     0.4,
		},
		Risk: Risk{
			RiskFreeRate: 0.04,
			LookbackDays: 252,
			MinSamples:   20,
			Weights: FactorWeights{
				Volatility:          0.30,
				Beta:                0.20,
				Concentration:       0.20,
				SectorConcentration: 0.15,
				Drawdown:            0.15,
			},
		},
		Alerts: Alerts{
			MaxPositionPct:  20,
			DailyLossPct:    -3,
			DividendDropPct: -25,
		},
	}
}
