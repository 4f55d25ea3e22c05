package scoringconfig

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig every ValidationError unwraps to this
var ErrInvalidConfig = errors.New("invalid scoring config")

// ValidationError a required constraint failed
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// Warning is a recommended-constraint violation
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.ProfileID == "" {
		return ValidationError{"meta.profile_id", "required"}
	}

	// === Allocation ===
	a := cfg.Allocation
	if len(a.Targets) == 0 {
		return ValidationError{"allocation.targets", "required"}
	}
	seen := make(map[string]bool, len(a.Targets))
	for i, t := range a.Targets {
		field := fmt.Sprintf("allocation.targets[%d]", i)
		if t.Category == "" {
			return ValidationError{field + ".category", "required"}
		}
		if seen[t.Category] {
			return ValidationError{field + ".category", fmt.Sprintf("duplicate category %q", t.Category)}
		}
		seen[t.Category] = true
		if t.Pct < 0 || t.Pct > 100 {
			return ValidationError{field + ".pct", "must be in [0, 100]"}
		}
	}
	if math.Abs(a.TotalPct()-100) > 0.01 {
		return ValidationError{"allocation.targets", fmt.Sprintf("must sum to 100, got %.2f", a.TotalPct())}
	}
	if a.RebalanceThresholdPct <= 0 || a.RebalanceThresholdPct > 50 {
		return ValidationError{"allocation.rebalance_threshold_pct", "must be in (0, 50]"}
	}
	if a.CashCategory == "" {
		return ValidationError{"allocation.cash_category", "required"}
	}

	// === Diversification ===
	d := cfg.Diversification
	if d.HoldingsReference < 2 {
		return ValidationError{"diversification.holdings_reference", "must be >= 2"}
	}
	if d.SectorsReference < 2 {
		return ValidationError{"diversification.sectors_reference", "must be >= 2"}
	}
	if d.HoldingsWeight < 0 || d.SectorsWeight < 0 {
		return ValidationError{"diversification", "weights must be >= 0"}
	}
	if math.Abs(d.HoldingsWeight+d.SectorsWeight-1.0) > 1e-6 {
		return ValidationError{"diversification", "holdings_weight + sectors_weight must equal 1.0"}
	}

	// === Risk ===
	r := cfg.Risk
	if r.RiskFreeRate < 0 || r.RiskFreeRate > 0.25 {
		return ValidationError{"risk.risk_free_rate", "must be in [0, 0.25]"}
	}
	if r.MinSamples < 2 {
		return ValidationError{"risk.min_samples", "must be >= 2"}
	}
	if r.LookbackDays < r.MinSamples {
		return ValidationError{"risk.lookback_days", "must be >= min_samples"}
	}
	w := r.Weights
	for _, f := range w.named() {
		if f.value < 0 || f.value > 1 {
			return ValidationError{"risk.factor_weights." + f.name, "must be in [0, 1]"}
		}
	}
	if math.Abs(w.Sum()-1.0) > 1e-6 {
		return ValidationError{"risk.factor_weights", fmt.Sprintf("must sum to 1.0, got %.4f", w.Sum())}
	}

	// === Alerts ===
	if cfg.Alerts.MaxPositionPct <= 0 || cfg.Alerts.MaxPositionPct > 100 {
		return ValidationError{"alerts.max_position_pct", "must be in (0, 100]"}
	}
	if cfg.Alerts.DailyLossPct >= 0 {
		return ValidationError{"alerts.daily_loss_pct", "must be < 0"}
	}
	if cfg.Alerts.DividendDropPct >= 0 {
		return ValidationError{"alerts.dividend_drop_pct", "must be < 0"}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	if cfg.Allocation.TargetFor(cfg.Allocation.CashCategory) == 0 {
		warnings = append(warnings, Warning{
			Code:    "NO_CASH_TARGET",
			Message: "cash category has no target: any cash balance will be flagged for rebalancing",
		})
	}

	if cfg.Allocation.RebalanceThresholdPct < 2 {
		warnings = append(warnings, Warning{
			Code:    "TIGHT_REBALANCE_BAND",
			Message: "rebalance threshold < 2 points: expect frequent rebalancing alerts",
		})
	}

	if cfg.Risk.MinSamples < 20 {
		warnings = append(warnings, Warning{
			Code:    "FEW_RISK_SAMPLES",
			Message: "fewer than 20 daily returns make volatility and beta unstable",
		})
	}

	return warnings
}
