package scoring

import "github.com/CRONANANI/ezana/backend/internal/contracts"

// Scale identifies which direction a score is read in
type Scale string

const (
	// ScaleRisk is a 0..10 score where higher means riskier
	ScaleRisk Scale = "risk"
	// ScaleDiversification is a 0..100 score where higher means safer
	ScaleDiversification Scale = "diversification"
)

// Level buckets a score into one of the five shared risk levels
// ⭐ SSOT: every card uses this, no card carries its own thresholds
func Level(scale Scale, score float64) contracts.RiskLevel {
	switch scale {
	case ScaleDiversification:
		return DiversificationLevel(score)
	default:
		return RiskLevelFromScore(score)
	}
}

// RiskLevelFromScore buckets a 0..10 risk score
func RiskLevelFromScore(score float64) contracts.RiskLevel {
	switch {
	case score < 3:
		return contracts.RiskLevelLow
	case score < 5:
		return contracts.RiskLevelModerateLow
	case score < 7:
		return contracts.RiskLevelModerate
	case score < 9:
		return contracts.RiskLevelModerateHigh
	default:
		return contracts.RiskLevelHigh
	}
}

// DiversificationLevel buckets a 0..100 diversification score.
// The direction is inverted: a well diversified portfolio carries Low risk.
func DiversificationLevel(score float64) contracts.RiskLevel {
	switch {
	case score >= 80:
		return contracts.RiskLevelLow
	case score >= 60:
		return contracts.RiskLevelModerateLow
	case score >= 40:
		return contracts.RiskLevelModerate
	case score >= 20:
		return contracts.RiskLevelModerateHigh
	default:
		return contracts.RiskLevelHigh
	}
}

// HealthStatusFor maps a health score to its status
func HealthStatusFor(score float64) contracts.HealthStatus {
	switch {
	case score >= 80:
		return contracts.HealthExcellent
	case score >= 60:
		return contracts.HealthGood
	case score >= 40:
		return contracts.HealthFair
	case score >= 20:
		return contracts.HealthPoor
	default:
		return contracts.HealthCritical
	}
}
