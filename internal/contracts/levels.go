package contracts

// RiskLevel is the five-step categorical risk label shared by every card
type RiskLevel string

const (
	RiskLevelLow          RiskLevel = "Low"
	RiskLevelModerateLow  RiskLevel = "ModerateLow"
	RiskLevelModerate     RiskLevel = "Moderate"
	RiskLevelModerateHigh RiskLevel = "ModerateHigh"
	RiskLevelHigh         RiskLevel = "High"
)

// Rank orders levels from Low (0) to High (4)
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLevelLow:
		return 0
	case RiskLevelModerateLow:
		return 1
	case RiskLevelModerate:
		return 2
	case RiskLevelModerateHigh:
		return 3
	case RiskLevelHigh:
		return 4
	default:
		return -1
	}
}

// HealthStatus is the five-level label of the portfolio health score
type HealthStatus string

const (
	HealthExcellent HealthStatus = "Excellent"
	HealthGood      HealthStatus = "Good"
	HealthFair      HealthStatus = "Fair"
	HealthPoor      HealthStatus = "Poor"
	HealthCritical  HealthStatus = "Critical"
)

// Severity of a dashboard alert
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// RebalanceAction is the trade direction suggested for a category
type RebalanceAction string

const (
	RebalanceBuy  RebalanceAction = "BUY"
	RebalanceSell RebalanceAction = "SELL"
)

// Rank orders severities from info (0) to critical (2)
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}
