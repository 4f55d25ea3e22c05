package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
)

// Repository persists dashboard summaries
// ⭐ SSOT: the only writer of dashboard.summaries
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new summary repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveSummary stores a summary snapshot
func (r *Repository) SaveSummary(ctx context.Context, summary *contracts.DashboardCardsSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	var riskScore *float64
	if summary.RiskScore != nil {
		riskScore = &summary.RiskScore.Score
	}

	query := `
		INSERT INTO dashboard.summaries (
			portfolio_id, generated_at, health_score, health_status, risk_score, payload
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (portfolio_id, generated_at) DO UPDATE SET
			health_score = EXCLUDED.health_score,
			health_status = EXCLUDED.health_status,
			risk_score = EXCLUDED.risk_score,
			payload = EXCLUDED.payload
	`

	_, err = r.pool.Exec(ctx, query,
		summary.PortfolioID, summary.GeneratedAt, summary.PortfolioHealthScore,
		string(summary.HealthStatus), riskScore, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}

	return nil
}
