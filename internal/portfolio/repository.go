package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
)

// Repository loads portfolio snapshots for the dashboard
// ⭐ SSOT: portfolio reads happen only here
type Repository struct {
	pool            *pgxpool.Pool
	benchmarkSymbol string
	lookbackDays    int
}

// NewRepository creates a new portfolio repository.
// lookbackDays is in trading days; value history is loaded with calendar slack.
func NewRepository(pool *pgxpool.Pool, benchmarkSymbol string, lookbackDays int) *Repository {
	return &Repository{
		pool:            pool,
		benchmarkSymbol: benchmarkSymbol,
		lookbackDays:    lookbackDays,
	}
}

// ListPortfolioIDs returns every portfolio id
func (r *Repository) ListPortfolioIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, "SELECT portfolio_id FROM portfolio.portfolios ORDER BY portfolio_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolios: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}

// LoadSnapshot assembles holdings, quotes, dividends and value history as of asOf
func (r *Repository) LoadSnapshot(ctx context.Context, portfolioID string, asOf time.Time) (*contracts.PortfolioSnapshot, error) {
	snap := &contracts.PortfolioSnapshot{
		PortfolioID: portfolioID,
		AsOf:        asOf,
	}

	err := r.pool.QueryRow(ctx,
		"SELECT cash_balance FROM portfolio.portfolios WHERE portfolio_id = $1",
		portfolioID,
	).Scan(&snap.Cash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", contracts.ErrPortfolioNotFound, portfolioID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	if snap.Holdings, err = r.getHoldings(ctx, portfolioID); err != nil {
		return nil, err
	}

	// trailing 12 months of dividends (projected annual)
	dividendsFrom := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location()).AddDate(-1, 1, 0)
	if snap.Dividends, err = r.getDividends(ctx, portfolioID, dividendsFrom, asOf); err != nil {
		return nil, err
	}

	historyFrom := asOf.AddDate(0, 0, -(r.lookbackDays*3/2 + 10))
	if snap.ValueHistory, err = r.getDailyValues(ctx, portfolioID, historyFrom, asOf); err != nil {
		return nil, err
	}
	if snap.BenchmarkHistory, err = r.getBenchmark(ctx, historyFrom, asOf); err != nil {
		return nil, err
	}

	if snap.PreviousRiskScore, err = r.getPreviousRiskScore(ctx, portfolioID, asOf); err != nil {
		return nil, err
	}

	return snap, nil
}

func (r *Repository) getHoldings(ctx context.Context, portfolioID string) ([]contracts.Holding, error) {
	query := `
		SELECT
			h.ticker, h.name, h.shares, h.cost_basis,
			COALESCE(q.price, 0), COALESCE(q.previous_close, 0),
			COALESCE(h.sector, ''), COALESCE(h.asset_class, '')
		FROM portfolio.holdings h
		LEFT JOIN market.quotes q ON q.ticker = h.ticker
		WHERE h.portfolio_id = $1 AND h.shares > 0
		ORDER BY h.ticker
	`

	rows, err := r.pool.Query(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	holdings := make([]contracts.Holding, 0)
	for rows.Next() {
		var h contracts.Holding
		err := rows.Scan(
			&h.Ticker, &h.Name, &h.Shares, &h.CostBasis,
			&h.Price, &h.PreviousClose,
			&h.Sector, &h.AssetClass,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return holdings, nil
}

func (r *Repository) getDividends(ctx context.Context, portfolioID string, from, to time.Time) ([]contracts.DividendPayment, error) {
	query := `
		SELECT ticker, paid_on, amount
		FROM portfolio.dividends
		WHERE portfolio_id = $1 AND paid_on >= $2 AND paid_on <= $3
		ORDER BY paid_on
	`

	rows, err := r.pool.Query(ctx, query, portfolioID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividends: %w", err)
	}
	defer rows.Close()

	payments := make([]contracts.DividendPayment, 0)
	for rows.Next() {
		var p contracts.DividendPayment
		if err := rows.Scan(&p.Ticker, &p.PaidOn, &p.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan dividend: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return payments, nil
}

func (r *Repository) getDailyValues(ctx context.Context, portfolioID string, from, to time.Time) ([]contracts.ValuePoint, error) {
	query := `
		SELECT value_date, total_value
		FROM portfolio.daily_values
		WHERE portfolio_id = $1 AND value_date >= $2 AND value_date <= $3
		ORDER BY value_date
	`
	return r.queryValuePoints(ctx, query, portfolioID, from, to)
}

func (r *Repository) getBenchmark(ctx context.Context, from, to time.Time) ([]contracts.ValuePoint, error) {
	query := `
		SELECT price_date, close_price
		FROM market.benchmark_prices
		WHERE symbol = $1 AND price_date >= $2 AND price_date <= $3
		ORDER BY price_date
	`
	return r.queryValuePoints(ctx, query, r.benchmarkSymbol, from, to)
}

func (r *Repository) queryValuePoints(ctx context.Context, query string, args ...interface{}) ([]contracts.ValuePoint, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query value history: %w", err)
	}
	defer rows.Close()

	points := make([]contracts.ValuePoint, 0)
	for rows.Next() {
		var p contracts.ValuePoint
		if err := rows.Scan(&p.Date, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan value point: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return points, nil
}

// getPreviousRiskScore returns the risk score of the latest stored summary before asOf, 0 if none
func (r *Repository) getPreviousRiskScore(ctx context.Context, portfolioID string, asOf time.Time) (float64, error) {
	var score *float64
	err := r.pool.QueryRow(ctx, `
		SELECT risk_score
		FROM dashboard.summaries
		WHERE portfolio_id = $1 AND generated_at < $2
		ORDER BY generated_at DESC
		LIMIT 1
	`, portfolioID, asOf).Scan(&score)

	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get previous risk score: %w", err)
	}
	if score == nil {
		return 0, nil
	}

	return *score, nil
}
