package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
)

var hundred = decimal.NewFromInt(100)

// pct returns part / whole in whole percent, 0 when whole is not positive
func pct(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(hundred).InexactFloat64()
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// =============================================================================
// Portfolio Value
// =============================================================================

// BuildValueCard sums market value, cost and today's move of all holdings
func BuildValueCard(holdings []contracts.Holding, cash float64) *contracts.PortfolioValueCard {
	invested := decimal.Zero
	cost := decimal.Zero
	dayChange := decimal.Zero

	for _, h := range holdings {
		shares := decimal.NewFromFloat(h.Shares)
		invested = invested.Add(shares.Mul(decimal.NewFromFloat(h.Price)))
		cost = cost.Add(decimal.NewFromFloat(h.CostBasis))
		if h.PreviousClose > 0 {
			move := decimal.NewFromFloat(h.Price).Sub(decimal.NewFromFloat(h.PreviousClose))
			dayChange = dayChange.Add(shares.Mul(move))
		}
	}

	total := invested.Add(decimal.NewFromFloat(cash))
	gain := invested.Sub(cost)

	return &contracts.PortfolioValueCard{
		TotalValue:          money(total),
		Cash:                money(decimal.NewFromFloat(cash)),
		CostBasis:           money(cost),
		TotalGain:           money(gain),
		TotalGainPercentage: pct(gain, cost),
		DayChange:           money(dayChange),
		DayChangePercentage: pct(dayChange, total.Sub(dayChange)),
		HoldingsCount:       len(holdings),
	}
}

// =============================================================================
// Today's P&L
// =============================================================================

// BuildPnlCard returns nil when no holding has a previous close to compare against
func BuildPnlCard(holdings []contracts.Holding, cash float64) *contracts.TodaysPnlCard {
	var best, worst *contracts.PerformerRef
	quoted := 0

	for _, h := range holdings {
		if h.PreviousClose <= 0 {
			continue
		}
		quoted++

		move := decimal.NewFromFloat(h.Price).Sub(decimal.NewFromFloat(h.PreviousClose))
		ref := &contracts.PerformerRef{
			Ticker:           h.Ticker,
			ChangePercentage: h.DayChangePercentage(),
			Change:           money(decimal.NewFromFloat(h.Shares).Mul(move)),
		}
		if best == nil || ref.ChangePercentage > best.ChangePercentage {
			best = ref
		}
		if worst == nil || ref.ChangePercentage < worst.ChangePercentage {
			worst = ref
		}
	}

	if quoted == 0 {
		return nil
	}

	value := BuildValueCard(holdings, cash)
	return &contracts.TodaysPnlCard{
		TodayPnl:           value.DayChange,
		TodayPnlPercentage: value.DayChangePercentage,
		BestPerformer:      best,
		WorstPerformer:     worst,
	}
}

// =============================================================================
// Monthly Dividends
// =============================================================================

// BuildDividendsCard compares the calendar month of asOf with the month before.
// ProjectedAnnual is the trailing twelve months of payments.
// Returns nil when nothing was paid in the trailing year.
func BuildDividendsCard(payments []contracts.DividendPayment, asOf time.Time) *contracts.MonthlyDividendsCard {
	thisStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	nextStart := thisStart.AddDate(0, 1, 0)
	lastStart := thisStart.AddDate(0, -1, 0)
	yearStart := nextStart.AddDate(-1, 0, 0)

	thisMonth, lastMonth, trailing := decimal.Zero, decimal.Zero, decimal.Zero
	count, trailingCount := 0, 0

	for _, p := range payments {
		amount := decimal.NewFromFloat(p.Amount)
		paid := p.PaidOn.In(asOf.Location())

		switch {
		case !paid.Before(thisStart) && paid.Before(nextStart):
			thisMonth = thisMonth.Add(amount)
			count++
		case !paid.Before(lastStart) && paid.Before(thisStart):
			lastMonth = lastMonth.Add(amount)
		}

		if !paid.Before(yearStart) && paid.Before(nextStart) {
			trailing = trailing.Add(amount)
			trailingCount++
		}
	}

	if trailingCount == 0 {
		return nil
	}

	return &contracts.MonthlyDividendsCard{
		ThisMonth:        money(thisMonth),
		LastMonth:        money(lastMonth),
		ChangePercentage: pct(thisMonth.Sub(lastMonth), lastMonth),
		ProjectedAnnual:  money(trailing),
		PaymentsCount:    count,
	}
}
