package risk

import (
	"math"
	"sort"
	"time"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
)

// sortedPoints returns a date-ordered copy
func sortedPoints(points []contracts.ValuePoint) []contracts.ValuePoint {
	out := make([]contracts.ValuePoint, len(points))
	copy(out, points)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Lookback keeps the last days+1 points (days returns), date ordered
func Lookback(points []contracts.ValuePoint, days int) []contracts.ValuePoint {
	sorted := sortedPoints(points)
	if days > 0 && len(sorted) > days+1 {
		sorted = sorted[len(sorted)-days-1:]
	}
	return sorted
}

// Returns daily simple returns (P1 - P0) / P0
// Pairs with a non-positive starting value are skipped.
func Returns(points []contracts.ValuePoint) []float64 {
	sorted := sortedPoints(points)
	if len(sorted) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1].Value
		if prev <= 0 {
			continue
		}
		returns = append(returns, (sorted[i].Value-prev)/prev)
	}
	return returns
}

// AlignedReturns returns portfolio and benchmark returns over the dates both series share
func AlignedReturns(portfolio, benchmark []contracts.ValuePoint) ([]float64, []float64) {
	bench := make(map[time.Time]float64, len(benchmark))
	for _, p := range benchmark {
		bench[day(p.Date)] = p.Value
	}

	var pCommon, bCommon []contracts.ValuePoint
	for _, p := range sortedPoints(portfolio) {
		d := day(p.Date)
		if v, ok := bench[d]; ok {
			pCommon = append(pCommon, contracts.ValuePoint{Date: d, Value: p.Value})
			bCommon = append(bCommon, contracts.ValuePoint{Date: d, Value: v})
		}
	}

	if len(pCommon) < 2 {
		return nil, nil
	}

	pr := make([]float64, 0, len(pCommon)-1)
	br := make([]float64, 0, len(pCommon)-1)
	for i := 1; i < len(pCommon); i++ {
		if pCommon[i-1].Value <= 0 || bCommon[i-1].Value <= 0 {
			continue
		}
		pr = append(pr, (pCommon[i].Value-pCommon[i-1].Value)/pCommon[i-1].Value)
		br = append(br, (bCommon[i].Value-bCommon[i-1].Value)/bCommon[i-1].Value)
	}
	return pr, br
}

// MaxDrawdown largest peak-to-trough decline, positive
func MaxDrawdown(points []contracts.ValuePoint) float64 {
	var peak, mdd float64
	for _, p := range sortedPoints(points) {
		if p.Value > peak {
			peak = p.Value
		}
		if peak > 0 {
			if dd := (peak - p.Value) / peak; dd > mdd {
				mdd = dd
			}
		}
	}
	return mdd
}

// AnnualizedReturn geometric annualised return of daily returns
func AnnualizedReturn(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	growth := 1.0
	for _, r := range returns {
		growth *= 1 + r
	}
	if growth <= 0 {
		return -1
	}
	return math.Pow(growth, float64(TradingDaysPerYear)/float64(len(returns))) - 1
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
