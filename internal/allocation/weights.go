package allocation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
)

// Weight is the share of one key (ticker, sector, category) in a total
type Weight struct {
	Key    string
	Value  decimal.Decimal
	Weight float64 // 0..1
}

// GroupBy sums holding values per key and returns weights sorted by value desc.
// Holdings with a non-positive value are ignored.
func GroupBy(holdings []contracts.Holding, key func(contracts.Holding) string) []Weight {
	sums := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, h := range holdings {
		v := HoldingValue(h)
		if !v.IsPositive() {
			continue
		}
		k := key(h)
		sums[k] = sums[k].Add(v)
		total = total.Add(v)
	}
	return toWeights(sums, total)
}

// PositionWeights returns per-ticker weights against total (holdings + cash)
func PositionWeights(holdings []contracts.Holding, cash float64) []Weight {
	sums := make(map[string]decimal.Decimal)
	total := decimal.NewFromFloat(cash)
	if total.IsNegative() {
		total = decimal.Zero
	}
	for _, h := range holdings {
		v := HoldingValue(h)
		if !v.IsPositive() {
			continue
		}
		sums[h.Ticker] = sums[h.Ticker].Add(v)
		total = total.Add(v)
	}
	return toWeights(sums, total)
}

// SectorWeights returns per-sector weights of the invested holdings
func SectorWeights(holdings []contracts.Holding) []Weight {
	return GroupBy(holdings, func(h contracts.Holding) string {
		if h.Sector == "" {
			return "Unknown"
		}
		return h.Sector
	})
}

// MaxWeight returns the largest weight, 0 for an empty set
func MaxWeight(weights []Weight) float64 {
	if len(weights) == 0 {
		return 0
	}
	return weights[0].Weight
}

// HoldingValue is shares x price in decimal arithmetic
func HoldingValue(h contracts.Holding) decimal.Decimal {
	return decimal.NewFromFloat(h.Shares).Mul(decimal.NewFromFloat(h.Price))
}

func toWeights(sums map[string]decimal.Decimal, total decimal.Decimal) []Weight {
	weights := make([]Weight, 0, len(sums))
	for k, v := range sums {
		w := 0.0
		if total.IsPositive() {
			w = v.Div(total).InexactFloat64()
		}
		weights = append(weights, Weight{Key: k, Value: v, Weight: w})
	}
	sort.Slice(weights, func(i, j int) bool {
		if c := weights[i].Value.Cmp(weights[j].Value); c != 0 {
			return c > 0
		}
		return weights[i].Key < weights[j].Key
	})
	return weights
}
