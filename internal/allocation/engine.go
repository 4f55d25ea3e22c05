package allocation

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
	"github.com/CRONANANI/ezana/backend/internal/scoring"
	"github.com/CRONANANI/ezana/backend/internal/scoringconfig"
)

// Engine builds the asset allocation card
type Engine struct {
	allocation      scoringconfig.Allocation
	diversification scoringconfig.Diversification
}

// NewEngine creates a new allocation engine
func NewEngine(cfg *scoringconfig.Config) *Engine {
	return &Engine{
		allocation:      cfg.Allocation,
		diversification: cfg.Diversification,
	}
}

// Build computes allocation items, diversification and rebalancing trades.
// Target categories without holdings are listed with 0% so they can be bought.
func (e *Engine) Build(holdings []contracts.Holding, cash float64) *contracts.AssetAllocationCard {
	card := &contracts.AssetAllocationCard{
		Items:           []contracts.AllocationItem{},
		Recommendations: []contracts.RebalanceRecommendation{},
	}

	categories := GroupBy(holdings, contracts.Holding.Category)

	sums := make(map[string]decimal.Decimal, len(categories)+1)
	total := decimal.Zero
	for _, c := range categories {
		sums[c.Key] = c.Value
		total = total.Add(c.Value)
	}
	if cash > 0 {
		cashValue := decimal.NewFromFloat(cash)
		sums[e.allocation.CashCategory] = sums[e.allocation.CashCategory].Add(cashValue)
		total = total.Add(cashValue)
	}

	if !total.IsPositive() {
		card.DiversificationLevel = scoring.DiversificationLevel(0)
		return card
	}

	for _, t := range e.allocation.Targets {
		if _, ok := sums[t.Category]; !ok {
			sums[t.Category] = decimal.Zero
		}
	}

	for category, value := range sums {
		pct := value.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		target := e.allocation.TargetFor(category)
		deviation := pct - target

		card.Items = append(card.Items, contracts.AllocationItem{
			Category:         category,
			Value:            value.Round(2).InexactFloat64(),
			Percentage:       pct,
			TargetPercentage: target,
			Deviation:        deviation,
			NeedsRebalancing: math.Abs(deviation) > e.allocation.RebalanceThresholdPct,
		})
	}

	sort.Slice(card.Items, func(i, j int) bool {
		if card.Items[i].Value != card.Items[j].Value {
			return card.Items[i].Value > card.Items[j].Value
		}
		return card.Items[i].Category < card.Items[j].Category
	})

	card.Recommendations = Recommend(card.Items, total)

	card.DiversificationScore = DiversificationScore(
		PositionWeights(holdings, 0),
		SectorWeights(holdings),
		e.diversification.HoldingsReference,
		e.diversification.SectorsReference,
		e.diversification.HoldingsWeight,
		e.diversification.SectorsWeight,
	)
	card.DiversificationLevel = scoring.DiversificationLevel(card.DiversificationScore)

	return card
}

// Recommend turns flagged allocation items into trades, largest deviation first
func Recommend(items []contracts.AllocationItem, total decimal.Decimal) []contracts.RebalanceRecommendation {
	recs := make([]contracts.RebalanceRecommendation, 0)
	for _, item := range items {
		if !item.NeedsRebalancing {
			continue
		}

		action := contracts.RebalanceBuy
		if item.Deviation > 0 {
			action = contracts.RebalanceSell
		}

		amount := decimal.NewFromFloat(math.Abs(item.Deviation)).
			Div(decimal.NewFromInt(100)).
			Mul(total).
			Round(2)

		recs = append(recs, contracts.RebalanceRecommendation{
			Category:  item.Category,
			Action:    action,
			Amount:    amount.InexactFloat64(),
			Deviation: item.Deviation,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return math.Abs(recs[i].Deviation) > math.Abs(recs[j].Deviation)
	})

	return recs
}
