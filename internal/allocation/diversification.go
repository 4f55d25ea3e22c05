package allocation

import "math"

// HHI is the Herfindahl-Hirschman index of a set of weights (re-normalised to sum 1)
func HHI(weights []Weight) float64 {
	var sum float64
	for _, w := range weights {
		sum += w.Weight
	}
	if sum <= 0 {
		return 0
	}

	var hhi float64
	for _, w := range weights {
		share := w.Weight / sum
		hhi += share * share
	}
	return hhi
}

// ConcentrationScore maps an HHI onto 0..1 where 1 means at least as spread
// as `reference` equally weighted positions and 0 means a single position.
func ConcentrationScore(weights []Weight, reference int) float64 {
	if len(weights) == 0 || reference < 2 {
		return 0
	}

	floor := 1.0 / float64(reference)
	score := (1 - HHI(weights)) / (1 - floor)

	return math.Max(0, math.Min(1, score))
}

// DiversificationScore blends holding-level and sector-level spread into 0..100
func DiversificationScore(holdingWeights, sectorWeights []Weight, holdingsRef, sectorsRef int, holdingsWeight, sectorsWeight float64) float64 {
	if len(holdingWeights) == 0 {
		return 0
	}

	score := holdingsWeight*ConcentrationScore(holdingWeights, holdingsRef) +
		sectorsWeight*ConcentrationScore(sectorWeights, sectorsRef)

	return math.Round(score*1000) / 10
}
