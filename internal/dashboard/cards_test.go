package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
)

func TestBuildValueCard(t *testing.T) {
	holdings := []contracts.Holding{
		{Ticker: "A", Shares: 10, Price: 110, PreviousClose: 100, CostBasis: 1000},
		{Ticker: "B", Shares: 5, Price: 200, CostBasis: 1200},
	}

	card := BuildValueCard(holdings, 100)

	assert.InDelta(t, 2200.0, card.TotalValue, 1e-9)
	assert.InDelta(t, 100.0, card.Cash, 1e-9)
	assert.InDelta(t, 2200.0, card.CostBasis, 1e-9)
	assert.InDelta(t, -100.0, card.TotalGain, 1e-9)
	assert.InDelta(t, -100.0/2200*100, card.TotalGainPercentage, 1e-9)
	assert.InDelta(t, 100.0, card.DayChange, 1e-9)
	assert.InDelta(t, 100.0/2100*100, card.DayChangePercentage, 1e-9)
	assert.Equal(t, 2, card.HoldingsCount)
}

func TestBuildValueCard_Empty(t *testing.T) {
	card := BuildValueCard(nil, 0)

	assert.Equal(t, 0.0, card.TotalValue)
	assert.Equal(t, 0.0, card.TotalGainPercentage)
	assert.Equal(t, 0.0, card.DayChangePercentage)
}

func TestBuildPnlCard(t *testing.T) {
	holdings := []contracts.Holding{
		{Ticker: "UP", Shares: 10, Price: 110, PreviousClose: 100},
		{Ticker: "DOWN", Shares: 10, Price: 95, PreviousClose: 100},
		{Ticker: "NOQUOTE", Shares: 10, Price: 50},
	}

	card := BuildPnlCard(holdings, 0)
	require.NotNil(t, card)

	// 100 - 50 on a previous value of 1000 + 1000 + 500
	assert.InDelta(t, 50.0, card.TodayPnl, 1e-9)
	assert.InDelta(t, 2.0, card.TodayPnlPercentage, 1e-9)

	require.NotNil(t, card.BestPerformer)
	assert.Equal(t, "UP", card.BestPerformer.Ticker)
	assert.InDelta(t, 10.0, card.BestPerformer.ChangePercentage, 1e-9)
	assert.InDelta(t, 100.0, card.BestPerformer.Change, 1e-9)

	require.NotNil(t, card.WorstPerformer)
	assert.Equal(t, "DOWN", card.WorstPerformer.Ticker)
	assert.InDelta(t, -50.0, card.WorstPerformer.Change, 1e-9)
}

func TestBuildPnlCard_NoQuotes(t *testing.T) {
	holdings := []contracts.Holding{{Ticker: "A", Shares: 1, Price: 10}}
	assert.Nil(t, BuildPnlCard(holdings, 0))
	assert.Nil(t, BuildPnlCard(nil, 100))
}

func TestBuildDividendsCard(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	payments := []contracts.DividendPayment{
		{Ticker: "A", PaidOn: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), Amount: 30},
		{Ticker: "B", PaidOn: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Amount: 20},
		{Ticker: "A", PaidOn: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Amount: 40},
		{Ticker: "C", PaidOn: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Amount: 10},
		{Ticker: "C", PaidOn: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), Amount: 999}, // outside trailing year
	}

	card := BuildDividendsCard(payments, asOf)
	require.NotNil(t, card)

	assert.InDelta(t, 50.0, card.ThisMonth, 1e-9)
	assert.InDelta(t, 40.0, card.LastMonth, 1e-9)
	assert.InDelta(t, 25.0, card.ChangePercentage, 1e-9)
	assert.InDelta(t, 100.0, card.ProjectedAnnual, 1e-9)
	assert.Equal(t, 2, card.PaymentsCount)
}

func TestBuildDividendsCard_NoPreviousMonth(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	payments := []contracts.DividendPayment{
		{Ticker: "A", PaidOn: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 30},
	}

	card := BuildDividendsCard(payments, asOf)
	require.NotNil(t, card)
	assert.Equal(t, 0.0, card.ChangePercentage)
	assert.InDelta(t, 30.0, card.ProjectedAnnual, 1e-9)
}

func TestBuildDividendsCard_None(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, BuildDividendsCard(nil, asOf))
}
