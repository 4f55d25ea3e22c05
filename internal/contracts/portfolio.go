package contracts

import "time"

// Holding represents one position of a portfolio joined with its latest quote
// ⭐ SSOT: leaf fact sourced from the portfolio store and the quote feed
type Holding struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Shares        float64 `json:"shares"`
	CostBasis     float64 `json:"cost_basis"`     // total amount paid for the position
	Price         float64 `json:"price"`          // latest quote
	PreviousClose float64 `json:"previous_close"` // prior session close, 0 if unknown
	Sector        string  `json:"sector"`
	AssetClass    string  `json:"asset_class"` // allocation category, e.g. "US Equity", "Bonds"
}

// Value returns the market value of the position
func (h Holding) Value() float64 {
	return h.Shares * h.Price
}

// ReturnPercentage returns the unrealized return in whole percent
func (h Holding) ReturnPercentage() float64 {
	if h.CostBasis <= 0 {
		return 0
	}
	return (h.Value() - h.CostBasis) / h.CostBasis * 100
}

// DayChangePercentage returns today's price move in whole percent
func (h Holding) DayChangePercentage() float64 {
	if h.PreviousClose <= 0 {
		return 0
	}
	return (h.Price - h.PreviousClose) / h.PreviousClose * 100
}

// Category returns the allocation bucket of the holding
func (h Holding) Category() string {
	if h.AssetClass != "" {
		return h.AssetClass
	}
	if h.Sector != "" {
		return h.Sector
	}
	return "Other"
}

// DividendPayment represents a received dividend
type DividendPayment struct {
	Ticker string    `json:"ticker"`
	PaidOn time.Time `json:"paid_on"`
	Amount float64   `json:"amount"`
}

// ValuePoint is one day of portfolio value history
type ValuePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// PortfolioSnapshot is everything the dashboard needs for one portfolio,
// loaded by the persistence layer
type PortfolioSnapshot struct {
	PortfolioID       string            `json:"portfolio_id"`
	AsOf              time.Time         `json:"as_of"`
	Cash              float64           `json:"cash"`
	Holdings          []Holding         `json:"holdings"`
	Dividends         []DividendPayment `json:"dividends"`           // at least current and previous month
	ValueHistory      []ValuePoint      `json:"value_history"`       // ascending by date
	BenchmarkHistory  []ValuePoint      `json:"benchmark_history"`   // ascending by date
	PreviousRiskScore float64           `json:"previous_risk_score"` // 0 when no earlier summary
}

// TotalValue returns holdings value plus cash
func (p *PortfolioSnapshot) TotalValue() float64 {
	total := p.Cash
	for _, h := range p.Holdings {
		total += h.Value()
	}
	return total
}

// GetHolding finds a holding by ticker
func (p *PortfolioSnapshot) GetHolding(ticker string) (*Holding, bool) {
	for i := range p.Holdings {
		if p.Holdings[i].Ticker == ticker {
			return &p.Holdings[i], true
		}
	}
	return nil, false
}
