package contracts

import "errors"

// ErrPortfolioNotFound the portfolio id is unknown to the persistence layer
var ErrPortfolioNotFound = errors.New("portfolio not found")
