package engine

import "github.com/saiputravu/venex/internal/venue"

// Result is the outcome envelope of a Submit call (spec.md §4.3).
type Result struct {
	OrderID string
	Status  venue.Status
	Trades  []venue.Trade
	Reason  string // only set on a canceled FOK (fok_not_fillable)
}
