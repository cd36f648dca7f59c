package engine

import (
	"time"

	"github.com/saiputravu/venex/internal/venue"
)

// CancelOrder removes a resting limit order by id, searching every book
// since the caller need not know which symbol owns it (spec.md §4.5).
// Returns ErrOrderNotFound if id is not resting anywhere.
func (r *Registry) CancelOrder(id string) error {
	for _, book := range r.allBooks() {
		if book.CancelResting(id) {
			r.updateOpenOrdersMetric(book.Symbol)
			r.notifyDepth(book.Symbol)
			return nil
		}
	}
	return ErrOrderNotFound
}

// ModifyOrder changes a resting limit order's quantity and/or price. venex
// takes choice (b) of spec.md §4.5's modify design note (see DESIGN.md
// OQ-2): the order is atomically removed from its level and resubmitted
// through Submit, so a modify that newly crosses the book matches
// immediately instead of waiting, and the order always loses time priority
// — even at an unchanged price — by re-entering at the tail of its level.
// A nil argument leaves that field unchanged.
func (r *Registry) ModifyOrder(id string, newQuantity, newPrice *venue.Quantity) (Result, error) {
	for _, book := range r.allBooks() {
		existing, ok := book.TakeResting(id)
		if !ok {
			continue
		}

		if newQuantity != nil {
			existing.Quantity = *newQuantity
			existing.Remaining = *newQuantity
		}
		if newPrice != nil {
			existing.Price = *newPrice
		}
		existing.Timestamp = time.Now().UTC()

		return r.Submit(existing), nil
	}
	return Result{}, ErrOrderNotFound
}
