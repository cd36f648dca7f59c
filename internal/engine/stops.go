package engine

import "github.com/saiputravu/venex/internal/venue"

// stopBucket holds the pending stop orders for one symbol. It is reachable
// from Registry.stops under r.mu, but its contents (the orders slice) are
// mutated only while the owning symbol's book lock is held — the same
// discipline spec.md §4.4 requires of the reference stop registry, so a
// trigger evaluation and a concurrent CancelStop/ModifyStop can never race.
type stopBucket struct {
	orders []*venue.Order
}

// stopsFor returns the bucket for symbol, creating it on first use.
func (r *Registry) stopsFor(symbol string) *stopBucket {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.stops[symbol]
	if !ok {
		b = &stopBucket{}
		r.stops[symbol] = b
	}
	return b
}

// PlaceStop registers a stop order directly in the pending registry without
// ever entering the matching loop (spec.md §4.4: a stop order only becomes a
// market order once triggered). Callers route here instead of Submit for
// order_type "stoploss".
func (r *Registry) PlaceStop(order *venue.Order) Result {
	book := r.bookFor(order.Symbol)
	bucket := r.stopsFor(order.Symbol)

	book.Lock()
	bucket.orders = append(bucket.orders, order)
	book.Unlock()

	return Result{OrderID: order.ID, Status: venue.StatusStopPlaced, Trades: []venue.Trade{}}
}

// ListStops returns a snapshot of the pending stop orders for symbol.
func (r *Registry) ListStops(symbol string) []*venue.Order {
	book := r.bookFor(symbol)
	bucket := r.stopsFor(symbol)

	book.Lock()
	defer book.Unlock()
	out := make([]*venue.Order, len(bucket.orders))
	copy(out, bucket.orders)
	return out
}

// evaluateStopTriggers inspects the pending stops for trade.Symbol against
// trade.Price and removes any that fire, rewriting them to market orders
// (spec.md §4.4: "buy stop fires when trade_price >= trigger_price", "sell
// stop fires when trade_price <= trigger_price"). Called from inside
// submitLocked, so it runs under the same book lock as the trade that may
// have triggered it — triggered orders are returned for the caller to
// dispatch once that lock is released, never resubmitted here directly.
func (r *Registry) evaluateStopTriggers(trade venue.Trade) []*venue.Order {
	bucket := r.stopsFor(trade.Symbol)

	remaining := bucket.orders[:0:0]
	var triggered []*venue.Order
	for _, stop := range bucket.orders {
		fires := (stop.Side == venue.Buy && trade.Price.GreaterEqual(stop.Price)) ||
			(stop.Side == venue.Sell && trade.Price.LessOrEqual(stop.Price))
		if !fires {
			remaining = append(remaining, stop)
			continue
		}
		stop.OrderType = venue.Market
		stop.HasPrice = false
		triggered = append(triggered, stop)
	}
	bucket.orders = remaining

	return triggered
}

// CancelStop removes a pending stop order by id. Returns ErrStopNotFound if
// id is not pending on any symbol.
func (r *Registry) CancelStop(id string) error {
	for _, symbol := range r.allStopSymbols() {
		book := r.bookFor(symbol)
		bucket := r.stopsFor(symbol)

		book.Lock()
		for i, o := range bucket.orders {
			if o.ID != id {
				continue
			}
			bucket.orders = append(bucket.orders[:i], bucket.orders[i+1:]...)
			book.Unlock()
			return nil
		}
		book.Unlock()
	}
	return ErrStopNotFound
}

// ModifyStop updates a pending stop order's quantity and/or trigger price
// in place (spec.md §4.5: "no reordering, no re-evaluation against the
// current book — it only matters the next time a trade occurs"). A nil
// argument leaves that field unchanged. Returns the updated order so the
// caller can render new_quantity/new_trigger_price in the response.
func (r *Registry) ModifyStop(id string, newQuantity, newTriggerPrice *venue.Quantity) (*venue.Order, error) {
	for _, symbol := range r.allStopSymbols() {
		book := r.bookFor(symbol)
		bucket := r.stopsFor(symbol)

		book.Lock()
		for _, o := range bucket.orders {
			if o.ID != id {
				continue
			}
			if newQuantity != nil {
				o.Quantity = *newQuantity
				o.Remaining = *newQuantity
			}
			if newTriggerPrice != nil {
				o.Price = *newTriggerPrice
			}
			book.Unlock()
			return o, nil
		}
		book.Unlock()
	}
	return nil, ErrStopNotFound
}
