package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saiputravu/venex/internal/venue"
	"github.com/saiputravu/venex/internal/xdecimal"
)

// Submit runs a market/limit/ioc/fok order through the matching loop and
// returns its outcome (spec.md §4.3). order_type "stoploss" never reaches
// here directly — it is routed to PlaceStop and only arrives at Submit once
// triggered and rewritten to a market order (spec.md §4.4).
func (r *Registry) Submit(order *venue.Order) Result {
	start := time.Now()
	book := r.bookFor(order.Symbol)

	book.Lock()
	result, triggered := r.submitLocked(book, order)
	book.Unlock()

	r.metrics.submitLatency.WithLabelValues(order.Symbol, order.OrderType.String()).Observe(time.Since(start).Seconds())
	if len(result.Trades) > 0 {
		r.metrics.tradesTotal.WithLabelValues(order.Symbol).Add(float64(len(result.Trades)))
	}
	r.updateOpenOrdersMetric(order.Symbol)

	r.notifyDepth(order.Symbol)

	// Resubmission happens after the lock is released and outside this
	// call's stack, so a cascade (a triggered stop whose own fill trips a
	// further stop) never re-enters Submit while still holding a book's
	// mutex (spec.md §4.4, §9).
	for _, stop := range triggered {
		stop := stop
		r.pool.Dispatch(func() { r.Submit(stop) })
	}

	return result
}

// submitLocked runs the FOK pre-check, the matching loop, and the
// post-match disposition for order. Caller must hold book's lock for the
// whole call (spec.md §4.3, §9) — every trade's on-trade callback and stop
// trigger evaluation fires from inside this critical section.
func (r *Registry) submitLocked(book *venue.OrderBook, order *venue.Order) (Result, []*venue.Order) {
	isMarket := order.OrderType == venue.Market

	if order.OrderType == venue.FOK {
		if rejected, ok := r.checkFOK(book, order); ok {
			return rejected, nil
		}
	}

	var trades []venue.Trade
	var triggered []*venue.Order

	for order.Remaining.IsPositive() {
		if book.OppositeEmpty(order.Side) {
			break
		}

		bestPrice, level, ok := book.BestOpposite(order.Side)
		if !ok {
			break
		}
		if !isMarket && !crosses(order.Side, order.Price, bestPrice) {
			break
		}

		for order.Remaining.IsPositive() && !level.Empty() {
			resting := level.PeekOldest()

			tradeQty := xdecimal.Min(order.Remaining, resting.Remaining)
			execPrice := bestPrice
			if resting.HasPrice {
				execPrice = resting.Price
			}

			seq := book.NextTradeSeq()
			trade := venue.NewTrade(order.Symbol, seq, execPrice, tradeQty, order.Side, resting.ID, order.ID)

			order.Remaining = order.Remaining.Sub(tradeQty)
			level.DecreaseOldest(tradeQty)
			book.UnindexFilled(resting)

			trades = append(trades, trade)
			r.notifyTrade(trade)
			triggered = append(triggered, r.evaluateStopTriggers(trade)...)
		}

		book.DropOppositeLevelIfEmpty(order.Side, bestPrice)
	}

	return r.disposition(book, order, trades), triggered
}

// crosses reports whether a limit order on side resting/available at
// bestPrice is acceptable to an incoming limit/ioc/fok order at limitPrice.
func crosses(side venue.Side, limitPrice, bestPrice xdecimal.D) bool {
	if side == venue.Buy {
		return bestPrice.LessOrEqual(limitPrice)
	}
	return bestPrice.GreaterEqual(limitPrice)
}

// checkFOK implements spec.md §4.3's fill-or-kill pre-check: the order is
// rejected outright, before any trade executes, unless the opposite side
// can currently supply its full quantity at acceptable prices.
func (r *Registry) checkFOK(book *venue.OrderBook, order *venue.Order) (Result, bool) {
	if book.OppositeEmpty(order.Side) {
		r.metrics.fokRejectionsTotal.WithLabelValues(order.Symbol).Inc()
		return Result{OrderID: order.ID, Status: venue.StatusCanceled, Trades: []venue.Trade{}, Reason: venue.ReasonFOKNotFillable}, true
	}

	available := book.FOKAvailable(order.Side, !order.HasPrice, order.Price)
	if available.LessThan(order.Quantity) {
		r.metrics.fokRejectionsTotal.WithLabelValues(order.Symbol).Inc()
		return Result{OrderID: order.ID, Status: venue.StatusCanceled, Trades: []venue.Trade{}, Reason: venue.ReasonFOKNotFillable}, true
	}
	return Result{}, false
}

// disposition applies spec.md §4.3's per-order-type outcome table once the
// matching loop has run out of remaining quantity or crossable liquidity.
func (r *Registry) disposition(book *venue.OrderBook, order *venue.Order, trades []venue.Trade) Result {
	if trades == nil {
		trades = []venue.Trade{}
	}

	if order.Remaining.IsZero() {
		return Result{OrderID: order.ID, Status: venue.StatusFilled, Trades: trades}
	}

	switch order.OrderType {
	case venue.Limit:
		book.RegisterResting(order)
		status := venue.StatusResting
		if len(trades) > 0 {
			status = venue.StatusPartial
		}
		return Result{OrderID: order.ID, Status: status, Trades: trades}

	case venue.FOK:
		// Unreachable if checkFOK's pre-check and the matching loop agree on
		// available liquidity; guards against the book changing shape
		// between the two without corrupting state.
		log.Error().Err(errInvariantViolation).Str("order_id", order.ID).Msg("engine: fok order left unfilled remainder past the pre-check")
		return Result{OrderID: order.ID, Status: venue.StatusCanceled, Trades: []venue.Trade{}, Reason: venue.ReasonFOKNotFillable}

	default: // market, ioc
		status := venue.StatusCanceled
		if len(trades) > 0 {
			status = venue.StatusPartial
		}
		return Result{OrderID: order.ID, Status: status, Trades: trades}
	}
}

func (r *Registry) updateOpenOrdersMetric(symbol string) {
	bids, asks := r.bookFor(symbol).OpenOrderCounts()
	r.metrics.openOrders.WithLabelValues(symbol, "buy").Set(float64(bids))
	r.metrics.openOrders.WithLabelValues(symbol, "sell").Set(float64(asks))
}
