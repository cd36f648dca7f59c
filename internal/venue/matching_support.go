package venue

import "github.com/saiputravu/venex/internal/xdecimal"

// The methods in this file are the low-level primitives the matcher
// (internal/engine) composes into the submit state machine of spec.md
// §4.3. None of them acquire b.mu themselves — the matcher runs the whole
// submit as a single critical section (spec.md §4.3/§9), so every method
// here requires the caller to already hold the book's lock via Lock/Unlock.

// OppositeEmpty reports whether the book side opposite to side has no
// resting liquidity at all.
func (b *OrderBook) OppositeEmpty(side Side) bool {
	return oppositeTree(b, side).Len() == 0
}

// BestOpposite returns the best resting price and level on the side
// opposite to side (lowest ask for a buy, highest bid for a sell), or
// ok=false if that side is empty.
func (b *OrderBook) BestOpposite(side Side) (price xdecimal.D, level *PriceLevel, ok bool) {
	tree := oppositeTree(b, side)
	var e levelEntry
	if side == Buy {
		e, ok = tree.Min() // lowest ask
	} else {
		e, ok = tree.Max() // highest bid
	}
	if !ok {
		return xdecimal.D{}, nil, false
	}
	return e.price, e.level, true
}

// DropOppositeLevelIfEmpty deletes the opposite-side level at price if it
// has been fully drained.
func (b *OrderBook) DropOppositeLevelIfEmpty(side Side, price xdecimal.D) {
	dropIfEmpty(oppositeTree(b, side), price)
}

// UnindexFilled removes a fully-filled resting order from the id index. The
// level itself has already popped it (PriceLevel.DecreaseOldest pops the
// head once its remaining reaches zero) — this keeps the id index and the
// owning level's removal in the same critical section (spec.md §9
// Ownership).
func (b *OrderBook) UnindexFilled(o *Order) {
	if o.IsFilled() {
		delete(b.orders, o.ID)
	}
}

// FOKAvailable computes the total resting quantity on the opposite side
// that would be acceptable to a FOK order, per spec.md §4.3's pre-check:
//   - market FOK: sum the entire opposite book.
//   - limit FOK buy: sum ask levels with price <= limitPrice, stopping at
//     the first unacceptable level.
//   - limit FOK sell: sum bid levels with price >= limitPrice, stopping at
//     the first unacceptable level.
func (b *OrderBook) FOKAvailable(side Side, isMarket bool, limitPrice xdecimal.D) xdecimal.D {
	total := xdecimal.Zero
	tree := oppositeTree(b, side)

	if isMarket {
		tree.Scan(func(e levelEntry) bool {
			total = total.Add(e.level.Total())
			return true
		})
		return total
	}

	if side == Buy {
		// asks ascending; stop at first level above limitPrice.
		tree.Scan(func(e levelEntry) bool {
			if e.price.GreaterThan(limitPrice) {
				return false
			}
			total = total.Add(e.level.Total())
			return true
		})
		return total
	}

	// sell: bids descending; stop at first level below limitPrice.
	tree.Reverse(func(e levelEntry) bool {
		if e.price.LessThan(limitPrice) {
			return false
		}
		total = total.Add(e.level.Total())
		return true
	})
	return total
}
