package venue

import "github.com/saiputravu/venex/internal/xdecimal"

// PriceLevel is the FIFO queue of resting orders at a single price, plus the
// cached sum of their Remaining quantities (spec.md §3/§4.1). Orders are
// popped from the head (oldest first) and appended at the tail, giving
// strict time priority within the level.
type PriceLevel struct {
	queue []*Order
	total xdecimal.D
}

// NewPriceLevel returns an empty level.
func NewPriceLevel() *PriceLevel {
	return &PriceLevel{total: xdecimal.Zero}
}

// Total is the cached sum of queue[i].Remaining; authoritative for depth
// queries (spec.md §4.1).
func (l *PriceLevel) Total() xdecimal.D { return l.total }

// Empty reports whether the level has no resting orders left.
func (l *PriceLevel) Empty() bool { return len(l.queue) == 0 }

// Add appends order to the tail and increases total by its remaining
// quantity.
func (l *PriceLevel) Add(o *Order) {
	l.queue = append(l.queue, o)
	l.total = l.total.Add(o.Remaining)
}

// PeekOldest returns the head of the queue, or nil if empty.
func (l *PriceLevel) PeekOldest() *Order {
	if len(l.queue) == 0 {
		return nil
	}
	return l.queue[0]
}

// DecreaseOldest shrinks the head order's remaining by amount, popping it
// from the queue if it reaches zero, and adjusts total in lockstep.
func (l *PriceLevel) DecreaseOldest(amount xdecimal.D) {
	if len(l.queue) == 0 {
		return
	}
	oldest := l.queue[0]
	if amount.GreaterEqual(oldest.Remaining) {
		l.total = l.total.Sub(oldest.Remaining)
		oldest.Remaining = xdecimal.Zero
		l.queue = l.queue[1:]
		return
	}
	oldest.Remaining = oldest.Remaining.Sub(amount)
	l.total = l.total.Sub(amount)
}

// Remove scans the queue linearly for orderID and removes it, adjusting
// total. Used only by the cancel/modify path — the matcher never needs it
// (spec.md §4.1).
func (l *PriceLevel) Remove(orderID string) bool {
	for i, o := range l.queue {
		if o.ID != orderID {
			continue
		}
		l.total = l.total.Sub(o.Remaining)
		l.queue = append(l.queue[:i], l.queue[i+1:]...)
		return true
	}
	return false
}

// Orders returns the queue in FIFO order. Callers must not mutate the
// returned slice; it is exposed for snapshotting and tests only.
func (l *PriceLevel) Orders() []*Order { return l.queue }
