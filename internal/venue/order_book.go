package venue

import (
	"sync"
	"time"

	"github.com/tidwall/btree"

	"github.com/saiputravu/venex/internal/xdecimal"
)

// levelEntry pairs a price with the PriceLevel resting there. It is the
// element type of the book's sorted maps, mirroring the teacher's
// (unused, in the copied source) `PriceLevel{priceLevel float64, orders
// []*Order}` btree element — generalized here to a decimal key with the
// actual PriceLevel type as the payload.
type levelEntry struct {
	price xdecimal.D
	level *PriceLevel
}

// OrderBook is the per-symbol book: two price-sorted maps, an id index,
// the submit mutex, and the trade sequence counter (spec.md §3).
type OrderBook struct {
	Symbol string

	mu sync.Mutex

	bids *btree.BTreeG[levelEntry] // sorted ascending by price; best bid is Max
	asks *btree.BTreeG[levelEntry] // sorted ascending by price; best ask is Min

	orders map[string]*Order // id -> resting order, for this book

	tradeSeq uint64
}

// NewOrderBook constructs an empty book for symbol.
func NewOrderBook(symbol string) *OrderBook {
	byPriceAsc := func(a, b levelEntry) bool { return a.price.LessThan(b.price) }
	return &OrderBook{
		Symbol: symbol,
		bids:   btree.NewBTreeG(byPriceAsc),
		asks:   btree.NewBTreeG(byPriceAsc),
		orders: make(map[string]*Order),
	}
}

// Lock/Unlock expose the book's single mutex so the matcher can run an
// entire submit as one critical section (spec.md §4.3, §5).
func (b *OrderBook) Lock()   { b.mu.Lock() }
func (b *OrderBook) Unlock() { b.mu.Unlock() }

func sideTree(b *OrderBook, side Side) *btree.BTreeG[levelEntry] {
	if side == Buy {
		return b.bids
	}
	return b.asks
}

func oppositeTree(b *OrderBook, side Side) *btree.BTreeG[levelEntry] {
	if side == Buy {
		return b.asks
	}
	return b.bids
}

// ensureLevel returns the level at price in tree, creating it if absent.
// Caller must hold b.mu.
func ensureLevel(tree *btree.BTreeG[levelEntry], price xdecimal.D) *PriceLevel {
	if e, ok := tree.Get(levelEntry{price: price}); ok {
		return e.level
	}
	level := NewPriceLevel()
	tree.Set(levelEntry{price: price, level: level})
	return level
}

// dropIfEmpty deletes the level at price from tree if it has no resting
// orders left (spec.md §3: "no empty level may linger"). Caller must hold
// b.mu.
func dropIfEmpty(tree *btree.BTreeG[levelEntry], price xdecimal.D) {
	if e, ok := tree.Get(levelEntry{price: price}); ok && e.level.Empty() {
		tree.Delete(levelEntry{price: price})
	}
}

// RegisterResting adds order to its side's book at its price and indexes it
// by id. Caller must hold b.mu.
func (b *OrderBook) RegisterResting(o *Order) {
	tree := sideTree(b, o.Side)
	level := ensureLevel(tree, o.Price)
	level.Add(o)
	b.orders[o.ID] = o
}

// NextTradeSeq increments and returns the book's trade sequence counter.
// Caller must hold b.mu.
func (b *OrderBook) NextTradeSeq() uint64 {
	b.tradeSeq++
	return b.tradeSeq
}

// OrderByID looks up a resting order on this book. Caller must hold b.mu
// or accept a racy read.
func (b *OrderBook) OrderByID(id string) (*Order, bool) {
	o, ok := b.orders[id]
	return o, ok
}

// LevelQuote is a single [price, total] entry as used by BBO/depth reads.
type LevelQuote struct {
	Price xdecimal.D
	Total xdecimal.D
}

// BBOSnapshot is the result of a BBO read (spec.md §4.2).
type BBOSnapshot struct {
	Symbol    string
	BestBid   *LevelQuote
	BestAsk   *LevelQuote
	Timestamp time.Time
}

// BBO returns the best bid/offer, acquiring the book mutex for the read's
// duration (spec.md §4.2).
func (b *OrderBook) BBO() BBOSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := BBOSnapshot{Symbol: b.Symbol, Timestamp: time.Now().UTC()}
	if e, ok := b.bids.Max(); ok {
		snap.BestBid = &LevelQuote{Price: e.price, Total: e.level.Total()}
	}
	if e, ok := b.asks.Min(); ok {
		snap.BestAsk = &LevelQuote{Price: e.price, Total: e.level.Total()}
	}
	return snap
}

// DepthSnapshot is the result of a depth read (spec.md §4.2).
type DepthSnapshot struct {
	Symbol    string
	Asks      []LevelQuote // ascending price
	Bids      []LevelQuote // descending price
	Timestamp time.Time
}

// Depth returns up to k levels per side: asks ascending, bids descending
// (spec.md §4.2), acquiring the book mutex for the read's duration.
func (b *OrderBook) Depth(k int) DepthSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.depthLocked(k)
}

func (b *OrderBook) depthLocked(k int) DepthSnapshot {
	snap := DepthSnapshot{Symbol: b.Symbol, Timestamp: time.Now().UTC()}

	b.asks.Scan(func(e levelEntry) bool {
		if len(snap.Asks) >= k {
			return false
		}
		snap.Asks = append(snap.Asks, LevelQuote{Price: e.price, Total: e.level.Total()})
		return true
	})
	b.bids.Reverse(func(e levelEntry) bool {
		if len(snap.Bids) >= k {
			return false
		}
		snap.Bids = append(snap.Bids, LevelQuote{Price: e.price, Total: e.level.Total()})
		return true
	})
	return snap
}

// TakeResting atomically finds, unindexes, and removes a resting order by
// id, returning it. Cancel discards the result; modify (spec.md §4.5,
// DESIGN.md OQ-2) reuses the same order value and resubmits it.
func (b *OrderBook) TakeResting(id string) (*Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.orders[id]
	if !ok {
		return nil, false
	}
	tree := sideTree(b, o.Side)
	if e, ok := tree.Get(levelEntry{price: o.Price}); ok {
		e.level.Remove(id)
		dropIfEmpty(tree, o.Price)
	}
	delete(b.orders, id)
	return o, true
}

// CancelResting removes a resting order by id, dropping the level if it
// becomes empty and deleting the id index entry, all under the book's lock
// (spec.md §4.5). Returns false if id is not resting on this book.
func (b *OrderBook) CancelResting(id string) bool {
	_, ok := b.TakeResting(id)
	return ok
}

// OpenOrderCounts returns the number of resting orders per side, for the
// open_orders gauge (spec.md §4.2 is silent on this; it is ambient
// observability, not a booked quantity).
func (b *OrderBook) OpenOrderCounts() (bids int, asks int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, o := range b.orders {
		if o.Side == Buy {
			bids++
		} else {
			asks++
		}
	}
	return bids, asks
}
