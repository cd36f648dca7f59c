package engine

import (
	"sync"

	tomb "gopkg.in/tomb.v2"

	"github.com/saiputravu/venex/internal/venue"
	"github.com/saiputravu/venex/internal/wpool"
)

const defaultStopWorkerPoolSize = 4

// TradeListener is notified of every trade the engine executes, on every
// symbol. It is invoked while the originating book's lock is held (spec.md
// §4.3/§9) — implementations must not call back into the Registry.
type TradeListener func(venue.Trade)

// DepthListener is notified after any matcher-affecting event (submit,
// cancel, modify) with a fresh depth snapshot (spec.md §6).
type DepthListener func(symbol string, depth venue.DepthSnapshot)

// Registry is the single encapsulating handle owning every per-symbol book
// and stop list (spec.md §9: "not as free-floating globals"). It replaces
// the teacher's `Engine{Books map[AssetType]OrderBook}` and the original's
// module-level `books`/`stop_orders` dicts with one process-wide object a
// bootstrap constructs once.
type Registry struct {
	defaultDepth int

	mu    sync.Mutex // guards books/stops map membership only, never their contents
	books map[string]*venue.OrderBook
	stops map[string]*stopBucket

	tradeListeners []TradeListener
	depthListeners []DepthListener

	pool *wpool.Pool

	metrics Metrics
}

// New constructs a Registry. t supervises the stop-resubmission worker pool;
// callers should stop t (and thus the pool) on shutdown.
func New(t *tomb.Tomb, defaultDepth int) *Registry {
	return &Registry{
		defaultDepth: defaultDepth,
		books:        make(map[string]*venue.OrderBook),
		stops:        make(map[string]*stopBucket),
		pool:         wpool.New(t, defaultStopWorkerPoolSize),
		metrics:      newMetrics(),
	}
}

// Metrics exposes the registry's Prometheus instruments for registration
// against a prometheus.Registerer (left to cmd/venexd, per the teacher's
// convention of wiring infrastructure in main rather than a library
// package reaching for the global default registry itself).
func (r *Registry) Metrics() Metrics { return r.metrics }

// OnTrade registers a listener invoked for every executed trade.
func (r *Registry) OnTrade(l TradeListener) { r.tradeListeners = append(r.tradeListeners, l) }

// OnDepthChange registers a listener invoked after any matcher-affecting
// event.
func (r *Registry) OnDepthChange(l DepthListener) { r.depthListeners = append(r.depthListeners, l) }

// bookFor returns the book for symbol, creating it if this is the first
// order ever seen for that symbol.
func (r *Registry) bookFor(symbol string) *venue.OrderBook {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[symbol]
	if !ok {
		b = venue.NewOrderBook(symbol)
		r.books[symbol] = b
	}
	return b
}

// Book exposes the book for symbol for read-only queries (BBO/depth), not
// for mutation — callers outside this package must go through Submit/
// Cancel/Modify to preserve lock discipline.
func (r *Registry) Book(symbol string) *venue.OrderBook { return r.bookFor(symbol) }

// allBooks snapshots the current set of books, for cancel/modify's
// search-by-id (spec.md §4.5 does not require the caller to know which
// symbol owns an id).
func (r *Registry) allBooks() []*venue.OrderBook {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*venue.OrderBook, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	return out
}

// allStopSymbols snapshots the set of symbols with a stop bucket.
func (r *Registry) allStopSymbols() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.stops))
	for s := range r.stops {
		out = append(out, s)
	}
	return out
}

func (r *Registry) notifyDepth(symbol string) {
	depth := r.bookFor(symbol).Depth(r.defaultDepth)
	for _, l := range r.depthListeners {
		l(symbol, depth)
	}
}

func (r *Registry) notifyTrade(trade venue.Trade) {
	for _, l := range r.tradeListeners {
		l(trade)
	}
}
