package venue

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saiputravu/venex/internal/xdecimal"
)

// Order is a single order tracked by the matching engine. ID, Symbol and
// Side are fixed at construction. The matching loop only decrements
// Remaining; a modify rewrites Quantity, Remaining and Price (and, for a
// resting order, Timestamp), and a triggered stop has OrderType rewritten to
// Market and HasPrice cleared.
type Order struct {
	ID        string
	Symbol    string
	Side      Side
	OrderType OrderType

	Quantity Quantity
	Price    Price // zero value means "no price" (market orders)
	HasPrice bool

	Remaining Quantity

	Timestamp time.Time // diagnostics only; priority is queue position
	CreatedAt string    // ISO-8601 UTC, formatted once at construction
}

// Quantity and Price are both xdecimal.D; the aliases exist purely so field
// declarations above read as what they are rather than as interchangeable D
// values.
type Quantity = xdecimal.D
type Price = xdecimal.D

// NewOrder constructs an order with Remaining initialized to quantity, per
// spec.md §3's invariant "remaining initialized to quantity."
func NewOrder(symbol string, side Side, orderType OrderType, quantity Quantity, price Price, hasPrice bool) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Side:      side,
		OrderType: orderType,
		Quantity:  quantity,
		Price:     price,
		HasPrice:  hasPrice,
		Remaining: quantity,
		Timestamp: now,
		CreatedAt: now.Format(time.RFC3339Nano),
	}
}

// IsFilled reports whether the order has no remaining quantity.
func (o *Order) IsFilled() bool { return o.Remaining.IsZero() }

func (o *Order) String() string {
	price := "-"
	if o.HasPrice {
		price = o.Price.String()
	}
	return fmt.Sprintf(
		"Order{id=%s symbol=%s side=%s type=%s qty=%s remaining=%s price=%s}",
		o.ID, o.Symbol, o.Side, o.OrderType, o.Quantity, o.Remaining, price,
	)
}
