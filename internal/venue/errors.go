package venue

import "errors"

var (
	// ErrInvalidEnum is returned when a side/order_type string fails to parse.
	ErrInvalidEnum = errors.New("venue: invalid enum value")

	// ErrNonPositiveQuantity means quantity was <= 0.
	ErrNonPositiveQuantity = errors.New("venue: quantity must be positive")

	// ErrNonPositivePrice means price was <= 0.
	ErrNonPositivePrice = errors.New("venue: price must be positive")

	// ErrPriceRequired means the order type requires a price and none was given.
	ErrPriceRequired = errors.New("venue: this order type requires a price")
)
