// Package api is the HTTP boundary of venex: request/response shapes and
// gin handlers wired directly to an engine.Registry (spec.md §6). It owns
// none of the matching semantics — every handler is a thin translation
// between JSON and the engine.Registry call that does the real work.
package api

import (
	"github.com/saiputravu/venex/internal/venue"
	"github.com/saiputravu/venex/internal/xdecimal"
)

// OrderRequest is the body of POST /orders (spec.md §6).
type OrderRequest struct {
	Symbol    string  `json:"symbol" validate:"required"`
	OrderType string  `json:"order_type" validate:"required,oneof=market limit ioc fok stoploss"`
	Side      string  `json:"side" validate:"required,oneof=buy sell"`
	Quantity  string  `json:"quantity" validate:"required"`
	Price     *string `json:"price,omitempty"`
}

// ModifyRequest is the body of PUT /orders/{id} and PUT /stoporder/{id}
// (spec.md §4.5/§6). Either field may be omitted to leave it unchanged.
type ModifyRequest struct {
	Quantity *string `json:"quantity,omitempty"`
	Price    *string `json:"price,omitempty"`
}

// SeedRequest is the body of the supplemented POST /demo/seed endpoint
// (SPEC_FULL.md §6): a ladder of resting orders to place on a symbol for
// manual testing.
type SeedRequest struct {
	Symbol string      `json:"symbol" validate:"required"`
	Bids   []SeedLevel `json:"bids,omitempty"`
	Asks   []SeedLevel `json:"asks,omitempty"`
}

// SeedLevel is one resting limit order in a SeedRequest ladder.
type SeedLevel struct {
	Price    string `json:"price" validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
}

// orderResponse is the live-order branch of POST /orders' response.
type orderResponse struct {
	OrderID string        `json:"order_id"`
	Status  venue.Status  `json:"status"`
	Trades  []venue.Trade `json:"trades"`
	Reason  string        `json:"reason,omitempty"`
}

// stopPlacedResponse is the stop-order branch of POST /orders' response.
type stopPlacedResponse struct {
	OrderID      string      `json:"order_id"`
	Status       string      `json:"status"`
	TriggerPrice venue.Price `json:"trigger_price"`
}

// canceledResponse is DELETE /order/{id} and DELETE /stoporder/{id}'s body.
type canceledResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// modifiedStopResponse is PUT /stoporder/{id}'s body.
type modifiedStopResponse struct {
	OrderID         string     `json:"order_id"`
	Status          string     `json:"status"`
	NewQuantity     xdecimal.D `json:"new_quantity"`
	NewTriggerPrice xdecimal.D `json:"new_trigger_price"`
}

// bookResponse is GET /book/{symbol}'s body (spec.md §6).
type bookResponse struct {
	Symbol     string          `json:"symbol"`
	OrderBook  orderBookView   `json:"order_book"`
	StopOrders []stopOrderView `json:"stop_orders"`
}

type orderBookView struct {
	Asks      [][2]string `json:"asks"`
	Bids      [][2]string `json:"bids"`
	Timestamp string      `json:"timestamp"`
}

type stopOrderView struct {
	OrderID      string `json:"order_id"`
	Side         string `json:"side"`
	Quantity     string `json:"quantity"`
	TriggerPrice string `json:"trigger_price"`
	OrderType    string `json:"order_type"`
}

// bboResponse is GET /bbo/{symbol}'s body.
type bboResponse struct {
	Symbol    string     `json:"symbol"`
	BestBid   *levelView `json:"best_bid"`
	BestAsk   *levelView `json:"best_ask"`
	Timestamp string     `json:"timestamp"`
}

type levelView struct {
	Price string `json:"price"`
	Total string `json:"total"`
}

// errorResponse is the body of every non-2xx response (spec.md §7).
type errorResponse struct {
	Error string `json:"error"`
}
