package venue

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saiputravu/venex/internal/xdecimal"
)

// Maker and taker fee rates, per spec.md §4.3. Maker is a rebate, encoded
// with a negative sign.
var (
	MakerFeeRate = xdecimal.MustParse("-0.0002")
	TakerFeeRate = xdecimal.MustParse("0.0010")
)

// Trade records a single execution between a resting maker and an incoming
// taker. Fees are reported, never settled, per spec.md §4.3.
type Trade struct {
	Timestamp     time.Time  `json:"timestamp"`
	Symbol        string     `json:"symbol"`
	TradeID       string     `json:"trade_id"`
	Price         xdecimal.D `json:"price"`
	Quantity      xdecimal.D `json:"quantity"`
	TradeValue    xdecimal.D `json:"trade_value"`
	AggressorSide Side       `json:"aggressor_side"`
	MakerOrderID  string     `json:"maker_order_id"`
	TakerOrderID  string     `json:"taker_order_id"`
	MakerFee      xdecimal.D `json:"maker_fee"`
	TakerFee      xdecimal.D `json:"taker_fee"`
}

// NewTrade computes trade_value and fees from price/quantity and stamps a
// trade id of the form "<symbol>-<seq>-<uuid>" (spec.md §3).
func NewTrade(symbol string, seq uint64, price, quantity xdecimal.D, aggressor Side, makerID, takerID string) Trade {
	value := price.Mul(quantity)
	return Trade{
		Timestamp:     time.Now().UTC(),
		Symbol:        symbol,
		TradeID:       fmt.Sprintf("%s-%d-%s", symbol, seq, uuid.NewString()),
		Price:         price,
		Quantity:      quantity,
		TradeValue:    value,
		AggressorSide: aggressor,
		MakerOrderID:  makerID,
		TakerOrderID:  takerID,
		MakerFee:      value.Mul(MakerFeeRate),
		TakerFee:      value.Mul(TakerFeeRate),
	}
}
