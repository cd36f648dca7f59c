package streaming

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saiputravu/venex/internal/venue"
)

// depthFrame is the l2_update wire frame of spec.md §6.
type depthFrame struct {
	Type      string      `json:"type"`
	Symbol    string      `json:"symbol"`
	Asks      [][2]string `json:"asks"`
	Bids      [][2]string `json:"bids"`
	Timestamp string      `json:"timestamp"`
}

// tradeFrame is the trade wire frame of spec.md §6: "all trade-record
// fields" plus a type discriminant.
type tradeFrame struct {
	Type string `json:"type"`
	venue.Trade
}

// PublishDepth broadcasts a depth snapshot to every market-data subscriber
// of its symbol. Intended as an engine.DepthListener.
func (m *Manager) PublishDepth(symbol string, snapshot venue.DepthSnapshot) {
	frame := depthFrame{
		Type:      "l2_update",
		Symbol:    symbol,
		Timestamp: snapshot.Timestamp.Format(time.RFC3339Nano),
	}
	for _, lvl := range snapshot.Asks {
		frame.Asks = append(frame.Asks, [2]string{lvl.Price.String(), lvl.Total.String()})
	}
	for _, lvl := range snapshot.Bids {
		frame.Bids = append(frame.Bids, [2]string{lvl.Price.String(), lvl.Total.String()})
	}

	payload, err := json.Marshal(frame)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("streaming: failed to marshal depth frame")
		return
	}
	m.market.broadcast(symbol, payload)
}

// PublishTrade broadcasts a trade to every trade-print subscriber of its
// symbol. Intended as an engine.TradeListener.
func (m *Manager) PublishTrade(trade venue.Trade) {
	payload, err := json.Marshal(tradeFrame{Type: "trade", Trade: trade})
	if err != nil {
		log.Error().Err(err).Str("symbol", trade.Symbol).Msg("streaming: failed to marshal trade frame")
		return
	}
	m.trades.broadcast(trade.Symbol, payload)
}
