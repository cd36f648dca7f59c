package venue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saiputravu/venex/internal/venue"
	"github.com/saiputravu/venex/internal/xdecimal"
)

func restingOrder(symbol string, side venue.Side, price, qty string) *venue.Order {
	return venue.NewOrder(symbol, side, venue.Limit, xdecimal.MustParse(qty), xdecimal.MustParse(price), true)
}

func TestOrderBook_BBO_EmptyBook(t *testing.T) {
	book := venue.NewOrderBook("BTC-USDT")
	bbo := book.BBO()
	assert.Nil(t, bbo.BestBid)
	assert.Nil(t, bbo.BestAsk)
}

func TestOrderBook_BBO_BestBidIsHighest(t *testing.T) {
	book := venue.NewOrderBook("BTC-USDT")
	book.Lock()
	book.RegisterResting(restingOrder("BTC-USDT", venue.Buy, "99", "1"))
	book.RegisterResting(restingOrder("BTC-USDT", venue.Buy, "101", "1"))
	book.Unlock()

	bbo := book.BBO()
	assert.Equal(t, "101", bbo.BestBid.Price.String())
}

func TestOrderBook_BBO_BestAskIsLowest(t *testing.T) {
	book := venue.NewOrderBook("BTC-USDT")
	book.Lock()
	book.RegisterResting(restingOrder("BTC-USDT", venue.Sell, "102", "1"))
	book.RegisterResting(restingOrder("BTC-USDT", venue.Sell, "100", "1"))
	book.Unlock()

	bbo := book.BBO()
	assert.Equal(t, "100", bbo.BestAsk.Price.String())
}

func TestOrderBook_Depth_OrderingAndLimit(t *testing.T) {
	book := venue.NewOrderBook("BTC-USDT")
	book.Lock()
	book.RegisterResting(restingOrder("BTC-USDT", venue.Sell, "101", "1"))
	book.RegisterResting(restingOrder("BTC-USDT", venue.Sell, "100", "1"))
	book.RegisterResting(restingOrder("BTC-USDT", venue.Sell, "102", "1"))
	book.RegisterResting(restingOrder("BTC-USDT", venue.Buy, "99", "1"))
	book.RegisterResting(restingOrder("BTC-USDT", venue.Buy, "98", "1"))
	book.Unlock()

	depth := book.Depth(2)
	assert.Equal(t, []string{"100", "101"}, []string{depth.Asks[0].Price.String(), depth.Asks[1].Price.String()})
	assert.Len(t, depth.Asks, 2, "third ask level dropped by depth=2")
	assert.Equal(t, []string{"99", "98"}, []string{depth.Bids[0].Price.String(), depth.Bids[1].Price.String()})
}

func TestOrderBook_CancelResting_DropsEmptyLevel(t *testing.T) {
	book := venue.NewOrderBook("BTC-USDT")
	book.Lock()
	order := restingOrder("BTC-USDT", venue.Buy, "99", "1")
	book.RegisterResting(order)
	book.Unlock()

	assert.True(t, book.CancelResting(order.ID))
	bbo := book.BBO()
	assert.Nil(t, bbo.BestBid)

	_, ok := book.OrderByID(order.ID)
	assert.False(t, ok)
}

func TestOrderBook_CancelResting_UnknownID(t *testing.T) {
	book := venue.NewOrderBook("BTC-USDT")
	assert.False(t, book.CancelResting("nope"))
}
