package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tomb "gopkg.in/tomb.v2"

	"github.com/saiputravu/venex/internal/engine"
	"github.com/saiputravu/venex/internal/venue"
	"github.com/saiputravu/venex/internal/xdecimal"
)

const symbol = "BTC-USDT"

func newTestRegistry(t *testing.T) *engine.Registry {
	t.Helper()
	var tb tomb.Tomb
	r := engine.New(&tb, 10)
	t.Cleanup(func() {
		tb.Kill(nil)
		_ = tb.Wait()
	})
	return r
}

func limitOrder(side venue.Side, qty, price string) *venue.Order {
	return venue.NewOrder(symbol, side, venue.Limit, xdecimal.MustParse(qty), xdecimal.MustParse(price), true)
}

func marketOrder(side venue.Side, qty string) *venue.Order {
	return venue.NewOrder(symbol, side, venue.Market, xdecimal.MustParse(qty), xdecimal.D{}, false)
}

func iocOrder(side venue.Side, qty, price string) *venue.Order {
	return venue.NewOrder(symbol, side, venue.IOC, xdecimal.MustParse(qty), xdecimal.MustParse(price), true)
}

func fokOrder(side venue.Side, qty, price string, hasPrice bool) *venue.Order {
	p := xdecimal.D{}
	if hasPrice {
		p = xdecimal.MustParse(price)
	}
	return venue.NewOrder(symbol, side, venue.FOK, xdecimal.MustParse(qty), p, hasPrice)
}

func TestSubmit_RestingLimitNoCross(t *testing.T) {
	r := newTestRegistry(t)
	result := r.Submit(limitOrder(venue.Buy, "1", "100"))
	assert.Equal(t, venue.StatusResting, result.Status)
	assert.Empty(t, result.Trades)

	bbo := r.Book(symbol).BBO()
	require.NotNil(t, bbo.BestBid)
	assert.Equal(t, "100", bbo.BestBid.Price.String())
}

func TestSubmit_LimitCrossesFillsBoth(t *testing.T) {
	r := newTestRegistry(t)
	r.Submit(limitOrder(venue.Sell, "1", "100"))

	result := r.Submit(limitOrder(venue.Buy, "1", "100"))
	require.Len(t, result.Trades, 1)
	assert.Equal(t, venue.StatusFilled, result.Status)

	trade := result.Trades[0]
	assert.Equal(t, "100", trade.Price.String())
	assert.Equal(t, "1", trade.Quantity.String())
	assert.Equal(t, "100", trade.TradeValue.String())
	assert.True(t, trade.MakerFee.IsNegative(), "maker fee is a rebate")
	assert.True(t, trade.TakerFee.IsPositive())

	bbo := r.Book(symbol).BBO()
	assert.Nil(t, bbo.BestBid)
	assert.Nil(t, bbo.BestAsk)
}

func TestSubmit_PriceTimePriority_OldestRestingFirst(t *testing.T) {
	r := newTestRegistry(t)
	first := limitOrder(venue.Sell, "1", "100")
	second := limitOrder(venue.Sell, "1", "100")
	r.Submit(first)
	r.Submit(second)

	result := r.Submit(limitOrder(venue.Buy, "1", "100"))
	require.Len(t, result.Trades, 1)
	assert.Equal(t, first.ID, result.Trades[0].MakerOrderID)
}

func TestSubmit_MarketSweepsMultipleLevels(t *testing.T) {
	r := newTestRegistry(t)
	r.Submit(limitOrder(venue.Sell, "1", "100"))
	r.Submit(limitOrder(venue.Sell, "1", "101"))

	result := r.Submit(marketOrder(venue.Buy, "1.5"))
	require.Len(t, result.Trades, 2)
	assert.Equal(t, venue.StatusFilled, result.Status)
	assert.Equal(t, "100", result.Trades[0].Price.String())
	assert.Equal(t, "1", result.Trades[0].Quantity.String())
	assert.Equal(t, "101", result.Trades[1].Price.String())
	assert.Equal(t, "0.5", result.Trades[1].Quantity.String())
}

func TestSubmit_MarketWithNoLiquidityCancels(t *testing.T) {
	r := newTestRegistry(t)
	result := r.Submit(marketOrder(venue.Buy, "1"))
	assert.Equal(t, venue.StatusCanceled, result.Status)
	assert.Empty(t, result.Trades)
}

func TestSubmit_IOCPartialFillCancelsRemainder(t *testing.T) {
	r := newTestRegistry(t)
	r.Submit(limitOrder(venue.Sell, "1", "100"))

	result := r.Submit(iocOrder(venue.Buy, "2", "100"))
	assert.Equal(t, venue.StatusPartial, result.Status)
	require.Len(t, result.Trades, 1)

	_, ok := r.Book(symbol).OrderByID(result.OrderID)
	assert.False(t, ok, "ioc remainder never rests")
}

func TestSubmit_IOCNoFillCancelsOutright(t *testing.T) {
	r := newTestRegistry(t)
	result := r.Submit(iocOrder(venue.Buy, "1", "100"))
	assert.Equal(t, venue.StatusCanceled, result.Status)
	assert.Empty(t, result.Trades)
}

func TestSubmit_FOKRejectedWhenInsufficientLiquidity(t *testing.T) {
	r := newTestRegistry(t)
	r.Submit(limitOrder(venue.Sell, "0.5", "100"))

	result := r.Submit(fokOrder(venue.Buy, "1", "100", true))
	assert.Equal(t, venue.StatusCanceled, result.Status)
	assert.Equal(t, venue.ReasonFOKNotFillable, result.Reason)
	assert.Empty(t, result.Trades)

	// the resting ask must be untouched by the rejected FOK.
	bbo := r.Book(symbol).BBO()
	require.NotNil(t, bbo.BestAsk)
	assert.Equal(t, "0.5", bbo.BestAsk.Total.String())
}

func TestSubmit_FOKFillsCompletelyWhenLiquiditySufficient(t *testing.T) {
	r := newTestRegistry(t)
	r.Submit(limitOrder(venue.Sell, "1", "100"))

	result := r.Submit(fokOrder(venue.Buy, "1", "100", true))
	assert.Equal(t, venue.StatusFilled, result.Status)
	require.Len(t, result.Trades, 1)
}

func TestSubmit_FOKMarketRejectedOnEmptyBook(t *testing.T) {
	r := newTestRegistry(t)
	result := r.Submit(fokOrder(venue.Buy, "1", "", false))
	assert.Equal(t, venue.StatusCanceled, result.Status)
	assert.Equal(t, venue.ReasonFOKNotFillable, result.Reason)
}

func TestSubmit_StopTriggersAndResubmitsAsMarket(t *testing.T) {
	r := newTestRegistry(t)

	stop := venue.NewOrder(symbol, venue.Sell, venue.StopLoss, xdecimal.MustParse("1"), xdecimal.MustParse("95"), true)
	placed := r.PlaceStop(stop)
	assert.Equal(t, venue.StatusStopPlaced, placed.Status)

	r.Submit(limitOrder(venue.Buy, "1", "95"))
	r.Submit(limitOrder(venue.Sell, "1", "95"))

	require.Eventually(t, func() bool {
		stops := r.ListStops(symbol)
		return len(stops) == 0
	}, time.Second, 5*time.Millisecond, "triggered stop must be removed from the pending registry")
	assert.Equal(t, venue.Market, stop.OrderType, "triggered stop is rewritten to a market order")
}
