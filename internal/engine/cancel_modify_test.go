package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiputravu/venex/internal/engine"
	"github.com/saiputravu/venex/internal/venue"
	"github.com/saiputravu/venex/internal/xdecimal"
)

func TestCancelOrder_RemovesRestingOrder(t *testing.T) {
	r := newTestRegistry(t)
	result := r.Submit(limitOrder(venue.Buy, "1", "100"))

	require.NoError(t, r.CancelOrder(result.OrderID))
	bbo := r.Book(symbol).BBO()
	assert.Nil(t, bbo.BestBid)
}

func TestCancelOrder_UnknownIDReturnsNotFound(t *testing.T) {
	r := newTestRegistry(t)
	err := r.CancelOrder("nope")
	assert.ErrorIs(t, err, engine.ErrOrderNotFound)
}

func TestModifyOrder_PriceChangeMovesLevel(t *testing.T) {
	r := newTestRegistry(t)
	result := r.Submit(limitOrder(venue.Buy, "1", "100"))

	qty := xdecimal.MustParse("1")
	price := xdecimal.MustParse("101")
	modResult, err := r.ModifyOrder(result.OrderID, &qty, &price)
	require.NoError(t, err)
	assert.Equal(t, venue.StatusResting, modResult.Status)

	bbo := r.Book(symbol).BBO()
	require.NotNil(t, bbo.BestBid)
	assert.Equal(t, "101", bbo.BestBid.Price.String())
}

func TestModifyOrder_LosesTimePriorityEvenAtSamePrice(t *testing.T) {
	r := newTestRegistry(t)
	first := r.Submit(limitOrder(venue.Sell, "1", "100"))
	second := r.Submit(limitOrder(venue.Sell, "1", "100"))

	qty := xdecimal.MustParse("1")
	_, err := r.ModifyOrder(first.OrderID, &qty, nil)
	require.NoError(t, err)

	taker := r.Submit(limitOrder(venue.Buy, "1", "100"))
	require.Len(t, taker.Trades, 1)
	assert.Equal(t, second.OrderID, taker.Trades[0].MakerOrderID, "modified order re-enters at the tail")
}

func TestModifyOrder_ThatNowCrossesMatchesImmediately(t *testing.T) {
	r := newTestRegistry(t)
	resting := r.Submit(limitOrder(venue.Buy, "1", "99"))
	r.Submit(limitOrder(venue.Sell, "1", "100"))

	price := xdecimal.MustParse("100")
	modResult, err := r.ModifyOrder(resting.OrderID, nil, &price)
	require.NoError(t, err)
	assert.Equal(t, venue.StatusFilled, modResult.Status)
	require.Len(t, modResult.Trades, 1)
}

func TestModifyOrder_UnknownIDReturnsNotFound(t *testing.T) {
	r := newTestRegistry(t)
	qty := xdecimal.MustParse("1")
	_, err := r.ModifyOrder("nope", &qty, nil)
	assert.ErrorIs(t, err, engine.ErrOrderNotFound)
}

func TestCancelStop_RemovesFromPendingRegistry(t *testing.T) {
	r := newTestRegistry(t)
	stop := venue.NewOrder(symbol, venue.Sell, venue.StopLoss, xdecimal.MustParse("1"), xdecimal.MustParse("90"), true)
	r.PlaceStop(stop)

	require.NoError(t, r.CancelStop(stop.ID))
	assert.Empty(t, r.ListStops(symbol))
}

func TestCancelStop_UnknownIDReturnsNotFound(t *testing.T) {
	r := newTestRegistry(t)
	err := r.CancelStop("nope")
	assert.ErrorIs(t, err, engine.ErrStopNotFound)
}

func TestModifyStop_UpdatesInPlaceWithoutReordering(t *testing.T) {
	r := newTestRegistry(t)
	stop := venue.NewOrder(symbol, venue.Sell, venue.StopLoss, xdecimal.MustParse("1"), xdecimal.MustParse("90"), true)
	r.PlaceStop(stop)

	newQty := xdecimal.MustParse("2")
	newTrigger := xdecimal.MustParse("92")
	updated, err := r.ModifyStop(stop.ID, &newQty, &newTrigger)
	require.NoError(t, err)
	assert.Equal(t, "2", updated.Quantity.String())
	assert.Equal(t, "92", updated.Price.String())

	stops := r.ListStops(symbol)
	require.Len(t, stops, 1)
	assert.Same(t, stop, stops[0], "modify mutates the same order in place")
}
