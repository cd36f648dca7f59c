package venue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saiputravu/venex/internal/venue"
	"github.com/saiputravu/venex/internal/xdecimal"
)

func mkOrder(qty string) *venue.Order {
	return venue.NewOrder("BTC-USDT", venue.Buy, venue.Limit, xdecimal.MustParse(qty), xdecimal.MustParse("100"), true)
}

func TestPriceLevel_AddAndTotal(t *testing.T) {
	level := venue.NewPriceLevel()
	level.Add(mkOrder("1"))
	level.Add(mkOrder("2"))
	assert.Equal(t, "3", level.Total().String())
	assert.False(t, level.Empty())
}

func TestPriceLevel_DecreaseOldest_Partial(t *testing.T) {
	level := venue.NewPriceLevel()
	o := mkOrder("5")
	level.Add(o)
	level.DecreaseOldest(xdecimal.MustParse("2"))
	assert.Equal(t, "3", level.Total().String())
	assert.Equal(t, "3", o.Remaining.String())
	assert.False(t, level.Empty())
}

func TestPriceLevel_DecreaseOldest_ExactlyConsumes(t *testing.T) {
	level := venue.NewPriceLevel()
	o := mkOrder("5")
	level.Add(o)
	level.DecreaseOldest(xdecimal.MustParse("5"))
	assert.True(t, level.Total().IsZero())
	assert.True(t, level.Empty())
}

func TestPriceLevel_FIFO_Order(t *testing.T) {
	level := venue.NewPriceLevel()
	first := mkOrder("1")
	second := mkOrder("1")
	level.Add(first)
	level.Add(second)
	assert.Same(t, first, level.PeekOldest())
	level.DecreaseOldest(xdecimal.MustParse("1"))
	assert.Same(t, second, level.PeekOldest())
}

func TestPriceLevel_Remove(t *testing.T) {
	level := venue.NewPriceLevel()
	keep := mkOrder("1")
	gone := mkOrder("2")
	level.Add(keep)
	level.Add(gone)
	assert.True(t, level.Remove(gone.ID))
	assert.Equal(t, "1", level.Total().String())
	assert.False(t, level.Remove("unknown-id"))
}
