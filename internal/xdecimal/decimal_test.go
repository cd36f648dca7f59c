package xdecimal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saiputravu/venex/internal/xdecimal"
)

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := xdecimal.Parse("not-a-number")
	assert.ErrorIs(t, err, xdecimal.ErrInvalidDecimal)
}

func TestParse_RoundTrip(t *testing.T) {
	d, err := xdecimal.Parse("30000.5")
	assert.NoError(t, err)
	assert.Equal(t, "30000.5", d.String())
}

func TestMul_TradeValue(t *testing.T) {
	price := xdecimal.MustParse("100")
	qty := xdecimal.MustParse("1.5")
	assert.Equal(t, "150", price.Mul(qty).String())
}

func TestDiv_TruncatesTowardZero(t *testing.T) {
	a := xdecimal.MustParse("1")
	b := xdecimal.MustParse("3")
	got := a.Div(b)
	assert.True(t, got.LessThan(xdecimal.MustParse("0.333333333333333334")))
	assert.True(t, got.GreaterEqual(xdecimal.MustParse("0.333333333333333333")))
}

func TestFeeRates_Exact(t *testing.T) {
	tradeValue := xdecimal.MustParse("150")
	makerFee := tradeValue.Mul(xdecimal.MustParse("-0.0002"))
	takerFee := tradeValue.Mul(xdecimal.MustParse("0.0010"))
	assert.Equal(t, "-0.03", makerFee.String())
	assert.Equal(t, "0.15", takerFee.String())
}

func TestMin(t *testing.T) {
	a := xdecimal.MustParse("5")
	b := xdecimal.MustParse("3")
	assert.Equal(t, b, xdecimal.Min(a, b))
	assert.Equal(t, b, xdecimal.Min(b, a))
}

func TestCmpHelpers(t *testing.T) {
	a := xdecimal.MustParse("10")
	b := xdecimal.MustParse("10")
	c := xdecimal.MustParse("11")
	assert.True(t, a.Equal(b))
	assert.True(t, a.LessThan(c))
	assert.True(t, c.GreaterThan(a))
	assert.True(t, a.LessOrEqual(b))
	assert.True(t, c.GreaterEqual(a))
}
