package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivIntRoundsHalfUp(t *testing.T) {
	// 20 / 3 = 6.666... -> 6.67
	avg := MustFromString("20.00").DivInt(3)
	assert.Equal(t, "6.67", avg.String())

	// 10 / 4 = 2.5 exactly, no drift.
	assert.Equal(t, "2.50", MustFromString("10.00").DivInt(4).String())
}

func TestPercent(t *testing.T) {
	subtotal := MustFromString("80.00")
	discount := subtotal.Percent(decimal.NewFromInt(15))
	assert.Equal(t, "12.00", discount.String())

	// 33.33% of 10.00 -> 3.33 after rounding.
	pct, err := decimal.NewFromString("33.33")
	require.NoError(t, err)
	assert.Equal(t, "3.33", MustFromString("10.00").Percent(pct).String())
}

func TestClampZero(t *testing.T) {
	total := MustFromString("10.00").Sub(MustFromString("25.00"))
	assert.True(t, total.IsNegative())
	assert.True(t, total.ClampZero().IsZero())
	assert.Equal(t, "5.00", MustFromString("5.00").ClampZero().String())
}

func TestMulIntIsExact(t *testing.T) {
	price := MustFromString("6.67")
	assert.Equal(t, "20.01", price.MulInt(3).String())
}

func TestJSONRoundTrip(t *testing.T) {
	in := MustFromString("1234.56")
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `"1234.56"`, string(data))

	var out Money
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.Equal(out))

	// Bare numbers are accepted too.
	require.NoError(t, json.Unmarshal([]byte(`10.5`), &out))
	assert.Equal(t, "10.50", out.String())
}

func TestFromCents(t *testing.T) {
	assert.Equal(t, "12.34", FromCents(1234).String())
	assert.Equal(t, "0.05", FromCents(5).String())
}
