package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sallati/backend-sallati/internal/money"
)

// riyadhStore is the default store location used across fixtures.
var riyadhStore = LatLng{Lat: 24.7136, Lng: 46.6753}

func tierSettings() Settings {
	return Settings{
		BaseCost:             money.MustFromString("10.00"),
		CostPerKm:            money.MustFromString("2.00"),
		FreeDeliveryEnabled:  true,
		FreeDeliveryRadius:   5,
		MinOrderFreeDelivery: money.MustFromString("200.00"),
		MaxDeliveryDistance:  30,
	}
}

func TestDistanceIsSymmetricAndRounded(t *testing.T) {
	customer := LatLng{Lat: 24.7408, Lng: 46.6753}
	d1 := Distance(riyadhStore, customer)
	d2 := Distance(customer, riyadhStore)
	assert.Equal(t, d1, d2)
	// ~3 km north of the store.
	assert.InDelta(t, 3.02, d1, 0.05)
	// Two decimal places exactly.
	assert.Equal(t, d1, roundKm(d1))
}

func TestDistanceZero(t *testing.T) {
	assert.Equal(t, 0.0, Distance(riyadhStore, riyadhStore))
}

func TestQuoteWithinFreeRadius(t *testing.T) {
	// Customer ~3 km away with a 5 km free radius.
	customer := LatLng{Lat: 24.7408, Lng: 46.6753}
	quote, err := ComputeQuote(riyadhStore, customer, tierSettings(), money.MustFromString("50.00"))
	require.NoError(t, err)
	assert.Equal(t, FreeWithinRadius, quote.FreeReason)
	assert.True(t, quote.Cost.IsZero())
}

func TestQuoteOrderAboveFreeThreshold(t *testing.T) {
	quote, err := QuoteForDistance(8, tierSettings(), money.MustFromString("250.00"))
	require.NoError(t, err)
	assert.Equal(t, FreeOrderAboveThreshold, quote.FreeReason)
	assert.True(t, quote.Cost.IsZero())
}

func TestQuoteTieredCost(t *testing.T) {
	// 8 km, base 10, 2/km: 10 + 16 = 26.00.
	quote, err := QuoteForDistance(8, tierSettings(), money.MustFromString("50.00"))
	require.NoError(t, err)
	assert.Equal(t, FreeReason(""), quote.FreeReason)
	assert.Equal(t, "26.00", quote.Cost.String())
	assert.Equal(t, "10.00", quote.BaseCost.String())
	assert.Equal(t, "16.00", quote.DistanceCost.String())
}

func TestQuoteFreeDeliveryDisabled(t *testing.T) {
	settings := tierSettings()
	settings.FreeDeliveryEnabled = false
	// Inside the radius and above the order threshold, yet still charged.
	quote, err := QuoteForDistance(3, settings, money.MustFromString("500.00"))
	require.NoError(t, err)
	assert.Equal(t, FreeReason(""), quote.FreeReason)
	assert.Equal(t, "16.00", quote.Cost.String())
}

func TestQuoteDestinationUnreachable(t *testing.T) {
	_, err := QuoteForDistance(31, tierSettings(), money.MustFromString("50.00"))
	require.ErrorIs(t, err, ErrDestinationUnreachable)
}

func TestQuoteIsIdempotent(t *testing.T) {
	customer := LatLng{Lat: 24.7740, Lng: 46.7386}
	first, err := ComputeQuote(riyadhStore, customer, tierSettings(), money.MustFromString("50.00"))
	require.NoError(t, err)
	second, err := ComputeQuote(riyadhStore, customer, tierSettings(), money.MustFromString("50.00"))
	require.NoError(t, err)
	assert.Equal(t, first.DistanceKm, second.DistanceKm)
	assert.True(t, first.Cost.Equal(second.Cost))
	assert.Equal(t, first.FreeReason, second.FreeReason)
}

func TestQuoteFractionalDistanceRounding(t *testing.T) {
	// 7.33 km at 2.50/km: 18.325 -> 18.33 after money rounding; plus base.
	settings := tierSettings()
	settings.CostPerKm = money.MustFromString("2.50")
	quote, err := QuoteForDistance(7.33, settings, money.MustFromString("50.00"))
	require.NoError(t, err)
	assert.Equal(t, "18.33", quote.DistanceCost.String())
	assert.Equal(t, "28.33", quote.Cost.String())
}
