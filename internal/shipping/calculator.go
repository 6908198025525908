package shipping

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/sallati/backend-sallati/internal/money"
)

// ErrDestinationUnreachable is returned when the customer sits beyond the
// store's maximum delivery distance.
var ErrDestinationUnreachable = errors.New("destination is beyond the maximum delivery distance")

// FreeReason explains why a quote came out free. Empty when a fee applies.
type FreeReason string

const (
	// FreeWithinRadius: the customer is inside the free-delivery radius.
	FreeWithinRadius FreeReason = "WithinFreeRadius"
	// FreeOrderAboveThreshold: the cart subtotal clears the free-delivery floor.
	FreeOrderAboveThreshold FreeReason = "OrderAboveFreeThreshold"
)

// Settings are the store's delivery tier rules. Distances are kilometres.
type Settings struct {
	BaseCost             money.Money
	CostPerKm            money.Money
	FreeDeliveryEnabled  bool
	FreeDeliveryRadius   float64
	MinOrderFreeDelivery money.Money
	MaxDeliveryDistance  float64
}

// Quote is a priced delivery for a single store/customer pair.
type Quote struct {
	DistanceKm   float64     `json:"distanceKm"`
	Cost         money.Money `json:"cost"`
	BaseCost     money.Money `json:"baseCost"`
	DistanceCost money.Money `json:"distanceCost"`
	FreeReason   FreeReason  `json:"freeReason,omitempty"`
}

// ComputeQuote prices delivery from the store to the customer. It is a pure
// function of its inputs: no clock, no randomness, so identical inputs yield
// bit-identical quotes.
//
// Free delivery is evaluated first-match: disabled short-circuits to the paid
// tiers, then the radius rule, then the order-subtotal rule.
func ComputeQuote(store, customer LatLng, settings Settings, cartSubtotal money.Money) (Quote, error) {
	return QuoteForDistance(Distance(store, customer), settings, cartSubtotal)
}

// QuoteForDistance prices delivery for an already-computed distance. Split
// out so tier rules can be exercised without constructing coordinate pairs.
func QuoteForDistance(distanceKm float64, settings Settings, cartSubtotal money.Money) (Quote, error) {
	if settings.MaxDeliveryDistance > 0 && distanceKm > settings.MaxDeliveryDistance {
		return Quote{}, ErrDestinationUnreachable
	}

	if settings.FreeDeliveryEnabled {
		if distanceKm <= settings.FreeDeliveryRadius {
			return Quote{DistanceKm: distanceKm, FreeReason: FreeWithinRadius}, nil
		}
		if !settings.MinOrderFreeDelivery.IsZero() && !cartSubtotal.LessThan(settings.MinOrderFreeDelivery) {
			return Quote{DistanceKm: distanceKm, FreeReason: FreeOrderAboveThreshold}, nil
		}
	}

	distanceCost := settings.CostPerKm.MulDecimal(decimal.NewFromFloat(distanceKm))
	return Quote{
		DistanceKm:   distanceKm,
		Cost:         settings.BaseCost.Add(distanceCost),
		BaseCost:     settings.BaseCost,
		DistanceCost: distanceCost,
	}, nil
}
