package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sallati/backend-sallati/internal/catalog"
	"github.com/sallati/backend-sallati/internal/money"
	"github.com/sallati/backend-sallati/internal/pricing"
	"github.com/sallati/backend-sallati/internal/shipping"
)

var (
	riceUnitID = uuid.MustParse("11111111-0000-0000-0000-000000000001")
	oilUnitID  = uuid.MustParse("11111111-0000-0000-0000-000000000002")
)

type fixtureCatalog struct {
	snap *catalog.Snapshot
	err  error
}

func (f fixtureCatalog) Snapshot(_ context.Context, _ time.Time) (*catalog.Snapshot, error) {
	return f.snap, f.err
}

func fixtureSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	units := []catalog.ProductUnit{
		{
			ID:        riceUnitID,
			ProductID: uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"),
			PackQty:   1,
			Price:     money.MustFromString("20.00"),
			IsDefault: true,
		},
		{
			ID:        oilUnitID,
			ProductID: uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002"),
			PackQty:   1,
			Price:     money.MustFromString("5.00"),
			IsDefault: true,
		},
	}
	promos := []catalog.Promotion{
		{
			ID:           uuid.MustParse("22222222-0000-0000-0000-000000000001"),
			Kind:         catalog.KindBulkPurchase,
			TargetUnitID: riceUnitID,
			RequiredQty:  2,
			FreeQty:      1,
			StartDate:    time.Now().UTC().Add(-time.Hour),
			EndDate:      time.Now().UTC().Add(time.Hour),
			IsActive:     true,
		},
	}
	snap, err := catalog.NewSnapshot(units, promos, time.Now().UTC())
	require.NoError(t, err)
	return snap
}

func testService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		Catalog: fixtureCatalog{snap: fixtureSnapshot(t)},
		Store:   shipping.LatLng{Lat: 24.7136, Lng: 46.6753},
		ShipSettings: shipping.Settings{
			BaseCost:             money.MustFromString("10.00"),
			CostPerKm:            money.MustFromString("2.00"),
			FreeDeliveryEnabled:  true,
			FreeDeliveryRadius:   5,
			MinOrderFreeDelivery: money.MustFromString("200.00"),
			MaxDeliveryDistance:  30,
		},
	}
}

func TestQuoteResolvesPromotionalLines(t *testing.T) {
	svc := testService(t)

	out, err := svc.Quote(context.Background(), Input{Items: []Item{
		{UnitID: riceUnitID, Qty: 3},
		{UnitID: oilUnitID, Qty: 2},
	}})
	require.NoError(t, err)
	require.Len(t, out.Lines, 2)

	// Buy 2 get 1: 3 rice at the averaged 13.33, oil at list price.
	assert.Equal(t, "13.33", out.Lines[0].UnitPrice.String())
	assert.True(t, out.Lines[0].Promotional)
	assert.Equal(t, "5.00", out.Lines[1].UnitPrice.String())
	assert.False(t, out.Lines[1].Promotional)

	assert.Equal(t, "49.99", out.Totals.Subtotal.String())
	assert.Equal(t, "49.99", out.Totals.Total.String())
	assert.Nil(t, out.Shipping)
	assert.False(t, out.QuotedAt.IsZero())
}

func TestQuoteIncludesShippingWhenCustomerGiven(t *testing.T) {
	svc := testService(t)

	// Customer sits at the store, well within the free radius.
	customer := svc.Store
	out, err := svc.Quote(context.Background(), Input{
		Items:    []Item{{UnitID: oilUnitID, Qty: 1}},
		Customer: &customer,
	})
	require.NoError(t, err)
	require.NotNil(t, out.Shipping)
	assert.Equal(t, shipping.FreeWithinRadius, out.Shipping.FreeReason)
	assert.Equal(t, "0.00", out.Shipping.Cost.String())
	assert.Equal(t, "5.00", out.Totals.Total.String())
}

func TestQuoteAppliesCoupon(t *testing.T) {
	svc := testService(t)

	coupon := &Coupon{
		Code:          "RAMADAN20",
		Type:          CouponFixed,
		Value:         money.MustFromString("20.00").Decimal(),
		MinimumAmount: money.MustFromString("30.00"),
		EndTime:       time.Now().UTC().Add(time.Hour),
	}
	out, err := svc.Quote(context.Background(), Input{
		Items:  []Item{{UnitID: oilUnitID, Qty: 8}},
		Coupon: coupon,
	})
	require.NoError(t, err)
	assert.Equal(t, "40.00", out.Totals.Subtotal.String())
	assert.Equal(t, "20.00", out.Totals.Discount.String())
	assert.Equal(t, "20.00", out.Totals.Total.String())
}

func TestQuoteEmptyCart(t *testing.T) {
	svc := testService(t)
	_, err := svc.Quote(context.Background(), Input{})
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestQuoteUnknownUnit(t *testing.T) {
	svc := testService(t)
	_, err := svc.Quote(context.Background(), Input{Items: []Item{
		{UnitID: uuid.MustParse("99999999-0000-0000-0000-000000000009"), Qty: 1},
	}})
	require.ErrorIs(t, err, catalog.ErrUnitNotFound)
}

func TestQuoteInvalidQuantity(t *testing.T) {
	svc := testService(t)
	_, err := svc.Quote(context.Background(), Input{Items: []Item{
		{UnitID: riceUnitID, Qty: 0},
	}})
	require.ErrorIs(t, err, pricing.ErrInvalidQuantity)
}

func TestQuoteUnreachableDestination(t *testing.T) {
	svc := testService(t)

	// Roughly 110 km north of the store.
	customer := shipping.LatLng{Lat: svc.Store.Lat + 1, Lng: svc.Store.Lng}
	_, err := svc.Quote(context.Background(), Input{
		Items:    []Item{{UnitID: oilUnitID, Qty: 1}},
		Customer: &customer,
	})
	require.ErrorIs(t, err, shipping.ErrDestinationUnreachable)
}
