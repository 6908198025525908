package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sallati/backend-sallati/internal/catalog"
	"github.com/sallati/backend-sallati/internal/money"
	"github.com/sallati/backend-sallati/internal/pricing"
	"github.com/sallati/backend-sallati/internal/shipping"
)

// ErrEmptyCart is returned when a quote is requested for no items.
var ErrEmptyCart = errors.New("cart has no items")

// SnapshotProvider yields the catalog snapshot a quote evaluates against.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, now time.Time) (*catalog.Snapshot, error)
}

// Item is one requested cart entry.
type Item struct {
	UnitID uuid.UUID `json:"unitId"`
	Qty    int       `json:"qty"`
}

// Input gathers everything a checkout quote depends on. Coupon and loyalty
// values arrive already validated by upstream collaborators.
type Input struct {
	Items           []Item           `json:"items"`
	Coupon          *Coupon          `json:"coupon,omitempty"`
	LoyaltyDiscount money.Money      `json:"loyaltyDiscount"`
	Customer        *shipping.LatLng `json:"customer,omitempty"`
}

// Output is the atomic quote snapshot: resolved lines, the optional delivery
// quote and the aggregated totals, all computed from one catalog snapshot at
// one instant. Callers submit it as-is or discard it and requote.
type Output struct {
	Lines    []Line          `json:"lines"`
	Shipping *shipping.Quote `json:"shipping,omitempty"`
	Totals   OrderTotal      `json:"totals"`
	QuotedAt time.Time       `json:"quotedAt"`
}

// Service computes checkout quotes. It owns no state beyond its collaborators
// and performs no writes, so quotes may be requested concurrently.
type Service struct {
	Catalog      SnapshotProvider
	Store        shipping.LatLng
	ShipSettings shipping.Settings
}

// Quote resolves each item against the current catalog snapshot, prices
// delivery when a customer location is given, and aggregates the totals.
func (s *Service) Quote(ctx context.Context, in Input) (Output, error) {
	if s == nil || s.Catalog == nil {
		return Output{}, errors.New("checkout service not configured")
	}
	if len(in.Items) == 0 {
		return Output{}, ErrEmptyCart
	}

	now := time.Now().UTC()
	snap, err := s.Catalog.Snapshot(ctx, now)
	if err != nil {
		return Output{}, err
	}

	lines := make([]Line, 0, len(in.Items))
	for _, item := range in.Items {
		res, err := pricing.Resolve(snap, item.UnitID, item.Qty, now)
		if err != nil {
			return Output{}, err
		}
		lines = append(lines, Line{
			UnitID:      item.UnitID,
			Qty:         item.Qty,
			UnitPrice:   res.EffectivePrice,
			Promotional: res.IsPromotional,
		})
	}

	var subtotal money.Money
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.MulInt(l.Qty))
	}

	out := Output{Lines: lines, QuotedAt: now}
	shippingCost := money.Zero()
	if in.Customer != nil {
		quote, err := shipping.ComputeQuote(s.Store, *in.Customer, s.ShipSettings, subtotal)
		if err != nil {
			return Output{}, err
		}
		out.Shipping = &quote
		shippingCost = quote.Cost
	}

	out.Totals = Total(lines, in.Coupon, in.LoyaltyDiscount, shippingCost, now)
	return out, nil
}
