package checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/sallati/backend-sallati/internal/money"
)

// Line is a cart line carrying its resolved unit price snapshot. Prices are
// resolved upstream (pricing.Resolve); the aggregator only multiplies and
// sums.
type Line struct {
	UnitID      uuid.UUID   `json:"unitId"`
	Qty         int         `json:"qty"`
	UnitPrice   money.Money `json:"unitPrice"`
	Promotional bool        `json:"promotional"`
}

// OrderTotal is the immutable totals snapshot handed to order submission.
type OrderTotal struct {
	Subtotal        money.Money `json:"subtotal"`
	Discount        money.Money `json:"discount"`
	LoyaltyDiscount money.Money `json:"loyaltyDiscount"`
	ShippingCost    money.Money `json:"shippingCost"`
	Total           money.Money `json:"total"`
}

// Total aggregates cart lines with the optional coupon, the loyalty discount
// amount and the shipping cost. Pure: no input is mutated, every call is a
// full recomputation, and the grand total is clamped to zero no matter how
// large the discounts are.
func Total(lines []Line, coupon *Coupon, loyaltyDiscount, shippingCost money.Money, now time.Time) OrderTotal {
	var subtotal money.Money
	for _, line := range lines {
		if line.Qty <= 0 {
			continue
		}
		subtotal = subtotal.Add(line.UnitPrice.MulInt(line.Qty))
	}

	var couponDiscount money.Money
	if coupon != nil {
		couponDiscount = coupon.Discount(subtotal, now)
	}
	loyaltyDiscount = loyaltyDiscount.ClampZero()
	shippingCost = shippingCost.ClampZero()

	total := subtotal.Add(shippingCost).Sub(couponDiscount).Sub(loyaltyDiscount).ClampZero()
	return OrderTotal{
		Subtotal:        subtotal,
		Discount:        couponDiscount,
		LoyaltyDiscount: loyaltyDiscount,
		ShippingCost:    shippingCost,
		Total:           total,
	}
}
