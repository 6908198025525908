package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sallati/backend-sallati/internal/money"
)

// CouponType selects between the two discount strategies.
type CouponType string

const (
	// CouponFixed subtracts a fixed amount.
	CouponFixed CouponType = "fixed"
	// CouponPercentage subtracts a percentage of the subtotal.
	CouponPercentage CouponType = "percentage"
)

// Coupon is an externally validated discount code. Expiry and the minimum
// subtotal are business-rule gates, not errors: a coupon that no longer
// qualifies simply contributes zero.
type Coupon struct {
	Code          string          `json:"code"`
	Type          CouponType      `json:"type"`
	Value         decimal.Decimal `json:"value"`
	MinimumAmount money.Money     `json:"minimumAmount"`
	EndTime       time.Time       `json:"endTime"`
}

// Discount returns the coupon's contribution for the given subtotal at the
// given instant. Re-evaluated on every aggregation call, so a cart mutation
// that drops the subtotal below the coupon's minimum forces the discount back
// to zero immediately. Never exceeds the subtotal and never negative.
func (c Coupon) Discount(subtotal money.Money, now time.Time) money.Money {
	if !c.EndTime.IsZero() && now.After(c.EndTime) {
		return money.Zero()
	}
	if subtotal.LessThan(c.MinimumAmount) {
		return money.Zero()
	}

	var discount money.Money
	switch c.Type {
	case CouponPercentage:
		discount = subtotal.Percent(c.Value)
	case CouponFixed:
		discount = money.FromDecimal(c.Value).Round()
	default:
		return money.Zero()
	}
	if discount.IsNegative() {
		return money.Zero()
	}
	if subtotal.LessThan(discount) {
		return subtotal
	}
	return discount
}
