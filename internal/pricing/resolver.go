package pricing

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sallati/backend-sallati/internal/catalog"
	"github.com/sallati/backend-sallati/internal/money"
)

// ErrInvalidQuantity is returned when a requested quantity is below one.
var ErrInvalidQuantity = errors.New("requested quantity must be at least 1")

// Resolution is the outcome of resolving a unit's effective price for a
// requested quantity against the active promotion set.
type Resolution struct {
	Unit           catalog.ProductUnit `json:"unit"`
	EffectivePrice money.Money         `json:"effectivePrice"`
	IsPromotional  bool                `json:"isPromotional"`
	Savings        money.Money         `json:"savings"`
	Promotion      *catalog.Promotion  `json:"promotion,omitempty"`
}

// Resolve determines the effective unit price. A quantity below a promotion's
// threshold is a valid non-promotional result, not an error; only structural
// problems (bad quantity, unknown unit) fail.
func Resolve(snap *catalog.Snapshot, unitID uuid.UUID, requestedQty int, now time.Time) (Resolution, error) {
	if requestedQty < 1 {
		return Resolution{}, ErrInvalidQuantity
	}
	unit, err := snap.Unit(unitID)
	if err != nil {
		return Resolution{}, err
	}

	res := Resolution{Unit: unit, EffectivePrice: unit.Price}
	promo, ok := snap.ActivePromotionFor(unitID, now)
	if !ok || !withinQtyGate(promo, requestedQty) {
		return res, nil
	}

	switch promo.Kind {
	case catalog.KindFixedPrice:
		res.EffectivePrice = promo.Price
		res.IsPromotional = true
		res.Savings = listPrice(unit).Sub(promo.Price).ClampZero()
		res.Promotion = &promo
	case catalog.KindBulkPurchase:
		if requestedQty < promo.RequiredQty {
			return res, nil
		}
		res.EffectivePrice = BulkUnitPrice(unit.Price, promo.RequiredQty, promo.FreeQty)
		res.IsPromotional = true
		res.Savings = unit.Price.Sub(res.EffectivePrice).ClampZero()
		res.Promotion = &promo
	case catalog.KindComboBundle:
		// Bundles price multi-product selections; they never alter a single
		// unit's price. Handled by the combo calculator.
	}
	return res, nil
}

// BulkUnitPrice folds the free units of a "buy N get M free" promotion into a
// flat average per paid unit: (price × N) / (N + M), rounded. The average
// applies uniformly for any quantity at or above the threshold rather than
// resetting at each multiple of N, matching the combo per-extra convention.
func BulkUnitPrice(base money.Money, requiredQty, freeQty int) money.Money {
	return base.MulInt(requiredQty).DivInt(requiredQty + freeQty)
}

// LineTotal is the charged amount for a resolved line.
func LineTotal(res Resolution, qty int) money.Money {
	return res.EffectivePrice.MulInt(qty)
}

func withinQtyGate(p catalog.Promotion, qty int) bool {
	if qty < p.MinQty {
		return false
	}
	if p.MaxQty != nil && qty > *p.MaxQty {
		return false
	}
	return true
}

// listPrice is the pre-discount comparison price used for savings display.
func listPrice(u catalog.ProductUnit) money.Money {
	if u.OriginalPrice != nil {
		return *u.OriginalPrice
	}
	return u.Price
}
