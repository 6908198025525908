package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/sallati/backend-sallati/internal/money"
)

// PromotionKind is the closed set of supported promotion shapes. Snapshots
// reject anything outside this set so a typo can never silently fall through
// to "no promotion".
type PromotionKind string

const (
	// KindFixedPrice overrides the target unit's price outright.
	KindFixedPrice PromotionKind = "fixed_price"
	// KindBulkPurchase grants free units: buy RequiredQty, get FreeQty.
	KindBulkPurchase PromotionKind = "bulk_purchase"
	// KindComboBundle charges a flat price for a required total quantity
	// selected across eligible products.
	KindComboBundle PromotionKind = "combo_bundle"
)

// ProductUnit is a purchasable packaging of a product, e.g. "6-pack" versus
// "single". PackQty counts base-measure items contained in one unit.
type ProductUnit struct {
	ID            uuid.UUID    `json:"id"`
	ProductID     uuid.UUID    `json:"productId"`
	PackQty       int          `json:"packQty"`
	Price         money.Money  `json:"price"`
	OriginalPrice *money.Money `json:"originalPrice,omitempty"`
	IsDefault     bool         `json:"isDefault"`
}

// Promotion is the tagged promotion record. Kind decides which fields are
// meaningful: TargetUnitID and Price for fixed price, RequiredQty/FreeQty for
// bulk purchase, RequiredItemCount/BundlePrice/EligibleProductIDs for combo
// bundles. MinQty/MaxQty gate applicability by requested quantity.
type Promotion struct {
	ID                 uuid.UUID     `json:"id"`
	Kind               PromotionKind `json:"kind"`
	TargetUnitID       uuid.UUID     `json:"targetUnitId,omitempty"`
	Price              money.Money   `json:"price,omitempty"`
	RequiredQty        int           `json:"requiredQty,omitempty"`
	FreeQty            int           `json:"freeQty,omitempty"`
	RequiredItemCount  int           `json:"requiredItemCount,omitempty"`
	BundlePrice        money.Money   `json:"bundlePrice,omitempty"`
	EligibleProductIDs []uuid.UUID   `json:"eligibleProductIds,omitempty"`
	MinQty             int           `json:"minQty"`
	MaxQty             *int          `json:"maxQty,omitempty"`
	StartDate          time.Time     `json:"startDate"`
	EndDate            time.Time     `json:"endDate"`
	IsActive           bool          `json:"isActive"`
}

// ActiveAt reports whether the promotion window covers the provided instant.
func (p Promotion) ActiveAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if now.Before(p.StartDate) {
		return false
	}
	if !p.EndDate.IsZero() && now.After(p.EndDate) {
		return false
	}
	return true
}

// TargetsUnit reports whether the promotion applies to the given unit.
// Combo bundles target product sets, never individual units.
func (p Promotion) TargetsUnit(unitID uuid.UUID) bool {
	switch p.Kind {
	case KindFixedPrice, KindBulkPurchase:
		return p.TargetUnitID == unitID
	case KindComboBundle:
		return false
	}
	return false
}
