package combo

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sallati/backend-sallati/internal/catalog"
	"github.com/sallati/backend-sallati/internal/money"
)

// ErrIneligibleProduct is returned when a selection contains a product the
// bundle does not cover.
var ErrIneligibleProduct = errors.New("product is not eligible for this bundle")

// PricingState describes where a selection stands relative to the bundle's
// required item count.
type PricingState string

const (
	// BelowThreshold means more items are needed before the bundle prices.
	BelowThreshold PricingState = "below_threshold"
	// ExactThreshold means the selection matches the required count exactly.
	ExactThreshold PricingState = "exact_threshold"
	// AboveThreshold means extra items are charged at the bundle's average
	// per-item price.
	AboveThreshold PricingState = "above_threshold"
)

// Bundle is the combo promotion reduced to what pricing needs.
type Bundle struct {
	ID                 uuid.UUID
	RequiredItemCount  int
	BundlePrice        money.Money
	EligibleProductIDs []uuid.UUID
}

// BundleFromPromotion adapts a catalog combo promotion.
func BundleFromPromotion(p catalog.Promotion) (Bundle, error) {
	if p.Kind != catalog.KindComboBundle {
		return Bundle{}, fmt.Errorf("promotion %s is not a combo bundle", p.ID)
	}
	return Bundle{
		ID:                 p.ID,
		RequiredItemCount:  p.RequiredItemCount,
		BundlePrice:        p.BundlePrice,
		EligibleProductIDs: p.EligibleProductIDs,
	}, nil
}

func (b Bundle) eligible(productID uuid.UUID) bool {
	for _, id := range b.EligibleProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// Selection maps product ids to chosen quantities. Zero or negative
// quantities never persist: adjusting an entry to zero removes it.
type Selection map[uuid.UUID]int

// Add adjusts a product's quantity by delta, dropping the entry once it
// reaches zero.
func (s Selection) Add(productID uuid.UUID, delta int) {
	next := s[productID] + delta
	if next <= 0 {
		delete(s, productID)
		return
	}
	s[productID] = next
}

// TotalQty sums the selected quantities.
func (s Selection) TotalQty() int {
	var total int
	for _, qty := range s {
		total += qty
	}
	return total
}

// Quote is the priced outcome of a selection against a bundle. Total is only
// meaningful at or above the threshold; Missing is only set below it.
type Quote struct {
	State   PricingState `json:"state"`
	Total   money.Money  `json:"total"`
	Missing int          `json:"missing,omitempty"`
}

// Price computes the bundle total for a selection. Extra items beyond the
// required count are charged at the bundle's average per-item price, the same
// averaging convention bulk promotions use, never at the items' list prices.
func Price(selection Selection, bundle Bundle) (Quote, error) {
	for productID, qty := range selection {
		if qty <= 0 {
			// Selections are normalised through Add; a zero entry indicates a
			// caller bypassed it.
			return Quote{}, fmt.Errorf("selection for product %s has non-positive quantity %d", productID, qty)
		}
		if !bundle.eligible(productID) {
			return Quote{}, fmt.Errorf("%w: product %s", ErrIneligibleProduct, productID)
		}
	}

	selected := selection.TotalQty()
	required := bundle.RequiredItemCount
	switch {
	case selected < required:
		return Quote{State: BelowThreshold, Missing: required - selected}, nil
	case selected == required:
		return Quote{State: ExactThreshold, Total: bundle.BundlePrice}, nil
	default:
		perExtra := bundle.BundlePrice.DivInt(required)
		total := bundle.BundlePrice.Add(perExtra.MulInt(selected - required))
		return Quote{State: AboveThreshold, Total: total}, nil
	}
}
