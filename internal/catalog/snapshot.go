package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnitNotFound is returned when a unit id is absent from the snapshot.
	ErrUnitNotFound = errors.New("product unit not found in catalog snapshot")
	// ErrAmbiguousPromotion is returned when two active fixed-price promotions
	// target the same unit. The upstream data is assumed internally consistent,
	// so this indicates a broken feed rather than a business-rule miss.
	ErrAmbiguousPromotion = errors.New("ambiguous promotion: multiple active fixed-price promotions target the same unit")
	// ErrInvalidPromotion is returned when a promotion record is malformed.
	ErrInvalidPromotion = errors.New("invalid promotion record")
	// ErrPromotionNotFound is returned when a promotion id is absent from the snapshot.
	ErrPromotionNotFound = errors.New("promotion not found in catalog snapshot")
)

// Snapshot is an immutable view of the catalog and its promotions at a point
// in time. Every pricing evaluation operates on a snapshot; nothing in it is
// mutated after construction, so it is safe for concurrent use.
type Snapshot struct {
	TakenAt    time.Time     `json:"takenAt"`
	Units      []ProductUnit `json:"units"`
	Promotions []Promotion   `json:"promotions"`

	unitsByID map[uuid.UUID]ProductUnit
}

// NewSnapshot validates and indexes the provided catalog data. The consistency
// rules from the upstream contract are enforced here once, so calculators can
// trust the snapshot without re-checking.
func NewSnapshot(units []ProductUnit, promotions []Promotion, now time.Time) (*Snapshot, error) {
	byID := make(map[uuid.UUID]ProductUnit, len(units))
	for _, u := range units {
		if u.PackQty < 1 {
			return nil, fmt.Errorf("unit %s: pack quantity must be at least 1", u.ID)
		}
		if u.Price.IsNegative() {
			return nil, fmt.Errorf("unit %s: price must not be negative", u.ID)
		}
		byID[u.ID] = u
	}

	fixedTargets := make(map[uuid.UUID]uuid.UUID, len(promotions))
	for _, p := range promotions {
		if err := validatePromotion(p); err != nil {
			return nil, err
		}
		if p.Kind == KindFixedPrice && p.ActiveAt(now) {
			if prev, ok := fixedTargets[p.TargetUnitID]; ok {
				return nil, fmt.Errorf("%w: unit %s targeted by %s and %s",
					ErrAmbiguousPromotion, p.TargetUnitID, prev, p.ID)
			}
			fixedTargets[p.TargetUnitID] = p.ID
		}
	}

	return &Snapshot{
		TakenAt:    now,
		Units:      units,
		Promotions: promotions,
		unitsByID:  byID,
	}, nil
}

func validatePromotion(p Promotion) error {
	switch p.Kind {
	case KindFixedPrice:
		if p.TargetUnitID == uuid.Nil {
			return fmt.Errorf("%w: fixed-price promotion %s has no target unit", ErrInvalidPromotion, p.ID)
		}
		if p.Price.IsNegative() {
			return fmt.Errorf("%w: fixed-price promotion %s has negative price", ErrInvalidPromotion, p.ID)
		}
	case KindBulkPurchase:
		if p.TargetUnitID == uuid.Nil {
			return fmt.Errorf("%w: bulk promotion %s has no target unit", ErrInvalidPromotion, p.ID)
		}
		if p.RequiredQty < 1 || p.FreeQty < 1 {
			return fmt.Errorf("%w: bulk promotion %s needs requiredQty and freeQty of at least 1", ErrInvalidPromotion, p.ID)
		}
	case KindComboBundle:
		if p.RequiredItemCount < 1 {
			return fmt.Errorf("%w: combo promotion %s needs a required item count of at least 1", ErrInvalidPromotion, p.ID)
		}
		if p.BundlePrice.IsNegative() {
			return fmt.Errorf("%w: combo promotion %s has negative bundle price", ErrInvalidPromotion, p.ID)
		}
		if len(p.EligibleProductIDs) == 0 {
			return fmt.Errorf("%w: combo promotion %s has no eligible products", ErrInvalidPromotion, p.ID)
		}
	default:
		return fmt.Errorf("%w: promotion %s has unknown kind %q", ErrInvalidPromotion, p.ID, p.Kind)
	}
	return nil
}

// Unit looks up a product unit by id.
func (s *Snapshot) Unit(id uuid.UUID) (ProductUnit, error) {
	u, ok := s.unitsByID[id]
	if !ok {
		return ProductUnit{}, ErrUnitNotFound
	}
	return u, nil
}

// ActivePromotionFor returns the single promotion considered active for the
// unit at the given instant. When several windows overlap the earliest
// StartDate wins, then the lowest promotion id, so evaluation stays
// deterministic for identical inputs.
func (s *Snapshot) ActivePromotionFor(unitID uuid.UUID, now time.Time) (Promotion, bool) {
	var matches []Promotion
	for _, p := range s.Promotions {
		if p.TargetsUnit(unitID) && p.ActiveAt(now) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return Promotion{}, false
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].StartDate.Equal(matches[j].StartDate) {
			return matches[i].StartDate.Before(matches[j].StartDate)
		}
		return bytes.Compare(matches[i].ID[:], matches[j].ID[:]) < 0
	})
	return matches[0], true
}

// ActiveBundles lists combo-bundle promotions whose window covers now.
func (s *Snapshot) ActiveBundles(now time.Time) []Promotion {
	var out []Promotion
	for _, p := range s.Promotions {
		if p.Kind == KindComboBundle && p.ActiveAt(now) {
			out = append(out, p)
		}
	}
	return out
}

// Bundle returns the combo-bundle promotion with the given id, active or not.
func (s *Snapshot) Bundle(id uuid.UUID) (Promotion, error) {
	for _, p := range s.Promotions {
		if p.ID == id && p.Kind == KindComboBundle {
			return p, nil
		}
	}
	return Promotion{}, fmt.Errorf("%w: combo promotion %s", ErrPromotionNotFound, id)
}

// Reindex rebuilds the internal unit index. Needed after a snapshot has been
// deserialised from the cache, where only exported fields survive.
func (s *Snapshot) Reindex() {
	s.unitsByID = make(map[uuid.UUID]ProductUnit, len(s.Units))
	for _, u := range s.Units {
		s.unitsByID[u.ID] = u
	}
}
