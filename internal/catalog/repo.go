package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sallati/backend-sallati/internal/money"
)

// Repo loads catalog data from Postgres. Monetary columns are numeric(12,2)
// and are scanned as text so no float conversion ever touches an amount.
type Repo struct {
	Pool *pgxpool.Pool
}

const listUnitsSQL = `
SELECT id, product_id, pack_qty, price::text, original_price::text, is_default
FROM product_units
ORDER BY product_id, is_default DESC, id`

const listPromotionsSQL = `
SELECT id, kind, target_unit_id, price::text, required_qty, free_qty,
       required_item_count, bundle_price::text, eligible_product_ids,
       min_qty, max_qty, start_date, end_date, is_active
FROM promotions
ORDER BY start_date, id`

// LoadUnits fetches every purchasable unit.
func (r Repo) LoadUnits(ctx context.Context) ([]ProductUnit, error) {
	rows, err := r.Pool.Query(ctx, listUnitsSQL)
	if err != nil {
		return nil, fmt.Errorf("query product units: %w", err)
	}
	defer rows.Close()

	var units []ProductUnit
	for rows.Next() {
		var (
			u        ProductUnit
			price    string
			original *string
		)
		if err := rows.Scan(&u.ID, &u.ProductID, &u.PackQty, &price, &original, &u.IsDefault); err != nil {
			return nil, fmt.Errorf("scan product unit: %w", err)
		}
		if u.Price, err = money.FromString(price); err != nil {
			return nil, fmt.Errorf("unit %s price: %w", u.ID, err)
		}
		if original != nil {
			orig, err := money.FromString(*original)
			if err != nil {
				return nil, fmt.Errorf("unit %s original price: %w", u.ID, err)
			}
			u.OriginalPrice = &orig
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// LoadPromotions fetches every promotion record, active or not. Activity is a
// property of the evaluation instant, so filtering happens in the snapshot.
func (r Repo) LoadPromotions(ctx context.Context) ([]Promotion, error) {
	rows, err := r.Pool.Query(ctx, listPromotionsSQL)
	if err != nil {
		return nil, fmt.Errorf("query promotions: %w", err)
	}
	defer rows.Close()

	var promos []Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}
	return promos, rows.Err()
}

func scanPromotion(row pgx.Row) (Promotion, error) {
	var (
		p           Promotion
		kind        string
		target      *uuid.UUID
		price       *string
		bundlePrice *string
		eligible    []uuid.UUID
	)
	err := row.Scan(&p.ID, &kind, &target, &price, &p.RequiredQty, &p.FreeQty,
		&p.RequiredItemCount, &bundlePrice, &eligible,
		&p.MinQty, &p.MaxQty, &p.StartDate, &p.EndDate, &p.IsActive)
	if err != nil {
		return Promotion{}, fmt.Errorf("scan promotion: %w", err)
	}
	p.Kind = PromotionKind(kind)
	if target != nil {
		p.TargetUnitID = *target
	}
	if price != nil {
		if p.Price, err = money.FromString(*price); err != nil {
			return Promotion{}, fmt.Errorf("promotion %s price: %w", p.ID, err)
		}
	}
	if bundlePrice != nil {
		if p.BundlePrice, err = money.FromString(*bundlePrice); err != nil {
			return Promotion{}, fmt.Errorf("promotion %s bundle price: %w", p.ID, err)
		}
	}
	p.EligibleProductIDs = eligible
	return p, nil
}

// LoadSnapshot reads units and promotions and assembles a validated snapshot.
func (r Repo) LoadSnapshot(ctx context.Context, now time.Time) (*Snapshot, error) {
	units, err := r.LoadUnits(ctx)
	if err != nil {
		return nil, err
	}
	promos, err := r.LoadPromotions(ctx)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(units, promos, now)
}
