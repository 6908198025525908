package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close(ctx)

	seedUnits(ctx, conn)
	seedPromotions(ctx, conn)

	log.Println("Seeding completed successfully!")
}

// Fixed IDs so reseeding is idempotent and promos can reference units.
const (
	productRice  = "6f2b8a51-0000-4000-8000-000000000001"
	productOil   = "6f2b8a51-0000-4000-8000-000000000002"
	productDates = "6f2b8a51-0000-4000-8000-000000000003"
	productWater = "6f2b8a51-0000-4000-8000-000000000004"

	unitRiceSingle  = "9c41d7e2-0000-4000-8000-000000000001"
	unitRicePack5   = "9c41d7e2-0000-4000-8000-000000000002"
	unitOilSingle   = "9c41d7e2-0000-4000-8000-000000000003"
	unitDatesSingle = "9c41d7e2-0000-4000-8000-000000000004"
	unitWaterSingle = "9c41d7e2-0000-4000-8000-000000000005"

	promoRiceFixed = "b3e09f64-0000-4000-8000-000000000001"
	promoOilBulk   = "b3e09f64-0000-4000-8000-000000000002"
	promoRamadan   = "b3e09f64-0000-4000-8000-000000000003"
)

func seedUnits(ctx context.Context, conn *pgx.Conn) {
	log.Println("Seeding product units...")

	units := []struct {
		id, productID string
		packQty       int
		price         string
		original      *string
		isDefault     bool
	}{
		{unitRiceSingle, productRice, 1, "20.00", strPtr("24.00"), true},
		{unitRicePack5, productRice, 5, "92.00", nil, false},
		{unitOilSingle, productOil, 1, "20.00", nil, true},
		{unitDatesSingle, productDates, 1, "35.50", nil, true},
		{unitWaterSingle, productWater, 1, "2.25", nil, true},
	}

	for _, u := range units {
		_, err := conn.Exec(ctx, `
			INSERT INTO product_units (id, product_id, pack_qty, price, original_price, is_default)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				price = EXCLUDED.price,
				original_price = EXCLUDED.original_price,
				is_default = EXCLUDED.is_default`,
			u.id, u.productID, u.packQty, u.price, u.original, u.isDefault)
		if err != nil {
			log.Fatalf("Failed to seed unit %s: %v", u.id, err)
		}
	}
}

func seedPromotions(ctx context.Context, conn *pgx.Conn) {
	log.Println("Seeding promotions...")

	now := time.Now().UTC()
	start := now.Add(-24 * time.Hour)
	end := now.Add(30 * 24 * time.Hour)

	// A fixed sale price on single rice.
	_, err := conn.Exec(ctx, `
		INSERT INTO promotions (id, kind, target_unit_id, price, start_date, end_date, is_active)
		VALUES ($1, 'fixed_price', $2, $3, $4, $5, true)
		ON CONFLICT (id) DO UPDATE SET price = EXCLUDED.price, end_date = EXCLUDED.end_date`,
		promoRiceFixed, unitRiceSingle, "18.00", start, end)
	if err != nil {
		log.Fatalf("Failed to seed fixed price promo: %v", err)
	}

	// Buy 2 get 1 free on cooking oil, capped at 10 per order.
	_, err = conn.Exec(ctx, `
		INSERT INTO promotions (id, kind, target_unit_id, required_qty, free_qty, max_qty, start_date, end_date, is_active)
		VALUES ($1, 'bulk_purchase', $2, 2, 1, 10, $3, $4, true)
		ON CONFLICT (id) DO UPDATE SET end_date = EXCLUDED.end_date`,
		promoOilBulk, unitOilSingle, start, end)
	if err != nil {
		log.Fatalf("Failed to seed bulk promo: %v", err)
	}

	// Pick any 3 from the pantry staples for a flat bundle price.
	_, err = conn.Exec(ctx, `
		INSERT INTO promotions (id, kind, required_item_count, bundle_price, eligible_product_ids, start_date, end_date, is_active)
		VALUES ($1, 'combo_bundle', 3, $2, $3, $4, $5, true)
		ON CONFLICT (id) DO UPDATE SET bundle_price = EXCLUDED.bundle_price, end_date = EXCLUDED.end_date`,
		promoRamadan, "50.00", []string{productRice, productOil, productDates}, start, end)
	if err != nil {
		log.Fatalf("Failed to seed combo promo: %v", err)
	}
}

func strPtr(s string) *string { return &s }
