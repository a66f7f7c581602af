package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	SKU         string
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	Stock       int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureUser(ctx, pool, "Demo Shopper", "demo@storefront.local", "Storefront1"); err != nil {
		return fmt.Errorf("ensure demo user: %w", err)
	}

	products := []productSeed{
		{
			SKU:         "SKU-TSHIRT",
			Name:        "Classic T-Shirt",
			Description: "Soft cotton tee",
			PriceCents:  1999,
			Currency:    "USD",
			Stock:       120,
		},
		{
			SKU:         "SKU-HOODIE",
			Name:        "Zip Hoodie",
			Description: "Fleece-lined hoodie",
			PriceCents:  4999,
			Currency:    "USD",
			Stock:       45,
		},
		{
			SKU:         "SKU-MUG",
			Name:        "Ceramic Mug",
			Description: "11oz mug with logo",
			PriceCents:  1299,
			Currency:    "USD",
			Stock:       300,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.SKU, err)
		}
	}
	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, name, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
INSERT INTO users (name, email, password_hash)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO NOTHING
`, name, email, string(hashed))
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	_, err := pool.Exec(ctx, `
INSERT INTO products (sku, name, description, price_cents, currency, stock)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (sku) DO UPDATE SET
	name = EXCLUDED.name,
	description = EXCLUDED.description,
	price_cents = EXCLUDED.price_cents,
	currency = EXCLUDED.currency,
	stock = EXCLUDED.stock
`, p.SKU, p.Name, p.Description, p.PriceCents, p.Currency, p.Stock)
	return err
}
