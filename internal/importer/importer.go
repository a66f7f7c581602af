package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// JSONImporter reads a product feed (an array of product records) and
// inserts/updates catalog rows.
type JSONImporter struct {
	reader      io.Reader
	productRepo ProductWriter
}

func NewJSONImporter(r io.Reader, repo ProductWriter) *JSONImporter {
	return &JSONImporter{reader: r, productRepo: repo}
}

type feedProduct struct {
	SKU         string                 `json:"sku"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	PriceCents  int64                  `json:"priceCents"`
	Currency    string                 `json:"currency"`
	Stock       int                    `json:"stock"`
	Attributes  map[string]interface{} `json:"attributes"`
}

// Run parses the feed and upserts each product. Rows missing a SKU or name,
// or carrying a negative price, are skipped and counted separately.
func (i *JSONImporter) Run(ctx context.Context) (imported, skipped int, err error) {
	var feed []feedProduct
	dec := json.NewDecoder(i.reader)
	if err := dec.Decode(&feed); err != nil {
		return 0, 0, fmt.Errorf("decode feed: %w", err)
	}

	for _, row := range feed {
		sku := strings.TrimSpace(row.SKU)
		name := strings.TrimSpace(row.Name)
		if sku == "" || name == "" || row.PriceCents < 0 {
			skipped++
			continue
		}
		currency := strings.ToUpper(strings.TrimSpace(row.Currency))
		if currency == "" {
			currency = "USD"
		}
		_, err := i.productRepo.Upsert(ctx, domain.Product{
			SKU:         sku,
			Name:        name,
			Description: strings.TrimSpace(row.Description),
			PriceCents:  row.PriceCents,
			Currency:    currency,
			Stock:       row.Stock,
			Attributes:  row.Attributes,
		})
		if err != nil {
			return imported, skipped, fmt.Errorf("upsert sku %s: %w", sku, err)
		}
		imported++
	}

	return imported, skipped, nil
}
