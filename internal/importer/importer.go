package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vitalia/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products.
// Expected headers: slug, sku, name, description, category, price_cents,
// currency, stock, images (pipe-separated URLs). Stock may be empty for
// unlimited items.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row. It returns the
// number of imported products and stops at the first invalid row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		product, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if product == nil {
			continue
		}

		if _, err := i.productRepo.Upsert(ctx, *product); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", product.Slug, err)
		}
		imported++
	}

	return imported, nil
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	slug := pick(record, index, "slug")
	sku := pick(record, index, "sku")
	name := pick(record, index, "name")
	currency := pick(record, index, "currency")
	centStr := pick(record, index, "price_cents")

	if slug == "" && sku == "" && name == "" {
		// Blank row, skip silently.
		return nil, nil
	}
	if slug == "" || sku == "" || name == "" || currency == "" || centStr == "" {
		return nil, fmt.Errorf("invalid product row (missing required fields) for slug %q", slug)
	}

	cents, err := strconv.ParseInt(centStr, 10, 64)
	if err != nil || cents < 0 {
		return nil, fmt.Errorf("invalid price for slug %q: %s", slug, centStr)
	}

	p := &domain.Product{
		Slug:        slug,
		SKU:         sku,
		Name:        name,
		Description: pick(record, index, "description"),
		Category:    pick(record, index, "category"),
		PriceCents:  cents,
		Currency:    currency,
	}

	if stockStr := pick(record, index, "stock"); stockStr != "" {
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("invalid stock for slug %q: %s", slug, stockStr)
		}
		p.Stock = &stock
	}

	if images := pick(record, index, "images"); images != "" {
		for _, url := range strings.Split(images, "|") {
			if url = strings.TrimSpace(url); url != "" {
				p.Images = append(p.Images, url)
			}
		}
	}

	return p, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	i, ok := index[key]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
