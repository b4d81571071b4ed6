package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"feria/internal/listing"
	"feria/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// Postgres persists listings in the products table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Insert(ctx context.Context, l listing.Listing) error {
	query := `
		INSERT INTO products (
			id, seller_id, title, description,
			brand_id, category_id, subcategory_id, item_id, size_id, color_id,
			gender, condition, price_min, price_current, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := p.db.ExecContext(ctx, query,
		l.ID, l.SellerID, l.Title, l.Description,
		l.BrandID, l.CategoryID, l.SubcategoryID, l.ItemID, l.SizeID, l.ColorID,
		l.Gender, l.Condition, l.PriceMin, l.PriceCurrent, l.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (p *Postgres) FindByID(ctx context.Context, id string) (listing.Listing, error) {
	query := `
		SELECT id, seller_id, title, description,
			brand_id, category_id, subcategory_id, item_id, size_id, color_id,
			gender, condition, price_min, price_current, created_at
		FROM products
		WHERE id = $1
	`
	var l listing.Listing
	err := p.db.QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.SellerID, &l.Title, &l.Description,
		&l.BrandID, &l.CategoryID, &l.SubcategoryID, &l.ItemID, &l.SizeID, &l.ColorID,
		&l.Gender, &l.Condition, &l.PriceMin, &l.PriceCurrent, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return listing.Listing{}, sentinel.ErrNotFound
		}
		return listing.Listing{}, fmt.Errorf("find listing: %w", err)
	}
	return l, nil
}
