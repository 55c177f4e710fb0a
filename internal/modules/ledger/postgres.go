package ledger

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed order record repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, rec *OrderRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_records
		  (id, product_id, title, brand, unit, price, qty, subtotal, category, discount, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		rec.ID, rec.ProductID, rec.Title, rec.Brand, rec.Unit,
		rec.Price, rec.Qty, rec.Subtotal, rec.Category, rec.Discount, rec.CreatedAt)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*OrderRecord, error) {
	rec := &OrderRecord{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, product_id, title, brand, unit, price, qty, subtotal, category, discount, created_at
		FROM order_records WHERE id=$1`, id).
		Scan(&rec.ID, &rec.ProductID, &rec.Title, &rec.Brand, &rec.Unit,
			&rec.Price, &rec.Qty, &rec.Subtotal, &rec.Category, &rec.Discount, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
