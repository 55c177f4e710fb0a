package section

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed section repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetSection(ctx context.Context, slug string) (*Section, []Card, error) {
	sec := &Section{Slug: slug}
	err := r.db.QueryRowContext(ctx,
		`SELECT title, updated_at FROM sections WHERE slug=$1`, slug).
		Scan(&sec.Title, &sec.UpdatedAt)
	if err == sql.ErrNoRows {
		// Section has never been saved; serve the seed title with no cards.
		sec.Title = DefaultTitle(slug)
		return sec, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, brand, title, descr, img, visible, category, unit,
		       price, rating, discount, sort_order, stock, orders_count,
		       created_at, updated_at
		FROM section_cards
		WHERE section_slug=$1
		ORDER BY sort_order ASC, title ASC
		LIMIT $2`, slug, MaxCards)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var cards []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.Brand, &c.Title, &c.Desc, &c.Img,
			&c.Visible, &c.Category, &c.Unit, &c.Price, &c.Rating,
			&c.Discount, &c.SortOrder, &c.Stock, &c.Orders,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, nil, err
		}
		cards = append(cards, c)
	}
	return sec, cards, rows.Err()
}

func (r *postgresRepo) ReplaceCards(ctx context.Context, slug, title string, cards []Card) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sections (slug, title, updated_at) VALUES ($1,$2,NOW())
		ON CONFLICT (slug) DO UPDATE SET title=EXCLUDED.title, updated_at=NOW()`,
		slug, title); err != nil {
		return err
	}

	keep := make([]string, 0, len(cards))
	for _, c := range cards {
		keep = append(keep, c.ID)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO section_cards
			  (id, section_slug, brand, title, descr, img, visible, category,
			   unit, price, rating, discount, sort_order, stock, orders_count)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
			ON CONFLICT (id) DO UPDATE SET
			  section_slug=EXCLUDED.section_slug, brand=EXCLUDED.brand,
			  title=EXCLUDED.title, descr=EXCLUDED.descr, img=EXCLUDED.img,
			  visible=EXCLUDED.visible, category=EXCLUDED.category,
			  unit=EXCLUDED.unit, price=EXCLUDED.price, rating=EXCLUDED.rating,
			  discount=EXCLUDED.discount, sort_order=EXCLUDED.sort_order,
			  stock=EXCLUDED.stock, orders_count=EXCLUDED.orders_count,
			  updated_at=NOW()`,
			c.ID, slug, c.Brand, c.Title, c.Desc, c.Img, c.Visible, c.Category,
			c.Unit, c.Price, c.Rating, c.Discount, c.SortOrder, c.Stock, c.Orders); err != nil {
			return err
		}
	}

	// Delete rows the editor removed.
	query := `DELETE FROM section_cards WHERE section_slug=$1`
	args := []interface{}{slug}
	if len(keep) > 0 {
		query += ` AND NOT (id = ANY($2))`
		args = append(args, pq.Array(keep))
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepo) GetStock(ctx context.Context, slug, id string) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx,
		`SELECT stock FROM section_cards WHERE section_slug=$1 AND id=$2`,
		slug, id).Scan(&stock)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if stock < 0 {
		stock = 0
	}
	return stock, nil
}

func (r *postgresRepo) DecrementStock(ctx context.Context, slug, id string, qty int) (int, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	var stock, orders int
	err = tx.QueryRowContext(ctx, `
		SELECT stock, orders_count FROM section_cards
		WHERE section_slug=$1 AND id=$2
		FOR UPDATE`, slug, id).Scan(&stock, &orders)
	if err == sql.ErrNoRows {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, err
	}

	if stock <= 0 || qty > stock {
		if stock < 0 {
			stock = 0
		}
		return 0, 0, &OutOfStockError{ID: id, Stock: stock}
	}

	remaining := stock - qty
	orders += qty
	if _, err := tx.ExecContext(ctx, `
		UPDATE section_cards SET stock=$1, orders_count=$2, updated_at=NOW()
		WHERE section_slug=$3 AND id=$4`,
		remaining, orders, slug, id); err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return remaining, orders, nil
}
