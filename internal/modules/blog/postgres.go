package blog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed blog repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Get(ctx context.Context) (*Meta, []Post, error) {
	meta := &Meta{}
	err := r.db.QueryRowContext(ctx,
		`SELECT title, cta_text, cta_href, updated_at FROM blog_section WHERE id=1`).
		Scan(&meta.Title, &meta.CTAText, &meta.CTAHref, &meta.UpdatedAt)
	if err == sql.ErrNoRows {
		return &Meta{Title: defaultTitle, CTAText: defaultCTAText, CTAHref: defaultCTAHref}, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, date, tag, excerpt, image, visible, sort_order,
		       created_at, updated_at
		FROM blog_posts
		ORDER BY sort_order ASC, title ASC
		LIMIT $1`, MaxPosts)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Date, &p.Tag, &p.Excerpt,
			&p.Image, &p.Visible, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, nil, err
		}
		posts = append(posts, p)
	}
	return meta, posts, rows.Err()
}

func (r *postgresRepo) Replace(ctx context.Context, meta Meta, posts []Post) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO blog_section (id, title, cta_text, cta_href, updated_at)
		VALUES (1,$1,$2,$3,NOW())
		ON CONFLICT (id) DO UPDATE SET
		  title=EXCLUDED.title, cta_text=EXCLUDED.cta_text,
		  cta_href=EXCLUDED.cta_href, updated_at=NOW()`,
		meta.Title, meta.CTAText, meta.CTAHref); err != nil {
		return err
	}

	keep := make([]string, 0, len(posts))
	for _, p := range posts {
		keep = append(keep, p.ID)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO blog_posts (id, title, date, tag, excerpt, image, visible, sort_order)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (id) DO UPDATE SET
			  title=EXCLUDED.title, date=EXCLUDED.date, tag=EXCLUDED.tag,
			  excerpt=EXCLUDED.excerpt, image=EXCLUDED.image,
			  visible=EXCLUDED.visible, sort_order=EXCLUDED.sort_order,
			  updated_at=NOW()`,
			p.ID, p.Title, p.Date, p.Tag, p.Excerpt, p.Image, p.Visible, p.SortOrder); err != nil {
			return err
		}
	}

	query := `DELETE FROM blog_posts`
	args := []interface{}{}
	if len(keep) > 0 {
		query += ` WHERE NOT (id = ANY($1))`
		args = append(args, pq.Array(keep))
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}
