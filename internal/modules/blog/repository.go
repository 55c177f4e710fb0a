package blog

import "context"

// Repository defines blog data storage.
type Repository interface {
	// Get returns the section meta and its posts ordered by sort position,
	// capped at MaxPosts.
	Get(ctx context.Context) (*Meta, []Post, error)

	// Replace overwrites the section meta and post set atomically.
	Replace(ctx context.Context, meta Meta, posts []Post) error
}
