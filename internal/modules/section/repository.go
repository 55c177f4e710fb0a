package section

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a section or card does not exist.
var ErrNotFound = errors.New("not found")

// OutOfStockError is returned by DecrementStock when the requested quantity
// cannot be fulfilled. Stock carries the remaining on-hand quantity.
type OutOfStockError struct {
	ID    string
	Stock int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("out of stock: %s (stock %d)", e.ID, e.Stock)
}

// Repository defines section data storage.
type Repository interface {
	// GetSection returns the section row and its cards ordered by sort
	// position, capped at MaxCards.
	GetSection(ctx context.Context, slug string) (*Section, []Card, error)

	// ReplaceCards overwrites the section title and card set atomically:
	// incoming cards are upserted, cards missing from the set are deleted.
	ReplaceCards(ctx context.Context, slug, title string, cards []Card) error

	// GetStock returns the current stock for one card.
	GetStock(ctx context.Context, slug, id string) (int, error)

	// DecrementStock atomically takes qty units off a card's stock and bumps
	// its running orders counter. Returns the remaining stock and the new
	// orders count, or *OutOfStockError when stock cannot cover qty.
	DecrementStock(ctx context.Context, slug, id string, qty int) (remaining, orders int, err error)
}
