package ledger

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an order record does not exist.
var ErrNotFound = errors.New("order not found")

// Repository defines order record storage.
type Repository interface {
	Create(ctx context.Context, rec *OrderRecord) error
	GetByID(ctx context.Context, id string) (*OrderRecord, error)
}
