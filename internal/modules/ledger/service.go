package ledger

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines the order record business logic.
type Service interface {
	// Record validates and persists one order snapshot. A blank id gets a
	// fresh token; each submission is a new record, there is no idempotency
	// key.
	Record(ctx context.Context, rec OrderRecord) (*OrderRecord, error)

	// Get retrieves a record by id.
	Get(ctx context.Context, id string) (*OrderRecord, error)
}

type service struct {
	repo Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, rec OrderRecord) (*OrderRecord, error) {
	rec.ProductID = strings.TrimSpace(rec.ProductID)
	if rec.ProductID == "" {
		return nil, fmt.Errorf("productId is required")
	}
	if rec.ID == "" {
		rec.ID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	if rec.Qty < 1 {
		rec.Qty = 1
	}
	rec.Price = clampMoney(rec.Price)
	rec.Subtotal = clampMoney(rec.Subtotal)
	if rec.Discount < 0 {
		rec.Discount = 0
	}
	if rec.Discount > 99 {
		rec.Discount = 99
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := s.repo.Create(ctx, &rec); err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}
	return &rec, nil
}

func (s *service) Get(ctx context.Context, id string) (*OrderRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func clampMoney(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Round(v*100) / 100
}
