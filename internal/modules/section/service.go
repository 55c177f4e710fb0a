package section

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RefreshPublisher signals open storefront views that a section changed.
type RefreshPublisher interface {
	Publish(ctx context.Context, topic string) error
}

// Service defines the section business logic.
type Service interface {
	// Get returns the section payload served to the storefront.
	Get(ctx context.Context, slug string) (*Payload, error)

	// Save replaces the section title and card set from the admin editor,
	// then publishes the section's refresh topic.
	Save(ctx context.Context, slug string, req SaveRequest) (*Payload, error)

	// CheckQuantity answers whether qty units of a card can be fulfilled
	// without mutating anything.
	CheckQuantity(ctx context.Context, slug, id string, qty int) (*Availability, error)

	// PlaceOrder decrements stock for a confirmed purchase and returns the
	// remaining stock and running orders count.
	PlaceOrder(ctx context.Context, slug, id string, qty int) (remaining, orders int, err error)
}

type service struct {
	repo  Repository
	bus   RefreshPublisher
	cache *payloadCache
}

// NewService creates a new section service.
func NewService(repo Repository, bus RefreshPublisher) Service {
	return &service{
		repo:  repo,
		bus:   bus,
		cache: newPayloadCache(2 * time.Second),
	}
}

func (s *service) Get(ctx context.Context, slug string) (*Payload, error) {
	if !KnownSlug(slug) {
		return nil, ErrNotFound
	}
	return s.cache.load(slug, func() (*Payload, error) {
		sec, cards, err := s.repo.GetSection(ctx, slug)
		if err != nil {
			return nil, err
		}
		if cards == nil {
			cards = []Card{}
		}
		return &Payload{Title: sec.Title, Cards: cards}, nil
	})
}

func (s *service) Save(ctx context.Context, slug string, req SaveRequest) (*Payload, error) {
	if !KnownSlug(slug) {
		return nil, ErrNotFound
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultTitle(slug)
	}

	in := req.Cards
	if len(in) > MaxCards {
		in = in[:MaxCards]
	}
	cards := make([]Card, 0, len(in))
	for i, raw := range in {
		c := raw.resolve()
		sanitize(&c, i)
		if c.ID == "" {
			c.ID = newID()
		}
		cards = append(cards, c)
	}

	if err := s.repo.ReplaceCards(ctx, slug, title, cards); err != nil {
		return nil, fmt.Errorf("save %s: %w", slug, err)
	}
	s.cache.invalidate(slug)

	if s.bus != nil {
		// Best effort; a missed signal only delays the next natural reload.
		_ = s.bus.Publish(ctx, slug)
	}
	return s.Get(ctx, slug)
}

func (s *service) CheckQuantity(ctx context.Context, slug, id string, qty int) (*Availability, error) {
	if !KnownSlug(slug) {
		return nil, ErrNotFound
	}
	if qty < 1 {
		qty = 1
	}
	stock, err := s.repo.GetStock(ctx, slug, id)
	if err != nil {
		return nil, err
	}
	capped := qty
	if capped > stock {
		capped = stock
	}
	return &Availability{
		OK:           true,
		ID:           id,
		QtyRequested: qty,
		Stock:        stock,
		OutOfStock:   stock <= 0 || qty > stock,
		CappedQty:    capped,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, slug, id string, qty int) (int, int, error) {
	if !KnownSlug(slug) {
		return 0, 0, ErrNotFound
	}
	if id == "" || qty < 1 {
		return 0, 0, fmt.Errorf("id and positive qty required")
	}
	remaining, orders, err := s.repo.DecrementStock(ctx, slug, id, qty)
	if err != nil {
		return 0, 0, err
	}
	s.cache.invalidate(slug)
	return remaining, orders, nil
}

// newID mirrors the admin editor's id format: a 32-char lowercase hex token.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
