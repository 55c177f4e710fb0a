package storefront

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ItemState is the availability state machine position for one card.
type ItemState int

const (
	StateIdle ItemState = iota
	StateChecking
	StateAvailable
	StateUnavailable
	StateSubmitting
)

func (s ItemState) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAvailable:
		return "available"
	case StateUnavailable:
		return "unavailable"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

var (
	// ErrUnknownItem is returned for an id the listing has not loaded.
	ErrUnknownItem = errors.New("unknown item")

	// ErrItemUnavailable is returned when ordering while the item is flagged
	// out of stock; the action is a guarded no-op.
	ErrItemUnavailable = errors.New("item is out of stock")

	// ErrOrderInFlight is returned when ordering while a submission for the
	// same item has not resolved yet.
	ErrOrderInFlight = errors.New("order already in flight")
)

// RefreshSubscriber delivers dataset-change signals for a topic.
type RefreshSubscriber interface {
	Subscribe(ctx context.Context, topic string, fn func()) (func(), error)
}

// Listing is the per-section view-model: fetched catalog data, per-item
// desired quantity, per-item availability state, and wishlist membership. It
// orchestrates the stock check, order submission, and refresh collaborators.
// Safe for concurrent use.
type Listing struct {
	section  string
	client   *Client
	bus      RefreshSubscriber
	wishlist *Wishlist
	logger   *zap.Logger

	mu         sync.Mutex
	title      string
	cards      []Card
	index      map[string]int
	qty        map[string]int
	state      map[string]ItemState
	checkSeq   map[string]uint64
	submitting map[string]bool
}

// ListingOption configures a Listing.
type ListingOption func(*Listing)

// WithRefreshBus subscribes the listing to its section's refresh topic.
func WithRefreshBus(bus RefreshSubscriber) ListingOption {
	return func(l *Listing) { l.bus = bus }
}

// WithWishlist connects the shared wishlist store.
func WithWishlist(w *Wishlist) ListingOption {
	return func(l *Listing) { l.wishlist = w }
}

// WithListingLogger attaches a logger.
func WithListingLogger(logger *zap.Logger) ListingOption {
	return func(l *Listing) { l.logger = logger }
}

// NewListing creates a view-model for one section.
func NewListing(section string, client *Client, opts ...ListingOption) *Listing {
	l := &Listing{
		section:    section,
		client:     client,
		logger:     zap.NewNop(),
		index:      make(map[string]int),
		qty:        make(map[string]int),
		state:      make(map[string]ItemState),
		checkSeq:   make(map[string]uint64),
		submitting: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the catalog and resets per-item state: quantity 1 everywhere,
// and the initial availability derived from cached stock rather than a live
// query. On a fetch error the listing degrades to safe empty state and the
// error is returned for display.
func (l *Listing) Load(ctx context.Context) error {
	data, err := l.client.FetchSection(ctx, l.section)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.index = make(map[string]int)
	l.qty = make(map[string]int)
	l.state = make(map[string]ItemState)
	l.checkSeq = make(map[string]uint64)
	l.submitting = make(map[string]bool)

	if err != nil {
		l.title = ""
		l.cards = nil
		return err
	}

	l.title = data.Title
	l.cards = data.Cards
	for i, c := range l.cards {
		l.index[c.ID] = i
		l.qty[c.ID] = 1
		if c.Stock <= 0 {
			l.state[c.ID] = StateUnavailable
		} else {
			l.state[c.ID] = StateAvailable
		}
	}
	return nil
}

// Title returns the section heading.
func (l *Listing) Title() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.title
}

// Cards returns the loaded cards in display order.
func (l *Listing) Cards() []Card {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Card, len(l.cards))
	copy(out, l.cards)
	return out
}

// Quantity returns the desired quantity for id, defaulting to 1.
func (l *Listing) Quantity(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if q, ok := l.qty[id]; ok {
		return q
	}
	return 1
}

// State returns the availability state for id.
func (l *Listing) State(id string) ItemState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state[id]
}

// Increment raises the desired quantity by one and revalidates. There is no
// upper clamp: the user may request beyond known stock so the out-of-stock
// flag surfaces instead of the control silently refusing.
func (l *Listing) Increment(ctx context.Context, id string) error {
	return l.SetQuantity(ctx, id, l.Quantity(id)+1)
}

// Decrement lowers the desired quantity by one, clamped at 1, and revalidates.
func (l *Listing) Decrement(ctx context.Context, id string) error {
	return l.SetQuantity(ctx, id, l.Quantity(id)-1)
}

// SetQuantity records the desired quantity (floored at 1) and re-derives the
// availability flag from a live check. Each check is tagged with a sequence
// number; a result that resolves after a newer quantity change is discarded
// so a slow response can never overwrite fresher state.
func (l *Listing) SetQuantity(ctx context.Context, id string, n int) error {
	if n < 1 {
		n = 1
	}

	l.mu.Lock()
	if _, ok := l.index[id]; !ok {
		l.mu.Unlock()
		return ErrUnknownItem
	}
	l.qty[id] = n
	l.state[id] = StateChecking
	l.checkSeq[id]++
	seq := l.checkSeq[id]
	l.mu.Unlock()

	avail := l.client.CheckAvailability(ctx, l.section, id, n)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.checkSeq[id] != seq {
		// A newer quantity change superseded this check.
		return nil
	}
	l.applyAvailabilityLocked(id, avail)
	return nil
}

func (l *Listing) applyAvailabilityLocked(id string, avail Availability) {
	if avail.OutOfStock {
		l.state[id] = StateUnavailable
	} else {
		l.state[id] = StateAvailable
	}
}

// OrderNow submits an order for the current desired quantity. The action is
// a no-op while the item is flagged unavailable and while a previous
// submission is still in flight. On success the cached stock is patched from
// the server's remaining-stock value — never from local arithmetic — and the
// current desired quantity is re-checked.
func (l *Listing) OrderNow(ctx context.Context, id string) error {
	l.mu.Lock()
	if _, ok := l.index[id]; !ok {
		l.mu.Unlock()
		return ErrUnknownItem
	}
	if l.submitting[id] {
		l.mu.Unlock()
		return ErrOrderInFlight
	}
	if l.state[id] == StateUnavailable {
		l.mu.Unlock()
		return ErrItemUnavailable
	}
	wanted := l.qty[id]
	l.submitting[id] = true
	l.state[id] = StateSubmitting
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.submitting[id] = false
		l.mu.Unlock()
	}()

	// Pre-check so concurrent depletion surfaces as the badge, not an error
	// from the authority.
	pre := l.client.CheckAvailability(ctx, l.section, id, wanted)
	if pre.OutOfStock {
		l.mu.Lock()
		l.state[id] = StateUnavailable
		l.mu.Unlock()
		return &OrderError{
			Reason:     "out of stock",
			Stock:      pre.Stock,
			OutOfStock: true,
		}
	}

	remaining, err := l.client.PlaceOrder(ctx, l.section, id, wanted)
	if err != nil {
		// State rolls back to pre-submission; the user may retry manually.
		l.mu.Lock()
		l.state[id] = StateAvailable
		l.mu.Unlock()
		return err
	}

	l.mu.Lock()
	if i, ok := l.index[id]; ok {
		l.cards[i].Stock = remaining
	}
	current := l.qty[id]
	l.checkSeq[id]++
	seq := l.checkSeq[id]
	l.mu.Unlock()

	// Re-derive the badge for whatever quantity the user wants now. The
	// re-check carries a sequence number like SetQuantity's so a quantity
	// change made while it is in flight wins over its result.
	post := l.client.CheckAvailability(ctx, l.section, id, current)
	l.mu.Lock()
	if l.checkSeq[id] == seq {
		l.applyAvailabilityLocked(id, post)
	}
	l.mu.Unlock()
	return nil
}

// ToggleWishlist flips wishlist membership for id. Purely local: reads and
// writes the shared store, never the network.
func (l *Listing) ToggleWishlist(id string) error {
	if l.wishlist == nil {
		return nil
	}
	l.mu.Lock()
	i, ok := l.index[id]
	var card Card
	if ok {
		card = l.cards[i]
	}
	l.mu.Unlock()
	if !ok {
		return ErrUnknownItem
	}

	if l.wishlist.Has(id) {
		return l.wishlist.Remove(id)
	}
	return l.wishlist.Add(WishlistEntry{
		ID:    card.ID,
		Name:  card.Title,
		Price: card.Price,
		Img:   card.Img,
	})
}

// Wishlisted reports wishlist membership for id.
func (l *Listing) Wishlisted(id string) bool {
	if l.wishlist == nil {
		return false
	}
	return l.wishlist.Has(id)
}

// SubscribeRefresh reloads the listing once per refresh signal on its
// section topic. Returns a cancel func; a nil bus yields a no-op cancel.
func (l *Listing) SubscribeRefresh(ctx context.Context) (func(), error) {
	if l.bus == nil {
		return func() {}, nil
	}
	return l.bus.Subscribe(ctx, l.section, func() {
		if err := l.Load(ctx); err != nil {
			l.logger.Warn("refresh reload failed",
				zap.String("section", l.section),
				zap.Error(err))
		}
	})
}
