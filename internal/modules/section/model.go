package section

import (
	"math"
	"strings"
	"time"
)

// MaxCards is the hard cap on cards per section, matching the admin editor.
const MaxCards = 8

// Section is one named storefront listing (trending, best-selling, ...).
type Section struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Card is a single product entry within a section. The wire names mirror the
// storefront payload: "order" is the admin-assigned sort position and "qty"
// is the on-hand stock.
type Card struct {
	ID        string    `json:"id"`
	Brand     string    `json:"brand"`
	Title     string    `json:"title"`
	Desc      string    `json:"desc"`
	Img       string    `json:"img"`
	Visible   bool      `json:"visible"`
	Category  string    `json:"category"`
	Unit      string    `json:"unit"`
	Price     float64   `json:"price"`
	Rating    float64   `json:"rating"`
	Discount  int       `json:"discount"`
	SortOrder int       `json:"order"`
	Stock     int       `json:"qty"`
	Orders    int       `json:"orders"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Payload is the section response body consumed by the storefront.
type Payload struct {
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// SaveRequest is the admin editor's full-replace payload.
type SaveRequest struct {
	Title string      `json:"title"`
	Cards []CardInput `json:"cards"`
}

// CardInput is a Card whose visibility defaults to true when the field is
// absent from the payload.
type CardInput struct {
	Card
	Visible *bool `json:"visible"`
}

func (in CardInput) resolve() Card {
	c := in.Card
	c.Visible = in.Visible == nil || *in.Visible
	return c
}

// Availability is the check-qty response.
type Availability struct {
	OK           bool   `json:"ok"`
	ID           string `json:"id"`
	QtyRequested int    `json:"qtyRequested"`
	Stock        int    `json:"stock"`
	OutOfStock   bool   `json:"outOfStock"`
	CappedQty    int    `json:"cappedQty"`
}

// defaultTitles registers the known section slugs and their seed titles.
var defaultTitles = map[string]string{
	"trending":     "Trending Products",
	"best-selling": "Best selling products",
	"popular":      "Most popular products",
	"just-arrived": "Just arrived",
	"new-arrived":  "Newly Arrived Brands",
}

// KnownSlug reports whether slug names a storefront section served by this module.
func KnownSlug(slug string) bool {
	_, ok := defaultTitles[slug]
	return ok
}

// DefaultTitle returns the seed title for a section slug.
func DefaultTitle(slug string) string {
	return defaultTitles[slug]
}

// Slugs returns the known section slugs.
func Slugs() []string {
	out := make([]string, 0, len(defaultTitles))
	for s := range defaultTitles {
		out = append(out, s)
	}
	return out
}

// ── Field clamps applied on save ─────────────────────────────────────────────

func clampPrice(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Round(v*100) / 100
}

func clampRating(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return math.Round(v*10) / 10
}

func clampDiscount(v int) int {
	if v < 0 {
		return 0
	}
	if v > 99 {
		return 99
	}
	return v
}

func clampSortOrder(v, position int) int {
	if v < 1 {
		return position + 1
	}
	return v
}

func clampStock(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func orDefault(v, d string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return d
	}
	return v
}

// sanitize normalizes an incoming card in place, using i as the fallback sort
// position.
func sanitize(c *Card, i int) {
	c.ID = strings.TrimSpace(c.ID)
	c.Brand = strings.TrimSpace(c.Brand)
	c.Title = strings.TrimSpace(c.Title)
	c.Desc = strings.TrimSpace(c.Desc)
	c.Img = strings.TrimSpace(c.Img)
	c.Unit = orDefault(c.Unit, "1 UNIT")
	c.Price = clampPrice(c.Price)
	c.Rating = clampRating(c.Rating)
	c.Discount = clampDiscount(c.Discount)
	c.SortOrder = clampSortOrder(c.SortOrder, i)
	c.Stock = clampStock(c.Stock)
	if c.Orders < 0 {
		c.Orders = 0
	}
}
