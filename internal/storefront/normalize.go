package storefront

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Card is a normalized catalog item as held by a listing view. Stock is a
// read-mostly cached copy of the authority's value, patched only from a
// confirmed order response.
type Card struct {
	ID        string
	Title     string
	Brand     string
	Desc      string
	Img       string
	Price     float64
	Unit      string
	Rating    float64
	Discount  int
	Category  string
	Stock     int
	SortOrder int
}

// normalizeCards coerces a duck-typed server payload card-by-card instead of
// rejecting the whole payload: non-finite or absent numerics fall back to
// safe defaults, cards marked invisible are dropped, and the result is
// sorted by the admin-assigned position.
func normalizeCards(raw []map[string]interface{}) []Card {
	cards := make([]Card, 0, len(raw))
	for i, rc := range raw {
		if v, ok := rc["visible"].(bool); ok && !v {
			continue
		}
		c := Card{
			ID:        str(rc["id"], fmt.Sprintf("card-%d", i)),
			Brand:     str(rc["brand"], ""),
			Desc:      str(rc["desc"], ""),
			Img:       str(rc["img"], ""),
			Unit:      str(rc["unit"], "1 UNIT"),
			Category:  str(rc["category"], "ALL"),
			Price:     num(rc["price"], 0),
			Rating:    num(rc["rating"], 0),
			Discount:  int(num(rc["discount"], 0)),
			Stock:     int(num(rc["qty"], 0)),
			SortOrder: int(num(rc["order"], float64(i+1))),
		}
		c.Title = str(rc["title"], str(rc["brand"], "Untitled"))
		cards = append(cards, c)
	}
	sort.SliceStable(cards, func(a, b int) bool {
		return cards[a].SortOrder < cards[b].SortOrder
	})
	return cards
}

func str(v interface{}, d string) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return d
	}
	return s
}

func num(v interface{}, d float64) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return d
		}
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return d
		}
		return f
	default:
		return d
	}
}
