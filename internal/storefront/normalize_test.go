package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCardsCoercesFieldByField(t *testing.T) {
	cards := normalizeCards([]map[string]interface{}{
		{
			"id":       "a",
			"title":    "Apples",
			"price":    "2.50",      // numeric string is accepted
			"rating":   "not-a-num", // garbage falls back
			"discount": 15.0,
			"qty":      3.0,
			"order":    2.0,
		},
		{
			// No title: brand is the fallback; missing numerics default.
			"id":    "b",
			"brand": "FreshCo",
			"order": 1.0,
		},
	})
	require.Len(t, cards, 2)

	// Sorted by admin-assigned position.
	assert.Equal(t, "b", cards[0].ID)
	assert.Equal(t, "FreshCo", cards[0].Title)
	assert.Equal(t, 0.0, cards[0].Price)
	assert.Equal(t, 0, cards[0].Stock)
	assert.Equal(t, "1 UNIT", cards[0].Unit)
	assert.Equal(t, "ALL", cards[0].Category)

	assert.Equal(t, "a", cards[1].ID)
	assert.Equal(t, 2.5, cards[1].Price)
	assert.Equal(t, 0.0, cards[1].Rating)
	assert.Equal(t, 15, cards[1].Discount)
	assert.Equal(t, 3, cards[1].Stock)
}

func TestNormalizeCardsDropsInvisible(t *testing.T) {
	cards := normalizeCards([]map[string]interface{}{
		{"id": "a", "title": "Shown"},
		{"id": "b", "title": "Hidden", "visible": false},
		{"id": "c", "title": "Also shown", "visible": true},
	})
	require.Len(t, cards, 2)
	assert.Equal(t, "a", cards[0].ID)
	assert.Equal(t, "c", cards[1].ID)
}

func TestNormalizeCardsGeneratesMissingIDs(t *testing.T) {
	cards := normalizeCards([]map[string]interface{}{
		{"title": "No id at all"},
	})
	require.Len(t, cards, 1)
	assert.Equal(t, "card-0", cards[0].ID)
	assert.Equal(t, "Untitled", normalizeCards([]map[string]interface{}{{}})[0].Title)
}
