package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailabilityFailsOpen(t *testing.T) {
	// Endpoint down entirely.
	c := NewClient("http://127.0.0.1:1")
	avail := c.CheckAvailability(context.Background(), "trending", "sku-1", 4)
	assert.False(t, avail.OutOfStock)
	assert.Equal(t, 0, avail.Stock)
	assert.Equal(t, 4, avail.CappedQty)

	// Endpoint erroring.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	avail = NewClient(srv.URL).CheckAvailability(context.Background(), "trending", "sku-1", 4)
	assert.False(t, avail.OutOfStock)
	assert.Equal(t, 4, avail.CappedQty)
}

func TestCheckAvailabilityParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": true, "outOfStock": true, "stock": 3, "cappedQty": 3,
		})
	}))
	defer srv.Close()

	avail := NewClient(srv.URL).CheckAvailability(context.Background(), "trending", "sku-1", 5)
	assert.True(t, avail.OutOfStock)
	assert.Equal(t, 3, avail.Stock)
	assert.Equal(t, 3, avail.CappedQty)
}

func TestPlaceOrderSurfacesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": "Out of stock", "qty": 2, "outOfStock": true,
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PlaceOrder(context.Background(), "trending", "sku-1", 5)
	var oe *OrderError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "Out of stock", oe.Reason)
	assert.Equal(t, 2, oe.Stock)
	assert.True(t, oe.OutOfStock)
}

func TestPlaceOrderReturnsRemainingStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "id": "sku-1", "qty": 7})
	}))
	defer srv.Close()

	remaining, err := NewClient(srv.URL).PlaceOrder(context.Background(), "trending", "sku-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 7, remaining)
}

func TestFetchSectionCancellable(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL).FetchSection(ctx, "trending")
	assert.Error(t, err)
}

func TestRecordOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rec OrderRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		rec.ID = "generated"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(rec)
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL).RecordOrder(context.Background(), OrderRecord{
		ProductID: "sku-1", Qty: 2, Price: 2.5, Subtotal: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "generated", out.ID)
	assert.Equal(t, "sku-1", out.ProductID)
}
