package storefront

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestWishlist(t *testing.T, dir string) *Wishlist {
	t.Helper()
	w, err := OpenWishlist(dir)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w
}

func TestWishlistSetSemantics(t *testing.T) {
	w := openTestWishlist(t, t.TempDir())
	entry := WishlistEntry{ID: "sku-1", Name: "Apples", Price: 2.5}

	require.NoError(t, w.Add(entry))
	require.NoError(t, w.Add(entry)) // duplicate add is a no-op
	assert.Len(t, w.All(), 1)

	require.NoError(t, w.Remove("sku-1"))
	require.NoError(t, w.Remove("sku-1")) // absent remove is a no-op
	assert.Empty(t, w.All())
}

func TestWishlistAddRemoveRoundTrip(t *testing.T) {
	w := openTestWishlist(t, t.TempDir())
	require.NoError(t, w.Add(WishlistEntry{ID: "keep", Name: "Keeper"}))
	before := w.All()

	require.NoError(t, w.Add(WishlistEntry{ID: "tmp", Name: "Temp"}))
	require.NoError(t, w.Remove("tmp"))
	assert.Equal(t, before, w.All())
}

func TestWishlistSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	w := openTestWishlist(t, dir)
	require.NoError(t, w.Add(WishlistEntry{ID: "sku-1", Name: "Apples", Price: 2.5, Img: "/a.png"}))
	require.NoError(t, w.Close())

	reopened := openTestWishlist(t, dir)
	entries := reopened.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Apples", entries[0].Name)
}

func TestWishlistNotifiesSameProcessSynchronously(t *testing.T) {
	w := openTestWishlist(t, t.TempDir())

	var seen [][]WishlistEntry
	w.OnChange(func(entries []WishlistEntry) { seen = append(seen, entries) })

	require.NoError(t, w.Add(WishlistEntry{ID: "sku-1"}))
	// The writer's own listeners fire before Add returns.
	require.Len(t, seen, 1)
	assert.Len(t, seen[0], 1)

	require.NoError(t, w.Remove("sku-1"))
	require.Len(t, seen, 2)
	assert.Empty(t, seen[1])
}

// A listener may read back from the store it observes; that must not
// deadlock on the store's own mutex.
func TestWishlistListenerMayReadBack(t *testing.T) {
	w := openTestWishlist(t, t.TempDir())

	var sawInListener bool
	w.OnChange(func([]WishlistEntry) {
		sawInListener = w.Has("sku-1")
		_ = w.All()
	})

	done := make(chan error, 1)
	go func() { done <- w.Add(WishlistEntry{ID: "sku-1", Name: "Apples"}) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Add blocked: listener callback deadlocked on the store mutex")
	}
	assert.True(t, sawInListener)
}

// Two stores on the same directory model two open tabs sharing the durable
// storage: a removal in one must reach the other without a manual reload.
func TestWishlistCrossStorePropagation(t *testing.T) {
	dir := t.TempDir()
	tabA := openTestWishlist(t, dir)
	tabB := openTestWishlist(t, dir)

	changed := make(chan []WishlistEntry, 4)
	tabB.OnChange(func(entries []WishlistEntry) { changed <- entries })

	require.NoError(t, tabA.Add(WishlistEntry{ID: "sku-2", Name: "Oat Milk"}))
	waitForEntries(t, changed, 1)
	assert.True(t, tabB.Has("sku-2"))

	require.NoError(t, tabA.Remove("sku-2"))
	waitForEntries(t, changed, 0)
	assert.False(t, tabB.Has("sku-2"))
}

func waitForEntries(t *testing.T, ch <-chan []WishlistEntry, want int) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case entries := <-ch:
			if len(entries) == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for wishlist with %d entries", want)
		}
	}
}
