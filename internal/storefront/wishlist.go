package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// wishlistFile is the fixed storage name shared by every listing.
const wishlistFile = "wishlist.json"

// WishlistEntry is one liked item. Entries form a set over ID.
type WishlistEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Img   string  `json:"img"`
}

// Wishlist is the durable, process-shared collection of liked items. Writes
// replace the whole file atomically; same-process listeners are notified
// synchronously on every write (the filesystem watch only fires for other
// processes), and external writes are picked up through fsnotify.
type Wishlist struct {
	path string

	mu        sync.Mutex
	entries   []WishlistEntry
	listeners []func([]WishlistEntry)
	lastSaved []byte

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
}

// OpenWishlist loads (or creates) the wishlist stored under dir and starts
// watching it for external changes.
func OpenWishlist(dir string) (*Wishlist, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open wishlist: %w", err)
	}
	w := &Wishlist{path: filepath.Join(dir, wishlistFile)}
	w.loadLocked()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("open wishlist: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("open wishlist: %w", err)
	}
	w.watcher = watcher

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	go w.watch(ctx)

	return w, nil
}

// Close stops the external-change watcher.
func (w *Wishlist) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// All returns the entries in insertion order.
func (w *Wishlist) All() []WishlistEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]WishlistEntry, len(w.entries))
	copy(out, w.entries)
	return out
}

// Has reports whether id is wishlisted.
func (w *Wishlist) Has(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.indexOf(id) >= 0
}

// Add inserts an entry. Adding an already-present id is a no-op.
func (w *Wishlist) Add(e WishlistEntry) error {
	w.mu.Lock()
	if w.indexOf(e.ID) >= 0 {
		w.mu.Unlock()
		return nil
	}
	w.entries = append(w.entries, e)
	err := w.persistLocked()
	w.mu.Unlock()
	if err != nil {
		return err
	}
	w.notify()
	return nil
}

// Remove deletes an entry by id. Removing an absent id is a no-op.
func (w *Wishlist) Remove(id string) error {
	w.mu.Lock()
	i := w.indexOf(id)
	if i < 0 {
		w.mu.Unlock()
		return nil
	}
	w.entries = append(w.entries[:i], w.entries[i+1:]...)
	err := w.persistLocked()
	w.mu.Unlock()
	if err != nil {
		return err
	}
	w.notify()
	return nil
}

// OnChange registers a listener invoked with the full entry set after every
// change, whether written by this process or observed on disk.
func (w *Wishlist) OnChange(fn func([]WishlistEntry)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

func (w *Wishlist) indexOf(id string) int {
	for i := range w.entries {
		if w.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *Wishlist) loadLocked() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.entries = nil
		return
	}
	var entries []WishlistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupt storage degrades to an empty set rather than failing.
		w.entries = nil
		return
	}
	w.entries = entries
	w.lastSaved = data
}

// persistLocked writes the whole collection atomically.
func (w *Wishlist) persistLocked() error {
	entries := w.entries
	if entries == nil {
		entries = []WishlistEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return err
	}
	w.lastSaved = data
	return nil
}

// notify invokes listeners without holding the mutex, so a listener is free
// to call back into Has, All, Add or Remove.
func (w *Wishlist) notify() {
	w.mu.Lock()
	fns := append([]func([]WishlistEntry){}, w.listeners...)
	snapshot := make([]WishlistEntry, len(w.entries))
	copy(snapshot, w.entries)
	w.mu.Unlock()
	for _, fn := range fns {
		fn(snapshot)
	}
}

// watch reloads on external writes. Our own writes are filtered out by
// comparing file bytes against the last save.
func (w *Wishlist) watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != wishlistFile {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.mu.Lock()
			data, err := os.ReadFile(w.path)
			if err != nil || bytes.Equal(data, w.lastSaved) {
				w.mu.Unlock()
				continue
			}
			var entries []WishlistEntry
			if err := json.Unmarshal(data, &entries); err != nil {
				w.mu.Unlock()
				continue
			}
			w.entries = entries
			w.lastSaved = data
			w.mu.Unlock()
			w.notify()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
