package refresh

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SignalDirTransport is the fallback transport: a publish writes a
// "{topic}-updated" marker file into a shared directory and subscribers pick
// the change up through a filesystem watch. Used when Redis is not
// configured or unreachable.
type SignalDirTransport struct {
	dir string

	mu      sync.Mutex
	cancels []context.CancelFunc
}

// NewSignalDirTransport creates the directory-backed transport.
func NewSignalDirTransport(dir string) (*SignalDirTransport, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create signal dir: %w", err)
	}
	return &SignalDirTransport{dir: dir}, nil
}

func markerName(topic string) string { return topic + "-updated" }

func (t *SignalDirTransport) Publish(ctx context.Context, topic string) error {
	payload := fmt.Sprintf("%d", time.Now().UnixNano())
	path := filepath.Join(t.dir, markerName(topic))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(payload), 0o644); err != nil {
		return err
	}
	// Rename so watchers never observe a half-written marker.
	return os.Rename(tmp, path)
}

func (t *SignalDirTransport) Subscribe(ctx context.Context, topic string, fn func()) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(t.dir); err != nil {
		watcher.Close()
		return nil, err
	}

	marker := filepath.Join(t.dir, markerName(topic))

	// Seed from the current marker so subscribing never fires for a publish
	// that happened before we were listening.
	lastSeen := readMarker(marker)

	subCtx, cancel := context.WithCancel(ctx)
	t.mu.Lock()
	t.cancels = append(t.cancels, cancel)
	t.mu.Unlock()

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-subCtx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != markerName(topic) {
					continue
				}
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
					continue
				}
				// The rename can surface as several events; dedupe on the
				// marker value so one publish triggers exactly one reload.
				value := readMarker(marker)
				if value == "" || value == lastSeen {
					continue
				}
				lastSeen = value
				fn()
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return cancel, nil
}

func (t *SignalDirTransport) Close() error {
	t.mu.Lock()
	for _, cancel := range t.cancels {
		cancel()
	}
	t.cancels = nil
	t.mu.Unlock()
	return nil
}

func readMarker(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
