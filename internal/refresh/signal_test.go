package refresh

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForCount(t *testing.T, counter *int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt32(counter) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d deliveries, got %d", want, atomic.LoadInt32(counter))
}

func TestSignalDirPublishSubscribe(t *testing.T) {
	transport, err := NewSignalDirTransport(t.TempDir())
	require.NoError(t, err)
	defer transport.Close()

	ctx := context.Background()
	var got int32
	cancel, err := transport.Subscribe(ctx, "trending", func() { atomic.AddInt32(&got, 1) })
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, transport.Publish(ctx, "trending"))
	waitForCount(t, &got, 1)

	// Wait out any trailing fs events, then publish again: exactly one more.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, transport.Publish(ctx, "trending"))
	waitForCount(t, &got, 2)
}

func TestSignalDirTopicsAreIndependent(t *testing.T) {
	transport, err := NewSignalDirTransport(t.TempDir())
	require.NoError(t, err)
	defer transport.Close()

	ctx := context.Background()
	var trending, blogs int32
	_, err = transport.Subscribe(ctx, "trending", func() { atomic.AddInt32(&trending, 1) })
	require.NoError(t, err)
	_, err = transport.Subscribe(ctx, "blogs", func() { atomic.AddInt32(&blogs, 1) })
	require.NoError(t, err)

	require.NoError(t, transport.Publish(ctx, "blogs"))
	waitForCount(t, &blogs, 1)
	assert.Equal(t, int32(0), atomic.LoadInt32(&trending))
}

func TestSignalDirLateSubscriberMissesEarlierPublish(t *testing.T) {
	transport, err := NewSignalDirTransport(t.TempDir())
	require.NoError(t, err)
	defer transport.Close()

	ctx := context.Background()
	require.NoError(t, transport.Publish(ctx, "popular"))

	var got int32
	_, err = transport.Subscribe(ctx, "popular", func() { atomic.AddInt32(&got, 1) })
	require.NoError(t, err)

	// No signal is replayed for the publish that happened before subscribing.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&got))

	require.NoError(t, transport.Publish(ctx, "popular"))
	waitForCount(t, &got, 1)
}

func TestBusSwallowsPublishErrors(t *testing.T) {
	bus := NewBus(failingTransport{}, nil)
	assert.NoError(t, bus.Publish(context.Background(), "trending"))
}

type failingTransport struct{}

func (failingTransport) Publish(ctx context.Context, topic string) error {
	return assert.AnError
}

func (failingTransport) Subscribe(ctx context.Context, topic string, fn func()) (func(), error) {
	return func() {}, nil
}

func (failingTransport) Close() error { return nil }
