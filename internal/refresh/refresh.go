// Package refresh fans "this dataset changed" signals out to open storefront
// views. Delivery is best-effort and at-most-once per publish: a subscriber
// that is not listening at publish time simply sees the new data on its next
// natural reload.
package refresh

import (
	"context"

	"go.uber.org/zap"
)

// Transport moves a topic signal between processes.
type Transport interface {
	Publish(ctx context.Context, topic string) error
	Subscribe(ctx context.Context, topic string, fn func()) (cancel func(), err error)
	Close() error
}

// Bus wraps a Transport with best-effort semantics: publish failures are
// logged and swallowed so a flaky signal path can never break a save.
type Bus struct {
	transport Transport
	logger    *zap.Logger
}

// NewBus creates a bus over the given transport. logger may be nil.
func NewBus(transport Transport, logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{transport: transport, logger: logger}
}

// Publish signals that topic's dataset changed upstream. Always returns nil.
func (b *Bus) Publish(ctx context.Context, topic string) error {
	if err := b.transport.Publish(ctx, topic); err != nil {
		b.logger.Warn("refresh publish failed",
			zap.String("topic", topic),
			zap.Error(err))
	}
	return nil
}

// Subscribe invokes fn once for every signal observed on topic. The returned
// cancel func stops delivery.
func (b *Bus) Subscribe(ctx context.Context, topic string, fn func()) (func(), error) {
	return b.transport.Subscribe(ctx, topic, fn)
}

// Close shuts the underlying transport down.
func (b *Bus) Close() error {
	return b.transport.Close()
}
