// Package notifier fans ledger notifications out to in-process
// subscribers (the SSE stream, tests, any embedded indexer) and logs
// every event.
package notifier

import (
	"context"
	"log/slog"
	"sync"

	"github.com/openballot/ledger/internal/core/domain"
)

const subscriberBuffer = 64

type Broadcaster struct {
	mu     sync.Mutex
	subs   map[uint64]chan domain.Event
	nextID uint64
	logger *slog.Logger
}

func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		subs:   make(map[uint64]chan domain.Event),
		logger: logger,
	}
}

// Notify delivers the event to every subscriber without blocking. A
// subscriber whose buffer is full misses the event; indexers are expected
// to resync through reads.
func (b *Broadcaster) Notify(ctx context.Context, event domain.Event) {
	b.logger.Info("notification emitted",
		"event_id", event.ID.String(),
		"kind", string(event.Kind),
	)

	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Warn("subscriber lagging, event dropped",
				"subscriber", id,
				"event_id", event.ID.String(),
			)
		}
	}
}

// Subscribe registers a new subscriber. The returned cancel func must be
// called to release the subscription; the channel is closed by it.
func (b *Broadcaster) Subscribe() (<-chan domain.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan domain.Event, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}
