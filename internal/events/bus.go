package events

import (
	"context"
	"sync"

	"equiprent-core/internal/domain"
)

// Subscriber receives every envelope published on a Bus.
type Subscriber func(Envelope)

// Bus is a synchronous in-process Publisher with subscriber fan-out.
// External broker integrations implement Publisher directly.
type Bus struct {
	mu   sync.RWMutex
	subs []Subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish wraps each event in an envelope and delivers it to every
// subscriber in registration order.
func (b *Bus) Publish(_ context.Context, evts ...domain.Event) error {
	b.mu.RLock()
	subs := make([]Subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, event := range evts {
		envelope, err := NewEnvelope(event)
		if err != nil {
			return err
		}
		for _, fn := range subs {
			fn(envelope)
		}
	}
	return nil
}
