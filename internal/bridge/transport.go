package bridge

import (
	"context"
	"sync"
)

// Transport is a named-event broadcast fabric between the privileged host
// and UI contexts. It carries no correlation of its own: every subscriber
// of an event sees every published payload. The correlated Channel is built
// on top of this.
type Transport interface {
	// Publish broadcasts payload to all current subscribers of event.
	Publish(ctx context.Context, event string, payload []byte) error

	// Subscribe registers fn for event and returns an unsubscribe func.
	// Multiple subscriptions to the same event all receive the event.
	Subscribe(event string, fn func(payload []byte)) (func(), error)
}

// InMemoryTransport is the same-process transport used when host and UI
// share one process. Delivery is asynchronous so a handler may publish its
// reply from within delivery without deadlocking.
type InMemoryTransport struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func(payload []byte)
	closed bool
}

func NewInMemoryTransport() *InMemoryTransport {
	return &InMemoryTransport{
		subs: make(map[string]map[int]func(payload []byte)),
	}
}

func (t *InMemoryTransport) Publish(_ context.Context, event string, payload []byte) error {
	t.mu.RLock()
	targets := make([]func([]byte), 0, len(t.subs[event]))
	for _, fn := range t.subs[event] {
		targets = append(targets, fn)
	}
	t.mu.RUnlock()

	for _, fn := range targets {
		go fn(payload)
	}
	return nil
}

func (t *InMemoryTransport) Subscribe(event string, fn func(payload []byte)) (func(), error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	if t.subs[event] == nil {
		t.subs[event] = make(map[int]func(payload []byte))
	}
	t.subs[event][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			delete(t.subs[event], id)
			if len(t.subs[event]) == 0 {
				delete(t.subs, event)
			}
		})
	}, nil
}
