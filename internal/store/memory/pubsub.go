package memory

import (
	"context"
	"sync"
)

// subscriberBuffer matches the buffering of the Redis implementation.
const subscriberBuffer = 64

// PubSub fans messages out to in-process subscribers. Delivery is
// best-effort: a subscriber whose buffer is full misses the message.
type PubSub struct {
	mu   sync.Mutex
	subs map[string]map[chan []byte]struct{}
}

func NewPubSub() *PubSub {
	return &PubSub{subs: make(map[string]map[chan []byte]struct{})}
}

func (ps *PubSub) Publish(_ context.Context, channel string, payload []byte) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for ch := range ps.subs[channel] {
		select {
		case ch <- append([]byte(nil), payload...):
		default:
		}
	}
	return nil
}

// Subscribe registers for messages on channel. The returned channel closes
// when ctx is done or cleanup is called.
func (ps *PubSub) Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error) {
	ch := make(chan []byte, subscriberBuffer)

	ps.mu.Lock()
	if ps.subs[channel] == nil {
		ps.subs[channel] = make(map[chan []byte]struct{})
	}
	ps.subs[channel][ch] = struct{}{}
	ps.mu.Unlock()

	var once sync.Once
	done := make(chan struct{})
	cleanup := func() {
		once.Do(func() {
			close(done)

			ps.mu.Lock()
			defer ps.mu.Unlock()

			delete(ps.subs[channel], ch)
			if len(ps.subs[channel]) == 0 {
				delete(ps.subs, channel)
			}
			close(ch)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			cleanup()
		case <-done:
		}
	}()

	return ch, cleanup, nil
}
