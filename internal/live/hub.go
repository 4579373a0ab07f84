package live

import "sync"

// Hub fans out change signals per topic. A signal carries no payload; the
// subscriber re-reads the full current snapshot, so consecutive changes
// coalesce into one push.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan struct{}]struct{})}
}

type Subscription struct {
	C     <-chan struct{}
	hub   *Hub
	topic string
	ch    chan struct{}
	once  sync.Once
}

func (h *Hub) Subscribe(topic string) *Subscription {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	set, ok := h.subs[topic]
	if !ok {
		set = make(map[chan struct{}]struct{})
		h.subs[topic] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	return &Subscription{C: ch, hub: h, topic: topic, ch: ch}
}

// Cancel releases the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		if set, ok := s.hub.subs[s.topic]; ok {
			delete(set, s.ch)
			if len(set) == 0 {
				delete(s.hub.subs, s.topic)
			}
		}
		s.hub.mu.Unlock()
	})
}

// Publish signals every subscriber of the topic. Never blocks: a subscriber
// that already has a pending signal keeps the single pending one.
func (h *Hub) Publish(topic string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
