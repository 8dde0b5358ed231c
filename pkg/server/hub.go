package server

import "sync"

// hub fans a user's document snapshots out to that user's watch streams.
// Slow subscribers drop frames rather than block a writer; watchers only care
// about the latest snapshot anyway.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[chan []byte]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[chan []byte]struct{})}
}

func (h *hub) subscribe(user string) chan []byte {
	ch := make(chan []byte, 4)
	h.mu.Lock()
	if h.subs[user] == nil {
		h.subs[user] = make(map[chan []byte]struct{})
	}
	h.subs[user][ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unsubscribe(user string, ch chan []byte) {
	h.mu.Lock()
	if set, ok := h.subs[user]; ok {
		delete(set, ch)
		if len(set) == 0 {
			delete(h.subs, user)
		}
	}
	h.mu.Unlock()
}

func (h *hub) broadcast(user string, payload []byte) {
	h.mu.Lock()
	for ch := range h.subs[user] {
		select {
		case ch <- payload:
		default:
		}
	}
	h.mu.Unlock()
}
