package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	TypeAssessment = "assessment"
	TypeRejected   = "rejected"
)

// Event is what the dashboard's live feed receives after each request.
type Event struct {
	Type         string    `json:"type"`
	Mode         string    `json:"mode,omitempty"`
	Label        string    `json:"label,omitempty"`
	TotalTargets int64     `json:"totalTargets,omitempty"`
	Message      string    `json:"message,omitempty"`
	At           time.Time `json:"at"`
}

type Hub struct {
	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan []byte]struct{})}
}

func (h *Hub) Subscribe() chan []byte {
	ch := make(chan []byte, 64)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	_, ok := h.subs[ch]
	delete(h.subs, ch)
	h.mu.Unlock()
	if ok {
		close(ch)
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Publish never blocks; subscribers with a full buffer miss the event.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	b, _ := json.Marshal(e)
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- b:
		default:
		}
	}
	h.mu.Unlock()
}
