package daemon

import (
	"sync"
	"time"
)

// hub keeps the most recent events and fans new ones out to stream
// subscribers. Slow subscribers miss events rather than block a poll.
type hub struct {
	mu     sync.Mutex
	limit  int
	lastID int64
	recent []Event

	lastSub int
	subs    map[int]chan Event
}

func newHub(limit int) *hub {
	return &hub{limit: limit, subs: make(map[int]chan Event)}
}

// emit numbers a new event, records it and delivers it to subscribers.
func (h *hub) emit(typ string, at time.Time, snap Snapshot, d Delta) Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastID++
	ev := Event{ID: h.lastID, Type: typ, Timestamp: at, Snapshot: snap, Delta: d}

	h.recent = append(h.recent, ev)
	if over := len(h.recent) - h.limit; over > 0 {
		h.recent = append(h.recent[:0:0], h.recent[over:]...)
	}
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

// history returns a copy of the buffered events, oldest first.
func (h *hub) history() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Event(nil), h.recent...)
}

// subscribe registers a buffered channel; call the returned func to leave.
func (h *hub) subscribe(buf int) (<-chan Event, func()) {
	ch := make(chan Event, buf)

	h.mu.Lock()
	h.lastSub++
	id := h.lastSub
	h.subs[id] = ch
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

func (h *hub) counts() (events, subscribers int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.recent), len(h.subs)
}
