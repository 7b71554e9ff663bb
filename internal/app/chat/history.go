/*
Package chat contains the core logic for the shared chat room.

This file defines the bounded in-memory message log. It is a plain ring
buffer with no locking of its own: the Room mutates it only inside its own
critical sections.
*/
package chat

// History is a fixed-capacity ordered log of broadcast messages. Appending
// beyond capacity evicts the oldest entry.
type History struct {
	frames []Message
	start  int
	count  int
}

// NewHistory returns an empty log holding at most capacity messages.
// Capacity must be positive.
func NewHistory(capacity int) *History {
	return &History{frames: make([]Message, capacity)}
}

// Append records a message, evicting the oldest one when the log is full.
func (h *History) Append(m Message) {
	end := (h.start + h.count) % len(h.frames)
	h.frames[end] = m

	if h.count == len(h.frames) {
		h.start = (h.start + 1) % len(h.frames)
	} else {
		h.count++
	}
}

// Len reports how many messages the log currently holds.
func (h *History) Len() int {
	return h.count
}

// Snapshot returns the logged messages in order, oldest first.
func (h *History) Snapshot() []Message {
	out := make([]Message, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.frames[(h.start+i)%len(h.frames)]
	}
	return out
}
