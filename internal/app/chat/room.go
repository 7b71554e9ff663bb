/*
Package chat contains the core logic for the shared chat room.

This file defines the Room, the single source of truth for membership and
in-order broadcast fan-out. Every mutation happens inside one of three
operations (Join, Leave, Broadcast), each a single critical section under one
mutex. The critical sections contain no I/O and no blocking send, so a slow
member can never stall fan-out to the others.
*/
package chat

import (
	"sync"

	"github.com/rs/zerolog"

	"gochat/internal/app/user"
	"gochat/internal/pkg/logx"
	"gochat/internal/pkg/randx"
)

const (
	// DefaultHistoryCapacity bounds the in-memory message log.
	DefaultHistoryCapacity = 1000

	// DefaultQueueCapacity bounds each member's outbound queue.
	DefaultQueueCapacity = 256
)

// SessionHandle is the Room's registration entry for one member. The owning
// session uses it for Leave calls; the Room uses its queue for fan-out.
type SessionHandle struct {
	id   string
	user user.Info

	// outbound is the member's private FIFO queue. The Room is the only
	// sender (always under the Room lock) and the session's writer loop
	// is the only consumer, except for the Room evicting the oldest entry
	// when the queue is full.
	outbound chan Message

	// dropped counts frames evicted from this member's queue.
	dropped int
}

// ID returns the opaque identifier assigned at registration.
func (h *SessionHandle) ID() string { return h.id }

// User returns the member's immutable identity.
func (h *SessionHandle) User() user.Info { return h.user }

// Outbound returns the receive side of the member's queue. The session's
// writer loop drains it; the channel is closed by Leave.
func (h *SessionHandle) Outbound() <-chan Message { return h.outbound }

// Room holds the shared state of the single chat room: the ordered member
// list and the bounded message log.
type Room struct {
	name     string
	queueCap int

	mu      sync.Mutex
	members []*SessionHandle
	history *History

	logger zerolog.Logger
}

// NewRoom constructs an empty room. historyCap and queueCap fall back to the
// package defaults when non-positive.
func NewRoom(name string, historyCap, queueCap int) *Room {
	if historyCap <= 0 {
		historyCap = DefaultHistoryCapacity
	}
	if queueCap <= 0 {
		queueCap = DefaultQueueCapacity
	}

	roomLogger := logx.Logger().With().
		Str("room", name).
		Logger()

	return &Room{
		name:     name,
		queueCap: queueCap,
		history:  NewHistory(historyCap),
		logger:   roomLogger,
	}
}

// Name returns the room identifier.
func (r *Room) Name() string { return r.name }

// Join registers a new member, preserving arrival order, and enqueues a
// fresh user-list snapshot to every member including the new one. It returns
// the handle the caller must use for Leave.
func (r *Room) Join(u user.Info) *SessionHandle {
	h := &SessionHandle{
		id:       randx.SessionID(),
		user:     u,
		outbound: make(chan Message, r.queueCap),
	}

	r.mu.Lock()
	r.members = append(r.members, h)
	total := len(r.members)
	r.fanOutLocked(Message{Kind: KindUserList, Users: r.namesLocked()})
	r.mu.Unlock()

	membersGauge.Inc()
	sessionsTotal.Inc()

	r.logger.Info().
		Str("session_id", h.id).
		Str("user", u.Name).
		Int("total_members", total).
		Msg("Member joined room")

	return h
}

// Leave removes a member and broadcasts the updated user list. It is
// idempotent: removing a handle that is not registered is a no-op. The
// member's outbound queue is closed, which releases its writer loop.
func (r *Room) Leave(h *SessionHandle) {
	r.mu.Lock()

	idx := -1
	for i, m := range r.members {
		if m == h {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return
	}

	r.members = append(r.members[:idx], r.members[idx+1:]...)
	close(h.outbound)
	total := len(r.members)
	dropped := h.dropped
	r.fanOutLocked(Message{Kind: KindUserList, Users: r.namesLocked()})
	r.mu.Unlock()

	membersGauge.Dec()

	r.logger.Info().
		Str("session_id", h.id).
		Str("user", h.user.Name).
		Int("total_members", total).
		Int("dropped_frames", dropped).
		Msg("Member left room")
}

// Broadcast appends the message to the bounded log and enqueues a copy onto
// every member's queue, including the sender. Concurrent callers are
// serialized by the room lock, so all members observe the same total order.
func (r *Room) Broadcast(m Message, from *SessionHandle) {
	r.mu.Lock()
	r.history.Append(m)
	r.fanOutLocked(m)
	r.mu.Unlock()

	broadcastsTotal.Inc()

	r.logger.Debug().
		Str("session_id", from.id).
		Str("from", from.user.Name).
		Msg("Broadcast fanned out")
}

// fanOutLocked enqueues a copy of m for every current member. Callers must
// hold r.mu. Enqueue never blocks: when a member's queue is full its oldest
// entry is evicted to make room, degrading only that member.
func (r *Room) fanOutLocked(m Message) {
	for _, member := range r.members {
		r.enqueueLocked(member, m)
	}
}

// enqueueLocked implements the drop-oldest overflow policy for one member.
// Callers must hold r.mu, which makes the Room the only sender on the queue.
func (r *Room) enqueueLocked(h *SessionHandle, m Message) {
	select {
	case h.outbound <- m:
		return
	default:
	}

	// Queue full. Evict the oldest entry; the select guards against the
	// writer loop draining it first.
	select {
	case <-h.outbound:
		h.dropped++
		droppedFramesTotal.Inc()
		r.logger.Warn().
			Str("session_id", h.id).
			Str("user", h.user.Name).
			Msg("Member queue full, dropped oldest frame")
	default:
	}

	select {
	case h.outbound <- m:
	default:
		// Unreachable while the lock is held: eviction or the writer
		// loop freed at least one slot.
	}
}

// namesLocked snapshots the member names in join order. Callers must hold r.mu.
func (r *Room) namesLocked() []string {
	names := make([]string, len(r.members))
	for i, m := range r.members {
		names[i] = m.user.Name
	}
	return names
}

// MemberNames returns the current member names in join order.
func (r *Room) MemberNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.namesLocked()
}

// HistoryLen reports how many messages the bounded log currently holds.
func (r *Room) HistoryLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.history.Len()
}

// HistorySnapshot returns the logged messages in broadcast order.
func (r *Room) HistorySnapshot() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.history.Snapshot()
}
