/*
Package chat contains the core logic for the shared chat room.

This file defines the per-connection session: the join handshake, the reader
loop dispatching inbound frames to the Room, and the writer loop draining the
member's outbound queue. Every exit path funnels through a sync.Once so the
session leaves the Room exactly once, whether the client closed cleanly,
the transport failed, or the client violated the protocol.
*/
package chat

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gochat/internal/app/user"
	"gochat/internal/pkg/logx"
	"gochat/internal/pkg/randx"
)

// session holds the server-side state for one connected client.
type session struct {
	room      *Room
	transport Transport
	handle    *SessionHandle

	closeOnce sync.Once

	logger zerolog.Logger
}

// RunSession drives one connection through its lifecycle and blocks until
// the session is closed. When identity is nil the client's first frame must
// be a join envelope; any other first frame is a protocol violation and the
// connection is dropped without ever registering with the room. When
// identity is supplied out-of-band the handshake is skipped.
func RunSession(room *Room, t Transport, identity *user.Info) {
	info, ok := awaitIdentity(room, t, identity)
	if !ok {
		t.Close()
		return
	}

	if info.Name == "" {
		info.Name = randx.GuestNickname()
	}
	info.Room = room.Name()

	s := &session{
		room:      room,
		transport: t,
		handle:    room.Join(info),
	}
	s.logger = logx.Logger().With().
		Str("session_id", s.handle.ID()).
		Str("user", info.Name).
		Str("room", room.Name()).
		Logger()

	go s.writePump()
	s.readPump()
}

// awaitIdentity resolves the session's identity, reading the join handshake
// from the transport when none was supplied out-of-band. It reports false
// when the connection must be dropped unregistered.
func awaitIdentity(room *Room, t Transport, identity *user.Info) (user.Info, bool) {
	if identity != nil {
		return *identity, true
	}

	frame, err := t.ReadMessage()
	if err != nil {
		logx.Info("Connection closed before join handshake", "room", room.Name())
		return user.Info{}, false
	}

	msg := Decode(frame)
	if msg.Kind != KindJoin {
		logx.Warn("Protocol violation: first frame was not a join, dropping connection",
			"room", room.Name(),
			"frame_kind", string(msg.Kind),
		)
		return user.Info{}, false
	}

	return msg.Join, true
}

// readPump decodes inbound frames and dispatches them until the transport
// fails or the client disconnects. It owns the session teardown.
func (s *session) readPump() {
	defer s.close()

	for {
		frame, err := s.transport.ReadMessage()
		if err != nil {
			s.logger.Debug().Err(err).Msg("Read loop terminating")
			return
		}

		s.dispatch(Decode(frame))
	}
}

// dispatch routes one decoded inbound message. Chat messages are stamped
// with the sender's name and broadcast; everything else is reported and
// ignored, never fatal.
func (s *session) dispatch(msg Message) {
	switch msg.Kind {
	case KindChat:
		out := Message{
			Kind: KindChat,
			Chat: ChatContent{
				Text: msg.Chat.Text,
				From: s.handle.User().Name,
			},
		}
		s.room.Broadcast(out, s.handle)

	case KindJoin:
		// The declared identity never changes after registration.
		s.logger.Warn().Msg("Protocol violation: repeat join on an active session, ignored")

	case KindUnrecognized:
		s.logger.Warn().
			Str("frame", msg.Raw).
			Msg("Unrecognized frame ignored")

	default:
		// Server-to-client kinds have no business arriving inbound.
		s.logger.Warn().
			Str("frame_kind", string(msg.Kind)).
			Msg("Client sent a server-only frame, ignored")
	}
}

// writePump drains the outbound queue, encoding each message onto the
// transport, and keeps the connection alive with periodic pings. A write
// failure tears the whole session down.
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer s.close()

	for {
		select {
		case msg, ok := <-s.handle.Outbound():
			if !ok {
				// Queue closed by Room.Leave.
				return
			}
			if err := s.transport.WriteMessage(Encode(msg)); err != nil {
				s.logger.Debug().Err(err).Msg("Write loop terminating")
				return
			}

		case <-ticker.C:
			if err := s.transport.Ping(); err != nil {
				s.logger.Debug().Err(err).Msg("Ping failed, write loop terminating")
				return
			}
		}
	}
}

// close deregisters the session and closes the transport, exactly once no
// matter which loop or error path got here first. Closing the transport
// unblocks the reader; Leave closes the outbound queue, unblocking the
// writer.
func (s *session) close() {
	s.closeOnce.Do(func() {
		s.room.Leave(s.handle)
		if err := s.transport.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Transport close error during teardown")
		}
		s.logger.Info().Msg("Session closed")
	})
}
