/*
Package chat contains the core logic for the shared chat room: the wire protocol,
room membership, broadcast fan-out, and the per-connection session lifecycle.

This file defines the tagged message envelope exchanged with clients and the
Encode/Decode pair. Decode is total: any frame that does not match a known
shape becomes a KindUnrecognized message instead of an error, so a hostile or
buggy client can never break the decoding path.
*/
package chat

import (
	"encoding/json"

	"gochat/internal/app/user"
)

// Kind is the discriminator carried in the "type" field of every frame.
type Kind string

const (
	// KindJoin declares the sender's identity. Valid only as the first
	// frame of a connection that supplied no out-of-band identity.
	KindJoin Kind = "join"

	// KindChat carries a text message. Inbound frames hold only the text;
	// outbound copies are stamped with the sender's name.
	KindChat Kind = "chat"

	// KindUserList is a server-to-client snapshot of current member names
	// in join order.
	KindUserList Kind = "userListUpdate"

	// KindUnrecognized is the catch-all for frames that match no known
	// shape. It is never forwarded to other clients.
	KindUnrecognized Kind = "unrecognized"
)

// ChatContent is the payload of a KindChat message.
type ChatContent struct {
	Text string `json:"text"`

	// From is set by the server when fanning out; inbound frames omit it.
	From string `json:"from,omitempty"`
}

// Message is the decoded form of a frame. Exactly one payload field is
// meaningful, selected by Kind.
type Message struct {
	Kind Kind

	Chat  ChatContent
	Join  user.Info
	Users []string

	// Raw holds the original frame text for KindUnrecognized.
	Raw string
}

// envelope is the wire shape: {"type": ..., "content": ...}.
type envelope struct {
	Type    Kind            `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
}

// Encode serializes a message into its wire frame. It cannot fail for any
// constructible message: every payload is built from plain strings and
// slices, which always marshal. Unrecognized messages encode back to the
// raw frame they were decoded from.
func Encode(m Message) []byte {
	if m.Kind == KindUnrecognized {
		return []byte(m.Raw)
	}

	var content any
	switch m.Kind {
	case KindJoin:
		content = m.Join
	case KindChat:
		content = m.Chat
	case KindUserList:
		names := m.Users
		if names == nil {
			names = []string{}
		}
		content = names
	}

	raw, _ := json.Marshal(content)
	frame, _ := json.Marshal(envelope{Type: m.Kind, Content: raw})
	return frame
}

// Decode parses a frame into a Message. It is total over any input: frames
// that are not JSON, carry an unknown type, or hold a malformed content
// payload decode to KindUnrecognized with the original frame preserved in
// Raw. Decode never returns an error.
func Decode(frame []byte) Message {
	unrecognized := Message{Kind: KindUnrecognized, Raw: string(frame)}

	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return unrecognized
	}

	switch env.Type {
	case KindJoin:
		var info user.Info
		if err := json.Unmarshal(env.Content, &info); err != nil {
			return unrecognized
		}
		return Message{Kind: KindJoin, Join: info}

	case KindChat:
		var content ChatContent
		if err := json.Unmarshal(env.Content, &content); err != nil {
			return unrecognized
		}
		return Message{Kind: KindChat, Chat: content}

	case KindUserList:
		var names []string
		if err := json.Unmarshal(env.Content, &names); err != nil {
			return unrecognized
		}
		return Message{Kind: KindUserList, Users: names}
	}

	return unrecognized
}
