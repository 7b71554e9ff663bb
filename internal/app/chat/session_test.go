package chat

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"gochat/internal/app/user"
)

var errTransportClosed = errors.New("transport closed")

// fakeTransport is an in-memory Transport for session tests. Inbound frames
// are fed through the inbound channel; frames the session writes land on the
// written channel.
type fakeTransport struct {
	inbound   chan []byte
	written   chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		inbound: make(chan []byte, 16),
		written: make(chan []byte, 64),
		closed:  make(chan struct{}),
	}
}

func (t *fakeTransport) ReadMessage() ([]byte, error) {
	select {
	case frame := <-t.inbound:
		return frame, nil
	case <-t.closed:
		return nil, errTransportClosed
	}
}

func (t *fakeTransport) WriteMessage(frame []byte) error {
	select {
	case t.written <- frame:
		return nil
	case <-t.closed:
		return errTransportClosed
	}
}

func (t *fakeTransport) Ping() error {
	select {
	case <-t.closed:
		return errTransportClosed
	default:
		return nil
	}
}

func (t *fakeTransport) Close() error {
	t.closeOnce.Do(func() { close(t.closed) })
	return nil
}

// startSession runs a session in the background and returns a channel closed
// when it exits.
func startSession(r *Room, t Transport, identity *user.Info) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunSession(r, t, identity)
	}()
	return done
}

// nextWritten waits for the next frame the session wrote to its transport.
func nextWritten(t *testing.T, ft *fakeTransport) Message {
	t.Helper()

	select {
	case frame := <-ft.written:
		return Decode(frame)
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for an outbound frame")
		return Message{}
	}
}

// nextChatFrame waits for the next chat frame, skipping user list updates.
func nextChatFrame(t *testing.T, ft *fakeTransport) Message {
	t.Helper()

	for {
		msg := nextWritten(t, ft)
		if msg.Kind == KindChat {
			return msg
		}
	}
}

// waitDone fails the test if the session does not exit promptly.
func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for the session to exit")
	}
}

// waitForMembers polls until the room reports the expected member count.
func waitForMembers(t *testing.T, r *Room, count int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(r.MemberNames()) == count {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %d members, have %v", count, r.MemberNames())
}

// TestJoinHandshake checks that a connection without out-of-band identity
// registers from its first join frame and receives the user list snapshot.
func TestJoinHandshake(t *testing.T) {
	r := NewRoom("lobby", 16, 16)
	ft := newFakeTransport()

	ft.inbound <- []byte(`{"type":"join","content":{"name":"alice","room":"lobby"}}`)
	done := startSession(r, ft, nil)

	msg := nextWritten(t, ft)
	if want, got := KindUserList, msg.Kind; want != got {
		t.Fatalf("Invalid first outbound frame: expected '%s' but got '%s'", want, got)
	}
	if want, got := 1, len(msg.Users); want != got {
		t.Fatalf("Invalid user list length: expected '%d' but got '%d'", want, got)
	}
	if want, got := "alice", msg.Users[0]; want != got {
		t.Errorf("Invalid member name: expected '%s' but got '%s'", want, got)
	}

	// Disconnect drives the session to Closed and out of the room.
	ft.Close()
	waitDone(t, done)
	waitForMembers(t, r, 0)
}

// TestJoinFirstEnforcement checks that a chat frame before any join closes
// the connection without ever registering the member.
func TestJoinFirstEnforcement(t *testing.T) {
	r := NewRoom("lobby", 16, 16)
	ft := newFakeTransport()

	ft.inbound <- []byte(`{"type":"chat","content":{"text":"sneaky"}}`)
	done := startSession(r, ft, nil)

	waitDone(t, done)

	if want, got := 0, len(r.MemberNames()); want != got {
		t.Errorf("Member registered despite protocol violation: expected '%d' but got '%d'", want, got)
	}
	select {
	case <-ft.closed:
	default:
		t.Error("Transport left open after protocol violation")
	}
}

// TestEchoScenario checks the end-to-end fan-out shape: a chat from X is
// delivered to both X and Y stamped with the sender's name.
func TestEchoScenario(t *testing.T) {
	r := NewRoom("lobby", 16, 16)

	xt := newFakeTransport()
	yt := newFakeTransport()
	xDone := startSession(r, xt, &user.Info{Name: "X"})
	yDone := startSession(r, yt, &user.Info{Name: "Y"})
	waitForMembers(t, r, 2)

	xt.inbound <- []byte(`{"type":"chat","content":{"text":"hi"}}`)

	for name, ft := range map[string]*fakeTransport{"X": xt, "Y": yt} {
		msg := nextChatFrame(t, ft)
		if want, got := "hi", msg.Chat.Text; want != got {
			t.Errorf("Invalid text for %s: expected '%s' but got '%s'", name, want, got)
		}
		if want, got := "X", msg.Chat.From; want != got {
			t.Errorf("Invalid sender for %s: expected '%s' but got '%s'", name, want, got)
		}
	}

	xt.Close()
	yt.Close()
	waitDone(t, xDone)
	waitDone(t, yDone)
}

// TestDuplicateJoinIgnored checks that a second join frame on an active
// session is reported but not fatal: the identity is unchanged and the
// session keeps working.
func TestDuplicateJoinIgnored(t *testing.T) {
	r := NewRoom("lobby", 16, 16)
	ft := newFakeTransport()

	ft.inbound <- []byte(`{"type":"join","content":{"name":"alice","room":"lobby"}}`)
	done := startSession(r, ft, nil)
	waitForMembers(t, r, 1)

	ft.inbound <- []byte(`{"type":"join","content":{"name":"mallory","room":"lobby"}}`)
	ft.inbound <- []byte(`{"type":"chat","content":{"text":"still here"}}`)

	msg := nextChatFrame(t, ft)
	if want, got := "alice", msg.Chat.From; want != got {
		t.Errorf("Identity changed by repeat join: expected '%s' but got '%s'", want, got)
	}

	if want, got := 1, len(r.MemberNames()); want != got {
		t.Errorf("Invalid member count: expected '%d' but got '%d'", want, got)
	}
	if want, got := "alice", r.MemberNames()[0]; want != got {
		t.Errorf("Invalid member name: expected '%s' but got '%s'", want, got)
	}

	ft.Close()
	waitDone(t, done)
}

// TestUnrecognizedFrameIgnored checks that garbage frames never kill a
// session.
func TestUnrecognizedFrameIgnored(t *testing.T) {
	r := NewRoom("lobby", 16, 16)
	ft := newFakeTransport()

	done := startSession(r, ft, &user.Info{Name: "alice"})
	waitForMembers(t, r, 1)

	ft.inbound <- []byte("complete garbage")
	ft.inbound <- []byte(`{"type":"chat","content":{"text":"after garbage"}}`)

	msg := nextChatFrame(t, ft)
	if want, got := "after garbage", msg.Chat.Text; want != got {
		t.Errorf("Invalid text: expected '%s' but got '%s'", want, got)
	}

	ft.Close()
	waitDone(t, done)
}

// TestOutOfBandIdentitySkipsHandshake checks that a session constructed with
// identity metadata is registered without any join frame.
func TestOutOfBandIdentitySkipsHandshake(t *testing.T) {
	r := NewRoom("lobby", 16, 16)
	ft := newFakeTransport()

	done := startSession(r, ft, &user.Info{Name: "carol"})
	waitForMembers(t, r, 1)

	if want, got := "carol", r.MemberNames()[0]; want != got {
		t.Errorf("Invalid member name: expected '%s' but got '%s'", want, got)
	}

	ft.Close()
	waitDone(t, done)
	waitForMembers(t, r, 0)
}

// TestGuestNicknameAssigned checks that a join with an empty name gets a
// generated guest nickname.
func TestGuestNicknameAssigned(t *testing.T) {
	r := NewRoom("lobby", 16, 16)
	ft := newFakeTransport()

	ft.inbound <- []byte(`{"type":"join","content":{"name":"","room":""}}`)
	done := startSession(r, ft, nil)
	waitForMembers(t, r, 1)

	if got := r.MemberNames()[0]; !strings.HasPrefix(got, "guest_") {
		t.Errorf("Invalid generated nickname: expected a guest_ prefix but got '%s'", got)
	}

	ft.Close()
	waitDone(t, done)
}
