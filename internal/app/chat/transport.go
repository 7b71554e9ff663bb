/*
Package chat contains the core logic for the shared chat room.

This file defines the Transport abstraction between a session and its
underlying duplex message channel, plus the gorilla/websocket adapter used in
production. The listener and upgrade handshake live outside this package;
sessions only ever see a Transport.
*/
package chat

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	// timeout for writing a frame to the connection.
	writeWait = 10 * time.Second

	// maximum time to wait for a Pong before the read side gives up.
	pongWait = 60 * time.Second

	// frequency of the writer loop's Ping messages.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of an inbound frame.
	maxFrameSize = 8192
)

// Transport is a duplex message channel. ReadMessage blocks until the next
// inbound frame; WriteMessage sends one outbound frame. Close unblocks both
// sides. Any method may fail with a transport error, which is terminal for
// the session that owns it.
type Transport interface {
	ReadMessage() ([]byte, error)
	WriteMessage(frame []byte) error
	Ping() error
	Close() error
}

// wsTransport adapts a gorilla websocket connection to the Transport
// interface, applying the read limit, pong-refreshed read deadline and
// per-write deadline.
type wsTransport struct {
	conn *websocket.Conn
}

// NewWebSocketTransport wraps an upgraded websocket connection.
func NewWebSocketTransport(conn *websocket.Conn) Transport {
	conn.SetReadLimit(maxFrameSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	return &wsTransport{conn: conn}
}

func (t *wsTransport) ReadMessage() ([]byte, error) {
	_, frame, err := t.conn.ReadMessage()
	return frame, err
}

func (t *wsTransport) WriteMessage(frame []byte) error {
	if err := t.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return t.conn.WriteMessage(websocket.TextMessage, frame)
}

func (t *wsTransport) Ping() error {
	if err := t.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return t.conn.WriteMessage(websocket.PingMessage, nil)
}

func (t *wsTransport) Close() error {
	return t.conn.Close()
}
