/*
Package handler provides the HTTP handlers and routing for the chat server.

This file contains the WebSocket upgrade handler. It rate limits by client
IP, reads the optional out-of-band identity from the query string, upgrades
the connection, and hands the resulting transport to the chat core.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"gochat/internal/app/chat"
	"gochat/internal/app/user"
	"gochat/internal/pkg/errs"
	"gochat/internal/pkg/limiter"
	"gochat/internal/pkg/logx"
	"gochat/internal/pkg/resp"
)

// HandleWebSocket returns the handler for websocket connection requests.
// A `name` query parameter supplies the identity out-of-band and skips the
// join handshake; without it the client's first frame must be a join.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r.RemoteAddr)

		if !rateLimiter.Allow(ip) {
			logx.Warn("WebSocket connection rejected: rate limit exceeded", "ip", ip)
			resp.RespondError(w, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		var identity *user.Info
		if name := r.URL.Query().Get("name"); name != "" {
			identity = &user.Info{Name: name, Room: deps.Room.Name()}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		logx.Info("WebSocket connection established", "room", deps.Room.Name())

		// Blocks for the lifetime of the session; the handler goroutine
		// doubles as the session's reader loop.
		chat.RunSession(deps.Room, chat.NewWebSocketTransport(conn), identity)
	}
}
