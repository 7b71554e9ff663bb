/*
Package handler provides the HTTP handlers and routing for the chat server.

This file defines the router, applying CORS, request logging, and recovery
middleware before delegating to the health, metrics, status, and websocket
handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"gochat/internal/pkg/limiter"
	"gochat/internal/pkg/logx"
	"gochat/internal/pkg/resp"
)

const (
	// ConnectRate and ConnectBurst bound how fast one IP may open
	// websocket connections.
	ConnectRate  = 0.2
	ConnectBurst = 5
)

// Router builds the HTTP routing table: middleware, health and metrics
// endpoints, the room status API, and the websocket entry point.
func Router(deps *AppDeps) http.Handler {
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: origin not allowed", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	r := chi.NewRouter()
	r.Use(c.Handler)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, map[string]string{
			"status":  "ok",
			"service": "gochat",
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/room", HandleRoomStatus(deps))

	r.Get("/ws", HandleWebSocket(wsUpgrader, connectLimiter, deps))

	return r
}
