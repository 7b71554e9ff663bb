/*
Package main is the entry point of the chat server.

It loads configuration, initializes the global logger, constructs the single
shared Room, wires the HTTP router, and runs the server until an interrupt
signal triggers a graceful shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gochat/internal/app/chat"
	"gochat/internal/configs"
	"gochat/internal/handler"
	"gochat/internal/pkg/logx"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.Init(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("room", cfg.RoomName).
		Int("history_capacity", cfg.HistoryCapacity).
		Int("send_queue_capacity", cfg.SendQueueCapacity).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The one Room for the process's lifetime, injected into the handlers.
	room := chat.NewRoom(cfg.RoomName, cfg.HistoryCapacity, cfg.SendQueueCapacity)

	router := handler.Router(&handler.AppDeps{
		Room:   room,
		Config: cfg,
	})

	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     router,
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Chat server starting on http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal, starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server stopped")
}
