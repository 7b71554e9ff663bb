package handler

import (
	"gochat/internal/app/chat"
	"gochat/internal/configs"
)

// AppDeps bundles the shared dependencies handlers need. The Room is the
// single process-wide instance constructed in main and injected here.
type AppDeps struct {
	Room   *chat.Room
	Config *configs.AppConfig
}
