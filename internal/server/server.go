// Package server exposes chess game sessions over HTTP and WebSocket.
// Each session owns one game and serialises every request touching it.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/jchess-go/internal/config"
)

// New builds the application with every route registered.
func New(cfg *config.Config, store *SessionStore) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "jchess",
		DisableStartupMessage: cfg.Verbosity < 1,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	if cfg.Verbosity > 0 && cfg.LogFile != nil {
		app.Use(logger.New(logger.Config{
			Output: cfg.LogFile,
		}))
	}

	h := NewHandler(store, cfg)

	// WebSocket routes
	app.Use("/ws", upgradeOnly)
	app.Get("/ws/games/:id", websocket.New(h.handleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	// REST routes
	games := app.Group("/api/games")
	games.Get("/", h.ListGames)
	games.Post("/", h.CreateGame)
	games.Get("/:id", h.GetGame)
	games.Delete("/:id", h.DeleteGame)
	games.Post("/:id/moves", h.MakeMove)
	games.Get("/:id/destinations/:square", h.Destinations)
	games.Get("/:id/board.svg", h.BoardSVG)

	return app
}
