package server

import (
	"log"

	"pm-studio-be/internal/bootstrap"
	"pm-studio-be/internal/config"
	"pm-studio-be/internal/pkg/serverutils"
	ws "pm-studio-be/internal/websocket"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 2 * 1024 * 1024, // 2MB, documents are text
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.SessionController.RegisterRoutes(api)
	c.DocumentController.RegisterRoutes(api)
	c.ReviewController.RegisterRoutes(api)
	c.PhaseController.RegisterRoutes(api)
	c.RosterController.RegisterRoutes(api)
	c.ChatController.RegisterRoutes(api)
	c.FacilitatorController.RegisterRoutes(api)

	registerWebSocket(app, c)
}

// registerWebSocket wires the live event stream. The token travels as a
// query parameter because browsers cannot set headers on websocket upgrades.
func registerWebSocket(app *fiber.App, c *bootstrap.Container) {
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		sessionId, ok := serverutils.SessionIdFromToken(ctx.Query("token"))
		if !ok {
			return fiber.ErrUnauthorized
		}
		ctx.Locals("session_id", sessionId)
		return ctx.Next()
	})

	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		sessionId := conn.Locals("session_id").(string)
		ws.ServeWs(c.WebSocketHub, conn, sessionId)
	}))
}
