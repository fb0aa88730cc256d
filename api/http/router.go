package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/careeradvisor/api/http/handlers"
	"github.com/artem13815/careeradvisor/api/http/presenter"
	"github.com/artem13815/careeradvisor/pkg/chat"
	"github.com/artem13815/careeradvisor/pkg/security/jwt"
)

// Handlers groups everything Register needs.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Advice   *handlers.AdviceHandler
	Sessions *handlers.SessionsHandler
	// AuthMW guards everything except health, info and auth.
	AuthMW fiber.Handler
	// AdviceLimit throttles calls that reach the inference API.
	AdviceLimit fiber.Handler
}

// NewApp returns a Fiber app that renders errors as presenter.ErrorResponse.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "career-advisor",
		ErrorHandler: presenter.ErrorHandler,
	})
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers) {
	v1 := app.Group("/api/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)
	v1.Get("/info", handlers.Info(chat.Greeting))

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	limit := h.AdviceLimit
	if limit == nil {
		limit = func(c *fiber.Ctx) error { return c.Next() }
	}

	v1.Post("/advice", h.AuthMW, limit, h.Advice.Ask)

	s := v1.Group("/sessions", h.AuthMW)
	s.Post("/", h.Sessions.Create)
	s.Get("/", h.Sessions.List)
	s.Get("/:id", h.Sessions.Get)
	s.Delete("/:id", h.Sessions.Delete)
	s.Post("/:id/messages", limit, h.Sessions.Ask)
	s.Post("/:id/clear", h.Sessions.Clear)
}

// UserKey keys rate limiting by authenticated user.
func UserKey(c *fiber.Ctx) string {
	if id, ok := jwt.UserID(c); ok {
		return id.String()
	}
	return ""
}
