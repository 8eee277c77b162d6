package v1

import (
	"sukasamasuka/internal/delivery/http/handler"
	"sukasamasuka/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers collects the v1 API surface; construction happens in the app
// container.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	JobPost *handler.JobPostHandler
	Match   *handler.MatchHandler
	Connect *handler.ConnectHandler
	Profile *handler.ProfileHandler
	Chat    *handler.ChatHandler
}

func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Catalog != nil {
		h.Catalog.RegisterRoutes(r.Group("/catalog"))
	}

	if authMw == nil {
		return
	}
	protected := r.Group("", authMw.Middleware())

	if h.JobPost != nil {
		h.JobPost.RegisterRoutes(protected.Group("/posts"))
	}
	if h.Match != nil {
		h.Match.RegisterRoutes(protected.Group("/matches"))
	}
	if h.Connect != nil {
		h.Connect.RegisterRoutes(protected.Group("/connects"))
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(protected.Group("/me"))
	}
	if h.Chat != nil {
		h.Chat.RegisterRoutes(protected.Group("/chat"))
	}
}
