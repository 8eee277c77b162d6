package routes

import (
	"sukasamasuka/internal/delivery/http/handler"
	"sukasamasuka/internal/delivery/http/middleware"
	v1 "sukasamasuka/internal/delivery/http/routes/v1"
	"sukasamasuka/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	handlers v1.Handlers
	health   *handler.HealthHandler
	chatWS   *ws.Handler
	authMw   *middleware.AuthMiddleware
}

func NewRegistry(handlers v1.Handlers, health *handler.HealthHandler, chatWS *ws.Handler, authMw *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: handlers, health: health, chatWS: chatWS, authMw: authMw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.handlers, r.authMw)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.chatWS == nil {
		return
	}
	app.Get("/ws/chat/:roomID", r.chatWS.HandleChatWS)
}
