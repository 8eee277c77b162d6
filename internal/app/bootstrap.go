package app

import (
	"fmt"
	"log"
	"strings"

	"sukasamasuka/internal/config"
	"sukasamasuka/internal/delivery/http/middleware"
	"sukasamasuka/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber  *fiber.App
	Notify *usecase.Notify
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	c.Registry.Register(f)

	return &App{Fiber: f, Notify: c.Notify}, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
