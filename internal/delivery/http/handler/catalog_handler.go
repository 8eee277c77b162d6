package handler

import (
	"sukasamasuka/internal/delivery/http/middleware"
	"sukasamasuka/internal/domain/catalog"
	"sukasamasuka/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// CatalogHandler serves the static pick-lists the posting form is built
// from: states, districts per state, job titles, grades per title.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/states", h.States)
	r.Get("/districts", h.Districts)
	r.Get("/jobs", h.Jobs)
	r.Get("/grades", h.Grades)
}

func (h *CatalogHandler) States(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, catalog.States())
}

func (h *CatalogHandler) Districts(c fiber.Ctx) error {
	state := c.Query("state")
	districts := catalog.Districts(state)
	if districts == nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Unknown state", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, districts)
}

func (h *CatalogHandler) Jobs(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, catalog.JobTitles())
}

func (h *CatalogHandler) Grades(c fiber.Ctx) error {
	title := c.Query("title")
	grades := catalog.Grades(title)
	if grades == nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Unknown job title", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, grades)
}
