package handler

import (
	"context"

	"sukasamasuka/internal/delivery/http/dto"
	"sukasamasuka/internal/delivery/http/middleware"
	"sukasamasuka/internal/pkg/response"
	"sukasamasuka/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// matchNotifier lets a match view kick off the fresh-match email check for
// the viewer without waiting on it.
type matchNotifier interface {
	NotifyUser(ctx context.Context, userID uuid.UUID) error
}

type MatchHandler struct {
	uc     usecase.MatchUsecase
	notify matchNotifier
}

func NewMatchHandler(uc usecase.MatchUsecase, notify matchNotifier) *MatchHandler {
	return &MatchHandler{uc: uc, notify: notify}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/cycles", h.Cycles)
}

// List returns the caller's posts with their exact and state-level match
// tiers.
func (h *MatchHandler) List(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	matches, err := h.uc.ListForUser(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	h.fireNotify(userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPostMatchesResponses(matches))
}

// Cycles returns multi-way swap chains the caller participates in.
func (h *MatchHandler) Cycles(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	cycles, err := h.uc.ListCyclesForUser(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	h.fireNotify(userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSwapCycleResponses(cycles))
}

// fireNotify runs the viewer's fresh-match check in the background. The
// notifier carries its own lock and logging; errors here have nowhere
// useful to go.
func (h *MatchHandler) fireNotify(userID uuid.UUID) {
	if h.notify == nil {
		return
	}
	go func() {
		_ = h.notify.NotifyUser(context.Background(), userID)
	}()
}
