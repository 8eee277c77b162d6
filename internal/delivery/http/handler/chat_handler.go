package handler

import (
	"errors"
	"strconv"

	"sukasamasuka/internal/delivery/http/dto"
	"sukasamasuka/internal/delivery/http/middleware"
	"sukasamasuka/internal/pkg/response"
	"sukasamasuka/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ChatHandler struct {
	uc usecase.ChatUsecase
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type ensureRoomRequest struct {
	UserID string `json:"user_id"`
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/rooms", h.EnsureRoom)
	r.Get("/rooms", h.ListRooms)
	r.Get("/rooms/:id/messages", h.History)
	r.Post("/rooms/:id/messages", h.Send)
}

// EnsureRoom opens the chat room with a connected counterparty, creating
// it on first use.
func (h *ChatHandler) EnsureRoom(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req ensureRoomRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	otherID, err := uuid.Parse(req.UserID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	room, err := h.uc.EnsureRoomWith(c.Context(), userID, otherID)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewChatRoomResponse(room))
}

func (h *ChatHandler) ListRooms(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	rooms, err := h.uc.ListRooms(c.Context(), userID)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewChatRoomResponses(rooms))
}

func (h *ChatHandler) History(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid room id", nil, err)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	msgs, err := h.uc.History(c.Context(), userID, roomID, limit)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewChatMessageResponses(msgs))
}

func (h *ChatHandler) Send(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid room id", nil, err)
	}

	var req sendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	msg, err := h.uc.Send(c.Context(), userID, roomID, req.Content)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", dto.NewChatMessageResponse(msg))
}

func mapChatUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrChatRoomNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Chat room not found", nil, err)
	case errors.Is(err, usecase.ErrNotRoomMember):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNotConnected):
		return middleware.NewAppError(fiber.StatusForbidden, "Users are not connected", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
