package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"sukasamasuka/internal/pkg/jwt"
	"sukasamasuka/internal/repository"
	"sukasamasuka/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub    *Hub
	chats  usecase.ChatUsecase
	jwt    jwt.Service
	logger *log.Logger
}

func NewHandler(hub *Hub, chats usecase.ChatUsecase, jwtSvc jwt.Service, logger *log.Logger) *Handler {
	return &Handler{hub: hub, chats: chats, jwt: jwtSvc, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleChatWS upgrades /ws/chat/:roomID. Browsers cannot set headers on
// websocket dials, so the access token rides in the token query param.
func (h *Handler) HandleChatWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	token := c.Query("token")
	if token == "" {
		return fiber.ErrUnauthorized
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		return fiber.ErrUnauthorized
	}
	userID := claims.UserID

	roomID, err := uuid.Parse(c.Params("roomID"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	if _, err := h.chats.RoomForMember(c.Context(), userID, roomID); err != nil {
		switch err {
		case usecase.ErrChatRoomNotFound:
			return fiber.ErrNotFound
		case usecase.ErrNotRoomMember:
			return fiber.ErrForbidden
		default:
			return fiber.ErrInternalServerError
		}
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("WS upgrade error | error=%v", err)
			}
			return
		}

		client := NewClient(h.hub, conn, roomID, userID, h.sink(), h.logger)
		h.hub.Join(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}

// sink persists inbound messages. With Redis up, delivery comes back via
// the room subscription; without it, fall back to a local broadcast so
// single-node chat keeps working.
func (h *Handler) sink() MessageSink {
	return func(ctx context.Context, senderID, roomID uuid.UUID, content string) error {
		msg, err := h.chats.Send(ctx, senderID, roomID, content)
		if err != nil {
			return err
		}
		if !h.hub.SubscriberActive() {
			h.broadcastFallback(roomID, msg)
		}
		return nil
	}
}

func (h *Handler) broadcastFallback(roomID uuid.UUID, msg repository.ChatMessage) {
	payload, err := json.Marshal(usecase.ChatEvent{
		MessageID: msg.ID,
		RoomID:    msg.RoomID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	})
	if err != nil {
		return
	}
	h.hub.BroadcastLocal(roomID, payload)
}
