package dto

import (
	"time"

	"sukasamasuka/internal/repository"

	"github.com/google/uuid"
)

type ChatRoomResponse struct {
	ID        uuid.UUID `json:"id"`
	UserA     uuid.UUID `json:"user_a"`
	UserB     uuid.UUID `json:"user_b"`
	CreatedAt time.Time `json:"created_at"`
}

func NewChatRoomResponse(r repository.ChatRoom) ChatRoomResponse {
	return ChatRoomResponse{ID: r.ID, UserA: r.UserA, UserB: r.UserB, CreatedAt: r.CreatedAt}
}

func NewChatRoomResponses(rooms []repository.ChatRoom) []ChatRoomResponse {
	out := make([]ChatRoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, NewChatRoomResponse(r))
	}
	return out
}

type ChatMessageResponse struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewChatMessageResponse(m repository.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{ID: m.ID, RoomID: m.RoomID, SenderID: m.SenderID, Content: m.Content, CreatedAt: m.CreatedAt}
}

func NewChatMessageResponses(msgs []repository.ChatMessage) []ChatMessageResponse {
	out := make([]ChatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, NewChatMessageResponse(m))
	}
	return out
}
