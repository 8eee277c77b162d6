package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"sukasamasuka/internal/domain/connect"
	"sukasamasuka/internal/repository"

	"github.com/google/uuid"
)

const maxChatMessageLen = 2000

// ChatEvent is what fans out to room subscribers, over Redis pub/sub and
// down each websocket.
type ChatEvent struct {
	MessageID uuid.UUID `json:"message_id"`
	RoomID    uuid.UUID `json:"room_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func ChatChannel(roomID uuid.UUID) string {
	return "chat:room:" + roomID.String()
}

type ChatUsecase interface {
	EnsureRoomWith(ctx context.Context, userID, otherID uuid.UUID) (repository.ChatRoom, error)
	ListRooms(ctx context.Context, userID uuid.UUID) ([]repository.ChatRoom, error)
	RoomForMember(ctx context.Context, userID, roomID uuid.UUID) (repository.ChatRoom, error)
	History(ctx context.Context, userID, roomID uuid.UUID, limit int) ([]repository.ChatMessage, error)
	Send(ctx context.Context, userID, roomID uuid.UUID, content string) (repository.ChatMessage, error)
}

type chatPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// connectionChecker answers whether two users share a connect request row.
type connectionChecker interface {
	FindByPair(ctx context.Context, a, b uuid.UUID) (connect.Request, error)
}

type Chats struct {
	rooms    repository.ChatRepository
	connects connectionChecker
	pub      chatPublisher
	logger   *log.Logger
}

func NewChatUsecase(rooms repository.ChatRepository, connects connectionChecker, pub chatPublisher, logger *log.Logger) *Chats {
	return &Chats{rooms: rooms, connects: connects, pub: pub, logger: logger}
}

// EnsureRoomWith opens (or returns) the room between the caller and a user
// they hold an accepted connection with. Anything short of accepted is
// refused: phone exchange comes before chat.
func (u *Chats) EnsureRoomWith(ctx context.Context, userID, otherID uuid.UUID) (repository.ChatRoom, error) {
	if userID == otherID || otherID == uuid.Nil {
		return repository.ChatRoom{}, ErrInvalidInput
	}

	req, err := u.connects.FindByPair(ctx, userID, otherID)
	if err != nil {
		if errors.Is(err, repository.ErrConnectRequestNotFound) {
			return repository.ChatRoom{}, ErrNotConnected
		}
		return repository.ChatRoom{}, ErrInternal
	}
	if req.Status != connect.StatusAccepted {
		return repository.ChatRoom{}, ErrNotConnected
	}

	room, err := u.rooms.EnsureRoom(ctx, userID, otherID)
	if err != nil {
		return repository.ChatRoom{}, ErrInternal
	}
	return room, nil
}

func (u *Chats) ListRooms(ctx context.Context, userID uuid.UUID) ([]repository.ChatRoom, error) {
	rooms, err := u.rooms.ListRoomsForUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return rooms, nil
}

// RoomForMember loads the room and enforces membership in one step; every
// chat entry point goes through it.
func (u *Chats) RoomForMember(ctx context.Context, userID, roomID uuid.UUID) (repository.ChatRoom, error) {
	room, err := u.rooms.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrChatRoomNotFound) {
			return repository.ChatRoom{}, ErrChatRoomNotFound
		}
		return repository.ChatRoom{}, ErrInternal
	}
	if !room.HasMember(userID) {
		return repository.ChatRoom{}, ErrNotRoomMember
	}
	return room, nil
}

func (u *Chats) History(ctx context.Context, userID, roomID uuid.UUID, limit int) ([]repository.ChatMessage, error) {
	if _, err := u.RoomForMember(ctx, userID, roomID); err != nil {
		return nil, err
	}
	msgs, err := u.rooms.ListMessages(ctx, roomID, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return msgs, nil
}

// Send persists the message first, then publishes. A message that made it
// to Postgres but not to pub/sub is still in history on the next load.
func (u *Chats) Send(ctx context.Context, userID, roomID uuid.UUID, content string) (repository.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxChatMessageLen {
		return repository.ChatMessage{}, ErrInvalidInput
	}

	if _, err := u.RoomForMember(ctx, userID, roomID); err != nil {
		return repository.ChatMessage{}, err
	}

	msg, err := u.rooms.CreateMessage(ctx, repository.ChatMessage{
		ID:       uuid.New(),
		RoomID:   roomID,
		SenderID: userID,
		Content:  content,
	})
	if err != nil {
		return repository.ChatMessage{}, ErrInternal
	}

	event := ChatEvent{
		MessageID: msg.ID,
		RoomID:    msg.RoomID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err == nil {
		if pubErr := u.pub.Publish(ctx, ChatChannel(roomID), payload); pubErr != nil && u.logger != nil {
			u.logger.Printf("[Chat] publish failed | room=%s | err=%v", roomID, pubErr)
		}
	}
	return msg, nil
}
