package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sukasamasuka/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrChatRoomNotFound = errors.New("chat room not found")

type ChatRoom struct {
	ID        uuid.UUID
	UserA     uuid.UUID
	UserB     uuid.UUID
	CreatedAt time.Time
}

func (r ChatRoom) HasMember(userID uuid.UUID) bool {
	return r.UserA == userID || r.UserB == userID
}

type ChatMessage struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	SenderID  uuid.UUID
	Content   string
	CreatedAt time.Time
}

type ChatRepository interface {
	// EnsureRoom returns the room for the unordered pair, creating it if it
	// does not exist yet. Safe to call concurrently from both sides.
	EnsureRoom(ctx context.Context, a, b uuid.UUID) (ChatRoom, error)
	GetRoom(ctx context.Context, id uuid.UUID) (ChatRoom, error)
	ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]ChatRoom, error)
	CreateMessage(ctx context.Context, m ChatMessage) (ChatMessage, error)
	ListMessages(ctx context.Context, roomID uuid.UUID, limit int) ([]ChatMessage, error)
}

type PostgresChatRepository struct {
	db database.DB
}

func NewPostgresChatRepository(db database.DB) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) EnsureRoom(ctx context.Context, a, b uuid.UUID) (ChatRoom, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO chat_rooms (user_a, user_b)
		 VALUES ($1, $2)
		 ON CONFLICT ((LEAST(user_a, user_b)), (GREATEST(user_a, user_b))) DO NOTHING`,
		a, b,
	)
	if err != nil {
		return ChatRoom{}, err
	}
	row := r.db.QueryRow(ctx,
		`SELECT id, user_a, user_b, created_at
		 FROM chat_rooms
		 WHERE LEAST(user_a, user_b) = LEAST($1::uuid, $2::uuid)
		   AND GREATEST(user_a, user_b) = GREATEST($1::uuid, $2::uuid)`,
		a, b,
	)
	var room ChatRoom
	if err := row.Scan(&room.ID, &room.UserA, &room.UserB, &room.CreatedAt); err != nil {
		return ChatRoom{}, err
	}
	return room, nil
}

func (r *PostgresChatRepository) GetRoom(ctx context.Context, id uuid.UUID) (ChatRoom, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_a, user_b, created_at FROM chat_rooms WHERE id = $1`,
		id,
	)
	var room ChatRoom
	if err := row.Scan(&room.ID, &room.UserA, &room.UserB, &room.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ChatRoom{}, ErrChatRoomNotFound
		}
		return ChatRoom{}, err
	}
	return room, nil
}

func (r *PostgresChatRepository) ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]ChatRoom, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_a, user_b, created_at
		 FROM chat_rooms
		 WHERE user_a = $1 OR user_b = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ChatRoom, 0)
	for rows.Next() {
		var room ChatRoom
		if err := rows.Scan(&room.ID, &room.UserA, &room.UserB, &room.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresChatRepository) CreateMessage(ctx context.Context, m ChatMessage) (ChatMessage, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO chat_messages (id, chat_room_id, sender_id, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, chat_room_id, sender_id, content, created_at`,
		m.ID, m.RoomID, m.SenderID, m.Content,
	)
	var out ChatMessage
	if err := row.Scan(&out.ID, &out.RoomID, &out.SenderID, &out.Content, &out.CreatedAt); err != nil {
		return ChatMessage{}, err
	}
	return out, nil
}

func (r *PostgresChatRepository) ListMessages(ctx context.Context, roomID uuid.UUID, limit int) ([]ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, chat_room_id, sender_id, content, created_at
		 FROM (
			SELECT id, chat_room_id, sender_id, content, created_at
			FROM chat_messages
			WHERE chat_room_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		 ) recent
		 ORDER BY created_at ASC`,
		roomID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ChatMessage, 0)
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
