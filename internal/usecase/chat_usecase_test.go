package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"sukasamasuka/internal/domain/connect"
	"sukasamasuka/internal/repository"

	"github.com/google/uuid"
)

type mockChatRepo struct {
	rooms    []repository.ChatRoom
	messages []repository.ChatMessage
}

func (m *mockChatRepo) EnsureRoom(_ context.Context, a, b uuid.UUID) (repository.ChatRoom, error) {
	for _, r := range m.rooms {
		if r.HasMember(a) && r.HasMember(b) {
			return r, nil
		}
	}
	room := repository.ChatRoom{ID: uuid.New(), UserA: a, UserB: b, CreatedAt: time.Now().UTC()}
	m.rooms = append(m.rooms, room)
	return room, nil
}

func (m *mockChatRepo) GetRoom(_ context.Context, id uuid.UUID) (repository.ChatRoom, error) {
	for _, r := range m.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return repository.ChatRoom{}, repository.ErrChatRoomNotFound
}

func (m *mockChatRepo) ListRoomsForUser(_ context.Context, userID uuid.UUID) ([]repository.ChatRoom, error) {
	var out []repository.ChatRoom
	for _, r := range m.rooms {
		if r.HasMember(userID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockChatRepo) CreateMessage(_ context.Context, msg repository.ChatMessage) (repository.ChatMessage, error) {
	msg.CreatedAt = time.Now().UTC()
	m.messages = append(m.messages, msg)
	return msg, nil
}

func (m *mockChatRepo) ListMessages(_ context.Context, roomID uuid.UUID, _ int) ([]repository.ChatMessage, error) {
	var out []repository.ChatMessage
	for _, msg := range m.messages {
		if msg.RoomID == roomID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type mockPairFinder struct {
	requests []connect.Request
}

func (m *mockPairFinder) FindByPair(_ context.Context, a, b uuid.UUID) (connect.Request, error) {
	for _, r := range m.requests {
		if (r.SenderID == a && r.ReceiverID == b) || (r.SenderID == b && r.ReceiverID == a) {
			return r, nil
		}
	}
	return connect.Request{}, repository.ErrConnectRequestNotFound
}

type capturePublisher struct {
	channels []string
	payloads [][]byte
	err      error
}

func (p *capturePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.channels = append(p.channels, channel)
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestChatSend_PersistsThenPublishes(t *testing.T) {
	repo := &mockChatRepo{}
	pub := &capturePublisher{}
	uc := NewChatUsecase(repo, &mockPairFinder{}, pub, nil)

	a, b := uuid.New(), uuid.New()
	room, _ := repo.EnsureRoom(context.Background(), a, b)

	msg, err := uc.Send(context.Background(), a, room.ID, "  jom swap?  ")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Content != "jom swap?" {
		t.Fatalf("content = %q", msg.Content)
	}
	if len(repo.messages) != 1 {
		t.Fatalf("message not persisted")
	}
	if len(pub.channels) != 1 || pub.channels[0] != ChatChannel(room.ID) {
		t.Fatalf("channels = %v", pub.channels)
	}

	var event ChatEvent
	if err := json.Unmarshal(pub.payloads[0], &event); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if event.MessageID != msg.ID || event.SenderID != a {
		t.Fatalf("event = %+v", event)
	}
}

func TestChatSend_MembershipGate(t *testing.T) {
	repo := &mockChatRepo{}
	uc := NewChatUsecase(repo, &mockPairFinder{}, &capturePublisher{}, nil)

	room, _ := repo.EnsureRoom(context.Background(), uuid.New(), uuid.New())
	if _, err := uc.Send(context.Background(), uuid.New(), room.ID, "hello"); !errors.Is(err, ErrNotRoomMember) {
		t.Fatalf("expected ErrNotRoomMember, got %v", err)
	}
	if _, err := uc.History(context.Background(), uuid.New(), room.ID, 50); !errors.Is(err, ErrNotRoomMember) {
		t.Fatalf("expected ErrNotRoomMember, got %v", err)
	}
}

func TestChatSend_Validation(t *testing.T) {
	repo := &mockChatRepo{}
	uc := NewChatUsecase(repo, &mockPairFinder{}, &capturePublisher{}, nil)
	a, b := uuid.New(), uuid.New()
	room, _ := repo.EnsureRoom(context.Background(), a, b)

	if _, err := uc.Send(context.Background(), a, room.ID, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank, got %v", err)
	}
	if _, err := uc.Send(context.Background(), a, room.ID, strings.Repeat("x", maxChatMessageLen+1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversize, got %v", err)
	}
}

func TestChatSend_PublishFailureStillPersists(t *testing.T) {
	repo := &mockChatRepo{}
	pub := &capturePublisher{err: errors.New("redis down")}
	uc := NewChatUsecase(repo, &mockPairFinder{}, pub, nil)
	a, b := uuid.New(), uuid.New()
	room, _ := repo.EnsureRoom(context.Background(), a, b)

	if _, err := uc.Send(context.Background(), a, room.ID, "hello"); err != nil {
		t.Fatalf("send should survive publish failure: %v", err)
	}
	if len(repo.messages) != 1 {
		t.Fatalf("message not persisted")
	}
}

func TestChatEnsureRoomWith_RequiresAcceptedConnection(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	repo := &mockChatRepo{}
	pairs := &mockPairFinder{}
	uc := NewChatUsecase(repo, pairs, &capturePublisher{}, nil)

	if _, err := uc.EnsureRoomWith(context.Background(), alice, bob); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("no request: err = %v, want ErrNotConnected", err)
	}

	pairs.requests = append(pairs.requests, connect.Request{
		ID:         uuid.New(),
		SenderID:   alice,
		ReceiverID: bob,
		Status:     connect.StatusPending,
	})
	if _, err := uc.EnsureRoomWith(context.Background(), alice, bob); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("pending request: err = %v, want ErrNotConnected", err)
	}

	pairs.requests[0].Status = connect.StatusAccepted
	room, err := uc.EnsureRoomWith(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("accepted pair: EnsureRoomWith() error = %v", err)
	}
	if !room.HasMember(alice) || !room.HasMember(bob) {
		t.Fatalf("room members = %s/%s, want both parties", room.UserA, room.UserB)
	}

	again, err := uc.EnsureRoomWith(context.Background(), bob, alice)
	if err != nil {
		t.Fatalf("second EnsureRoomWith() error = %v", err)
	}
	if again.ID != room.ID {
		t.Fatalf("second call created a new room %s, want %s", again.ID, room.ID)
	}
}

func TestChatEnsureRoomWith_RejectsSelf(t *testing.T) {
	alice := uuid.New()
	uc := NewChatUsecase(&mockChatRepo{}, &mockPairFinder{}, &capturePublisher{}, nil)

	if _, err := uc.EnsureRoomWith(context.Background(), alice, alice); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
