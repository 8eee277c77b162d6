package ws

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func testClient(hub *Hub, roomID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, 4),
		roomID: roomID,
		userID: uuid.New(),
	}
}

func payloadFor(t *testing.T, messageID uuid.UUID, content string) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"message_id": messageID,
		"content":    content,
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return raw
}

func TestHubBroadcastLocal_ReachesRoomClients(t *testing.T) {
	hub := NewHub(nil, nil)
	roomID := uuid.New()
	a := testClient(hub, roomID)
	b := testClient(hub, roomID)
	other := testClient(hub, uuid.New())
	hub.Join(a)
	hub.Join(b)
	hub.Join(other)

	hub.BroadcastLocal(roomID, payloadFor(t, uuid.New(), "hello"))

	for _, c := range []*Client{a, b} {
		select {
		case <-c.send:
		default:
			t.Fatalf("room client did not receive broadcast")
		}
	}
	select {
	case <-other.send:
		t.Fatalf("client in another room received broadcast")
	default:
	}
}

func TestHubBroadcastLocal_DeduplicatesByMessageID(t *testing.T) {
	hub := NewHub(nil, nil)
	roomID := uuid.New()
	c := testClient(hub, roomID)
	hub.Join(c)

	msgID := uuid.New()
	hub.BroadcastLocal(roomID, payloadFor(t, msgID, "once"))
	hub.BroadcastLocal(roomID, payloadFor(t, msgID, "once"))

	if got := len(c.send); got != 1 {
		t.Fatalf("deliveries = %d, want 1", got)
	}

	// A different message still goes through.
	hub.BroadcastLocal(roomID, payloadFor(t, uuid.New(), "twice"))
	if got := len(c.send); got != 2 {
		t.Fatalf("deliveries after second message = %d, want 2", got)
	}
}

func TestHubLeave_ClosesSendAndEmptiesRoom(t *testing.T) {
	hub := NewHub(nil, nil)
	roomID := uuid.New()
	c := testClient(hub, roomID)
	hub.Join(c)
	hub.Leave(c)

	if _, open := <-c.send; open {
		t.Fatalf("send channel still open after leave")
	}

	// Broadcast to the now-empty room must not panic or deliver.
	hub.BroadcastLocal(roomID, payloadFor(t, uuid.New(), "late"))
}
