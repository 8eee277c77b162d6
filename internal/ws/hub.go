package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// seenLimit caps the per-room dedup window.
const seenLimit = 256

// Subscriber is the Redis pub/sub slice the hub needs. Fan-out goes through
// Redis so every app instance sees every room message.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan *redis.Message, func() error, bool)
}

type room struct {
	clients map[*Client]bool
	cancel  context.CancelFunc

	// Dedup window over recent message IDs. The Redis channel plus the
	// local fallback can hand the hub the same message twice.
	seen      map[uuid.UUID]bool
	seenOrder []uuid.UUID
}

type Hub struct {
	mu     sync.RWMutex
	rooms  map[uuid.UUID]*room
	sub    Subscriber
	subled bool
	logger *log.Logger
}

func NewHub(sub Subscriber, logger *log.Logger) *Hub {
	return &Hub{rooms: make(map[uuid.UUID]*room), sub: sub, logger: logger}
}

// Join adds the client to its room, starting the room's Redis subscription
// on first join.
func (h *Hub) Join(client *Client) {
	if h == nil || client == nil {
		return
	}

	h.mu.Lock()
	r, ok := h.rooms[client.roomID]
	if !ok {
		r = &room{clients: make(map[*Client]bool), seen: make(map[uuid.UUID]bool)}
		h.rooms[client.roomID] = r
	}
	r.clients[client] = true
	total := len(r.clients)
	startSub := !ok
	h.mu.Unlock()

	if startSub && h.sub != nil {
		h.startSubscription(client.roomID)
	}
	if h.logger != nil {
		h.logger.Printf("WS joined | room=%s clients=%d", client.roomID, total)
	}
}

func (h *Hub) Leave(client *Client) {
	if h == nil || client == nil {
		return
	}

	h.mu.Lock()
	r, ok := h.rooms[client.roomID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, member := r.clients[client]; member {
		delete(r.clients, client)
		close(client.send)
	}
	var cancel context.CancelFunc
	if len(r.clients) == 0 {
		cancel = r.cancel
		delete(h.rooms, client.roomID)
	}
	total := len(r.clients)
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if h.logger != nil {
		h.logger.Printf("WS left | room=%s clients=%d", client.roomID, total)
	}
}

// BroadcastLocal pushes a payload to this instance's clients in the room.
// Slow consumers are dropped rather than blocking the room.
func (h *Hub) BroadcastLocal(roomID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}

	var envelope struct {
		MessageID uuid.UUID `json:"message_id"`
	}
	_ = json.Unmarshal(payload, &envelope)

	h.mu.Lock()
	r, ok := h.rooms[roomID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if envelope.MessageID != uuid.Nil {
		if r.seen[envelope.MessageID] {
			h.mu.Unlock()
			return
		}
		r.seen[envelope.MessageID] = true
		r.seenOrder = append(r.seenOrder, envelope.MessageID)
		if len(r.seenOrder) > seenLimit {
			delete(r.seen, r.seenOrder[0])
			r.seenOrder = r.seenOrder[1:]
		}
	}
	snapshot := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		snapshot = append(snapshot, c)
	}
	h.mu.Unlock()

	for _, client := range snapshot {
		select {
		case client.send <- payload:
		default:
			h.Leave(client)
		}
	}
}

// SubscriberActive reports whether room fan-out runs through Redis. When it
// does not, senders must broadcast locally themselves.
func (h *Hub) SubscriberActive() bool {
	return h != nil && h.subled
}

func (h *Hub) startSubscription(roomID uuid.UUID) {
	ctx, cancel := context.WithCancel(context.Background())
	ch, closeSub, ok := h.sub.Subscribe(ctx, "chat:room:"+roomID.String())
	if !ok {
		cancel()
		return
	}

	h.mu.Lock()
	if r, exists := h.rooms[roomID]; exists {
		r.cancel = func() {
			cancel()
			_ = closeSub()
		}
		h.subled = true
	} else {
		cancel()
		_ = closeSub()
	}
	h.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, open := <-ch:
				if !open {
					return
				}
				h.BroadcastLocal(roomID, []byte(msg.Payload))
			}
		}
	}()
}
