package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// MessageSink receives inbound chat lines from a client. It is expected to
// persist and fan the message out.
type MessageSink func(ctx context.Context, senderID, roomID uuid.UUID, content string) error

type inboundMessage struct {
	Content string `json:"content"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	roomID uuid.UUID
	userID uuid.UUID
	sink   MessageSink
	logger *log.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, roomID, userID uuid.UUID, sink MessageSink, logger *log.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		roomID: roomID,
		userID: userID,
		sink:   sink,
		logger: logger,
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Leave(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && c.logger != nil {
				c.logger.Printf("WS read error | room=%s user=%s err=%v", c.roomID, c.userID, err)
			}
			return
		}

		var in inboundMessage
		if err := json.Unmarshal(raw, &in); err != nil || in.Content == "" {
			continue
		}
		if c.sink == nil {
			continue
		}
		if err := c.sink(context.Background(), c.userID, c.roomID, in.Content); err != nil && c.logger != nil {
			c.logger.Printf("WS message rejected | room=%s user=%s err=%v", c.roomID, c.userID, err)
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
