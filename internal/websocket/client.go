package websocket

import (
	"context"
	"time"

	"workhub-service/internal/domain/event"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	identityID int64

	ctx    context.Context
	cancel context.CancelFunc
}

func NewClient(hub *Hub, conn *websocket.Conn, identityID int64) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, 64),
		identityID: identityID,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// IdentityID returns the identity this connection belongs to.
func (c *Client) IdentityID() int64 {
	return c.identityID
}

// ReadPump consumes frames from the peer until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			_, message, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					c.hub.logger.Warn("websocket read error", zap.Error(err))
				}
				return
			}

			c.handleMessage(message)
		}
	}
}

// WritePump pushes queued frames and keepalive pings to the peer.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	msg, err := event.ParseMessage(data)
	if err != nil {
		c.SendMessage(event.NewMessage(event.TypeError, event.ErrorData{
			Code:    "invalid_message",
			Message: "failed to parse message",
		}))
		return
	}

	switch msg.Type {
	case event.TypePing:
		c.SendMessage(event.NewMessage(event.TypePong, nil))
	}
}

// SendMessage queues a frame for delivery without ever blocking the caller:
// broadcasts run on the hub goroutine, which must not wait on a client. A
// client whose queue is full is cancelled; its pumps tear the connection
// down and unregister it from their own goroutine.
func (c *Client) SendMessage(msg *event.Message) {
	data, err := msg.ToJSON()
	if err != nil {
		c.hub.logger.Error("failed to marshal websocket message", zap.Error(err))
		return
	}

	select {
	case <-c.ctx.Done():
	case c.send <- data:
	default:
		c.hub.logger.Warn("dropping slow websocket client",
			zap.Int64("identity_id", c.identityID))
		c.Close()
	}
}

// Close cancels the client. c.send is never closed: ReadPump can still be
// queueing frames, and cancellation alone is enough to stop both pumps.
func (c *Client) Close() {
	c.cancel()
}
