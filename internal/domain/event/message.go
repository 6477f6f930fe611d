package event

import (
	"encoding/json"
	"time"
)

// Type names the kinds of frames exchanged over the realtime channel.
type Type string

const (
	TypeConnected       Type = "connected"
	TypePresenceChanged Type = "presence:changed"
	TypePing            Type = "ping"
	TypePong            Type = "pong"
	TypeError           Type = "error"
)

// Message is the wire envelope for realtime frames.
type Message struct {
	Type      Type        `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewMessage(t Type, data interface{}) *Message {
	return &Message{
		Type:      t,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// PresenceData is the payload of a presence:changed frame.
type PresenceData struct {
	UserID int64  `json:"user_id"`
	Status string `json:"status"`
}

// ErrorData is the payload of an error frame.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
