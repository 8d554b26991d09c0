// Package interview owns the mock-interview session: its lifecycle, the
// append-only message timeline, and the guards that keep at most one
// chat request in flight. It is IO-free; the UI layer performs the
// network calls and reports their outcomes back.
package interview

import (
	"time"

	"github.com/careernav/canav/internal/core/api"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// NormalizeSender maps wire sender labels onto the two senders the
// timeline knows. The backend historically used "ai" for assistant
// turns.
func NormalizeSender(wire string) Sender {
	switch wire {
	case "user":
		return SenderUser
	default:
		return SenderAssistant
	}
}

// Session is one continuous interview conversation. The id is
// server-assigned and opaque to the client.
type Session struct {
	ID      int64
	JobRole string
	Active  bool
}

type Message struct {
	ID        MessageID
	Sender    Sender
	Content   string
	Timestamp time.Time
}

// FromWire converts a backend message into a timeline message in the
// server id space.
func FromWire(m api.Message) Message {
	return Message{
		ID:        ServerID(m.ID),
		Sender:    NormalizeSender(m.Sender),
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

// FromWireAll converts a fetched message history in order.
func FromWireAll(msgs []api.Message) []Message {
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = FromWire(m)
	}
	return out
}
