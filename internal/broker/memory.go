package broker

import (
	"context"
	"encoding/json"
	"sync"
)

type Message struct {
	RoutingKey string
	Body       json.RawMessage
}

// Memory keeps published messages in order. Err, when set, is returned by
// every Publish call instead of recording the message.
type Memory struct {
	mu       sync.Mutex
	messages []Message
	Err      error
}

func (m *Memory) Publish(_ context.Context, routingKey string, payload any) error {
	if m.Err != nil {
		return m.Err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, Message{RoutingKey: routingKey, Body: body})
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.messages...)
}
