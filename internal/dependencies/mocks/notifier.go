package mocks

import (
	"context"
	"sync"

	"github.com/plebrun/ttroster/internal/notify"
)

// SentMessage is one message captured by MockNotifier
type SentMessage struct {
	ChannelID string
	Content   string
}

// MockNotifier records every message instead of delivering it
type MockNotifier struct {
	mu       sync.Mutex
	Messages []SentMessage
	Err      error
}

// Ensure MockNotifier implements the interface
var _ notify.Notifier = (*MockNotifier)(nil)

// NewMockNotifier creates an empty recording notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SendMessage records the message
func (m *MockNotifier) SendMessage(ctx context.Context, channelID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, SentMessage{ChannelID: channelID, Content: content})
	return nil
}
