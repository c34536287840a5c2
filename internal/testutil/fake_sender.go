package testutil

import (
	"context"
	"sync"
)

// SentMessage is one message captured by the fake sender.
type SentMessage struct {
	Phone   string
	Message string
}

// FakeSender implements wanotify.Sender, recording every message instead of
// delivering it. Set Err to simulate gateway failures.
type FakeSender struct {
	mu       sync.Mutex
	messages []SentMessage

	// Err is returned by Send when non-nil
	Err error
}

// NewFakeSender creates a new recording sender
func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (s *FakeSender) Send(ctx context.Context, phone, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	s.messages = append(s.messages, SentMessage{Phone: phone, Message: message})
	return nil
}

// Messages returns the messages sent so far
func (s *FakeSender) Messages() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SentMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Reset clears recorded messages and the forced error
func (s *FakeSender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.Err = nil
}
