package messaging

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	messages []*Message
}

// NewMemoryStore creates an empty in-memory message store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(_ context.Context, message *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *message
	s.messages = append(s.messages, &copied)
	return nil
}

func (s *MemoryStore) Conversation(_ context.Context, accountID, otherID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Message
	for _, message := range s.messages {
		if between(message, accountID, otherID) {
			result = append(result, *message)
		}
	}
	slices.SortFunc(result, func(a, b Message) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return result, nil
}

func (s *MemoryStore) MarkRead(_ context.Context, accountID, otherID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, message := range s.messages {
		if message.SenderID == otherID && message.ReceiverID == accountID {
			message.Read = true
		}
	}
	return nil
}

func (s *MemoryStore) LastPerCounterpart(_ context.Context, accountID string) (LastMessages, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(LastMessages)
	for _, message := range s.messages {
		var otherID string
		switch accountID {
		case message.SenderID:
			otherID = message.ReceiverID
		case message.ReceiverID:
			otherID = message.SenderID
		default:
			continue
		}
		if last, ok := result[otherID]; !ok || message.CreatedAt.After(last.CreatedAt) {
			result[otherID] = *message
		}
	}
	return result, nil
}

func between(message *Message, accountID, otherID string) bool {
	return (message.SenderID == accountID && message.ReceiverID == otherID) ||
		(message.SenderID == otherID && message.ReceiverID == accountID)
}
