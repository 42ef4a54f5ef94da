package messaging

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jobdeskhq/jobdesk/modules/auth"
	"github.com/jobdeskhq/jobdesk/pkg/shortid"
)

// AccountDirectory resolves accounts for receiver checks and conversation
// listings.
type AccountDirectory interface {
	Find(ctx context.Context, accountID string) (*auth.Account, error)
}

// Service implements direct messaging between accounts.
type Service struct {
	store    Store
	accounts AccountDirectory
}

// NewService creates the messaging service.
func NewService(store Store, accounts AccountDirectory) *Service {
	return &Service{store: store, accounts: accounts}
}

// Send delivers a message from the sender to the receiver.
func (s *Service) Send(ctx context.Context, senderID, receiverID, content, applicationID string) (*Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}
	if _, err := s.accounts.Find(ctx, receiverID); err != nil {
		return nil, ErrUnknownAccount
	}

	message := &Message{
		ID:            shortid.New("msg"),
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Content:       content,
		ApplicationID: applicationID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.store.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return message, nil
}

// Conversation returns the full exchange with the counterpart, oldest
// first, and marks the counterpart's messages as read.
func (s *Service) Conversation(ctx context.Context, accountID, otherID string) ([]Message, error) {
	messages, err := s.store.Conversation(ctx, accountID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	if err := s.store.MarkRead(ctx, accountID, otherID); err != nil {
		return nil, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return messages, nil
}

// Conversations lists the account's counterparts with the latest message
// for each, newest conversation first. Counterparts whose account vanished
// are skipped.
func (s *Service) Conversations(ctx context.Context, accountID string) ([]Conversation, error) {
	last, err := s.store.LastPerCounterpart(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversations: %w", err)
	}

	result := make([]Conversation, 0, len(last))
	for otherID, message := range last {
		account, err := s.accounts.Find(ctx, otherID)
		if err != nil {
			continue
		}
		result = append(result, Conversation{
			User:        account.Identity(),
			LastMessage: message,
		})
	}

	slices.SortFunc(result, func(a, b Conversation) int {
		return b.LastMessage.CreatedAt.Compare(a.LastMessage.CreatedAt)
	})
	return result, nil
}
