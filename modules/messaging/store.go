package messaging

import "context"

// LastMessages maps a counterpart account id to the newest message
// exchanged with them.
type LastMessages map[string]Message

// Store defines message persistence.
type Store interface {
	// Create stores a new message.
	Create(ctx context.Context, message *Message) error

	// Conversation returns all messages between the two accounts, oldest
	// first.
	Conversation(ctx context.Context, accountID, otherID string) ([]Message, error)

	// MarkRead flags everything the counterpart sent to the account as
	// read.
	MarkRead(ctx context.Context, accountID, otherID string) error

	// LastPerCounterpart returns, for each account the given account has
	// exchanged messages with, the most recent message.
	LastPerCounterpart(ctx context.Context, accountID string) (LastMessages, error)
}
