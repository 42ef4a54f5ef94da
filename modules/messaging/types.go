package messaging

import (
	"time"

	"github.com/jobdeskhq/jobdesk/modules/auth"
)

// Message is a single direct message between two accounts, optionally tied
// to an application.
type Message struct {
	ID            string    `bson:"message_id" json:"message_id"`
	SenderID      string    `bson:"sender_id" json:"sender_id"`
	ReceiverID    string    `bson:"receiver_id" json:"receiver_id"`
	Content       string    `bson:"content" json:"content"`
	ApplicationID string    `bson:"application_id,omitempty" json:"application_id,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	Read          bool      `bson:"read" json:"read"`
}

// Conversation pairs a counterpart with the most recent message exchanged
// with them.
type Conversation struct {
	User        auth.Identity `json:"user"`
	LastMessage Message       `json:"last_message"`
}
