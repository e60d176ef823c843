package chat

import (
	"context"
	"time"

	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/models"
)

// ConversationStore persists buyer↔seller conversations with their
// denormalized preview and unread state.
type ConversationStore interface {
	// FindOrCreate returns the conversation for the (userID, sellerID)
	// pair, creating it with zeroed counters if absent. Idempotent.
	FindOrCreate(ctx context.Context, userID, sellerID, userName, sellerName string) (*models.Conversation, error)

	// ListForUser and ListForSeller return the party's conversations
	// ordered by lastMessageAt descending. An empty result is not an
	// error.
	ListForUser(ctx context.Context, userID string) ([]models.Conversation, error)
	ListForSeller(ctx context.Context, sellerID string) ([]models.Conversation, error)

	// ApplyNewMessage sets the preview fields and atomically increments
	// the counterparty's unread counter. The increment MUST happen at
	// the storage layer, never as an application-level read-modify-write.
	ApplyNewMessage(ctx context.Context, conversationID string, sender models.SenderType, preview string, sentAt time.Time) (*models.Conversation, error)

	// MarkRead resets the reader's own unread counter to zero. A missing
	// conversation is a silent no-op: read-acks are best-effort.
	MarkRead(ctx context.Context, conversationID string, reader models.SenderType) error
}

// MessageStore persists the append-only message history.
type MessageStore interface {
	Append(ctx context.Context, conversationID, senderID string, sender models.SenderType, text string) (*models.Message, error)

	// ListForConversation pages oldest-first by createdAt. Callers
	// wanting "recent" history must request the final page themselves.
	ListForConversation(ctx context.Context, conversationID string, limit, skip int64) ([]models.Message, error)
}
