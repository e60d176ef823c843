package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one immutable chat line. Messages are append-only per
// conversation and ordered by CreatedAt, which is assigned server-side
// at write time.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversationId" json:"conversationId"`
	SenderID       string             `bson:"senderId" json:"senderId"`
	SenderType     SenderType         `bson:"senderType" json:"senderType"`
	Message        string             `bson:"message" json:"message"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
