package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is the persistent pairing of one buyer and one seller.
// The display names are denormalized at creation time and are not kept
// in sync with later profile edits. lastMessage holds a preview of the
// most recent message, truncated to 100 characters.
type Conversation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"userId" json:"userId"`
	SellerID      string             `bson:"sellerId" json:"sellerId"`
	UserName      string             `bson:"userName" json:"userName"`
	SellerName    string             `bson:"sellerName" json:"sellerName"`
	LastMessage   string             `bson:"lastMessage" json:"lastMessage"`
	LastMessageAt time.Time          `bson:"lastMessageAt" json:"lastMessageAt"`
	UserUnread    int64              `bson:"userUnread" json:"userUnread"`
	SellerUnread  int64              `bson:"sellerUnread" json:"sellerUnread"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
