package chat

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/models"
)

// MongoConversationStore implements ConversationStore on a Mongo
// collection. The unread increment uses $inc so concurrent senders
// accumulate correctly without any application-level locking.
type MongoConversationStore struct {
	coll *mongo.Collection
}

func NewMongoConversationStore(coll *mongo.Collection) *MongoConversationStore {
	return &MongoConversationStore{coll: coll}
}

func (s *MongoConversationStore) FindOrCreate(ctx context.Context, userID, sellerID, userName, sellerName string) (*models.Conversation, error) {
	if userID == "" {
		return nil, invalid("userId is required")
	}
	if sellerID == "" {
		return nil, invalid("sellerId is required")
	}

	filter := bson.M{"userId": userID, "sellerId": sellerID}

	var existing models.Conversation
	err := s.coll.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	now := time.Now().UTC()
	conv := models.Conversation{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		SellerID:      sellerID,
		UserName:      userName,
		SellerName:    sellerName,
		LastMessage:   "",
		LastMessageAt: now,
		UserUnread:    0,
		SellerUnread:  0,
		CreatedAt:     now,
	}
	if _, err := s.coll.InsertOne(ctx, conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *MongoConversationStore) ListForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	return s.list(ctx, bson.M{"userId": userID})
}

func (s *MongoConversationStore) ListForSeller(ctx context.Context, sellerID string) ([]models.Conversation, error) {
	return s.list(ctx, bson.M{"sellerId": sellerID})
}

func (s *MongoConversationStore) list(ctx context.Context, filter bson.M) ([]models.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	conversations := []models.Conversation{}
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (s *MongoConversationStore) ApplyNewMessage(ctx context.Context, conversationID string, sender models.SenderType, preview string, sentAt time.Time) (*models.Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, invalid("invalid conversationId")
	}

	counter := models.CounterToIncrement(sender)
	update := bson.M{
		"$set": bson.M{
			"lastMessage":   preview,
			"lastMessageAt": sentAt,
		},
		"$inc": bson.M{string(counter): 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var conv models.Conversation
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &NotFoundError{Resource: "conversation", ID: conversationID}
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *MongoConversationStore) MarkRead(ctx context.Context, conversationID string, reader models.SenderType) error {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return invalid("invalid conversationId")
	}

	counter := models.CounterToReset(reader)
	// A match count of zero is deliberately not an error: read-acks fire
	// optimistically from clients and a dead id is ignored.
	_, err = s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{string(counter): 0},
	})
	return err
}
