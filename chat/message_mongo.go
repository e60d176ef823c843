package chat

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/models"
)

// MongoMessageStore implements MessageStore on a Mongo collection.
// Messages are insert-only; nothing here updates or deletes.
type MongoMessageStore struct {
	coll *mongo.Collection
}

func NewMongoMessageStore(coll *mongo.Collection) *MongoMessageStore {
	return &MongoMessageStore{coll: coll}
}

func (s *MongoMessageStore) Append(ctx context.Context, conversationID, senderID string, sender models.SenderType, text string) (*models.Message, error) {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, invalid("invalid conversationId")
	}

	msg := models.Message{
		ID:             primitive.NewObjectID(),
		ConversationID: oid,
		SenderID:       senderID,
		SenderType:     sender,
		Message:        text,
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := s.coll.InsertOne(ctx, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *MongoMessageStore) ListForConversation(ctx context.Context, conversationID string, limit, skip int64) ([]models.Message, error) {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, invalid("invalid conversationId")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.coll.Find(ctx, bson.M{"conversationId": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
