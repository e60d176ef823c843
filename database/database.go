package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB bundles the Mongo client with the collection handles the chat
// service uses, so stores receive their collections explicitly instead
// of reaching for package globals.
type DB struct {
	Client        *mongo.Client
	Conversations *mongo.Collection
	Messages      *mongo.Collection
	Users         *mongo.Collection
	Sellers       *mongo.Collection
	PushSubs      *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	return &DB{
		Client:        client,
		Conversations: db.Collection("conversations"),
		Messages:      db.Collection("messages"),
		Users:         db.Collection("users"),
		Sellers:       db.Collection("sellers"),
		PushSubs:      db.Collection("push_subscriptions"),
	}, nil
}

// EnsureIndexes creates the lookup and sort indexes the stores rely on.
// The (userId, sellerId) index is deliberately non-unique: conversation
// creation is lookup-then-insert, not constraint-enforced.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := d.Conversations.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "sellerId", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "lastMessageAt", Value: -1}}},
		{Keys: bson.D{{Key: "sellerId", Value: 1}, {Key: "lastMessageAt", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = d.Messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = d.PushSubs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "partyId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (d *DB) Disconnect(ctx context.Context) error {
	if d.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return d.Client.Disconnect(ctx)
}
