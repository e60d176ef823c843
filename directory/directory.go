// Package directory resolves buyer and seller ids to the display name
// and email address used in notification content. Identity itself is
// owned by the marketplace's auth service; this is a read-only view.
package directory

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("directory: party not found")

type Party struct {
	ID          string
	DisplayName string
	Email       string
}

type Directory interface {
	User(ctx context.Context, id string) (*Party, error)
	Seller(ctx context.Context, id string) (*Party, error)
}

// Mongo reads the marketplace's users and sellers collections.
type Mongo struct {
	users   *mongo.Collection
	sellers *mongo.Collection
}

func NewMongo(users, sellers *mongo.Collection) *Mongo {
	return &Mongo{users: users, sellers: sellers}
}

func (d *Mongo) User(ctx context.Context, id string) (*Party, error) {
	var doc struct {
		Name  string `bson:"name"`
		Email string `bson:"email"`
	}
	if err := d.users.FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Party{ID: id, DisplayName: doc.Name, Email: doc.Email}, nil
}

func (d *Mongo) Seller(ctx context.Context, id string) (*Party, error) {
	var doc struct {
		StoreName string `bson:"storeName"`
		Email     string `bson:"email"`
	}
	if err := d.sellers.FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Party{ID: id, DisplayName: doc.StoreName, Email: doc.Email}, nil
}

// idFilter matches ids minted by the auth service, which are ObjectIDs
// in production but opaque strings at this boundary.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": id}
}
