package notify

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/SherClockHolmes/webpush-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PushSubscription stores one party's browser push endpoint.
type PushSubscription struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty"`
	PartyID string               `bson:"partyId"`
	Sub     webpush.Subscription `bson:"sub"`
}

// WebPushNotifier pushes to the recipient's subscribed browser, if any.
// A party without a stored subscription is skipped silently.
type WebPushNotifier struct {
	subs            *mongo.Collection
	subscriber      string
	vapidPublicKey  string
	vapidPrivateKey string
}

func NewWebPushNotifier(subs *mongo.Collection, subscriber, vapidPublicKey, vapidPrivateKey string) *WebPushNotifier {
	return &WebPushNotifier{
		subs:            subs,
		subscriber:      subscriber,
		vapidPublicKey:  vapidPublicKey,
		vapidPrivateKey: vapidPrivateKey,
	}
}

// SaveSubscription upserts the subscription for a party. Re-subscribing
// from a new browser replaces the old endpoint.
func (w *WebPushNotifier) SaveSubscription(ctx context.Context, partyID string, sub webpush.Subscription) error {
	_, err := w.subs.UpdateOne(ctx,
		bson.M{"partyId": partyID},
		bson.M{"$set": bson.M{"partyId": partyID, "sub": sub}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (w *WebPushNotifier) Notify(ctx context.Context, n Notification) error {
	var stored PushSubscription
	err := w.subs.FindOne(ctx, bson.M{"partyId": n.RecipientID}).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]string{
		"title": n.CounterpartyName + " sent you a message",
		"body":  n.Preview,
		"url":   n.DeepLink,
	})
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotification(payload, &stored.Sub, &webpush.Options{
		Subscriber:      w.subscriber,
		VAPIDPublicKey:  w.vapidPublicKey,
		VAPIDPrivateKey: w.vapidPrivateKey,
		TTL:             30,
	})
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
