package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/chat"
	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/models"
)

type fakeConversationStore struct {
	mu   sync.Mutex
	conv models.Conversation
}

func (s *fakeConversationStore) FindOrCreate(_ context.Context, userID, sellerID, userName, sellerName string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := s.conv
	return &copied, nil
}

func (s *fakeConversationStore) ListForUser(context.Context, string) ([]models.Conversation, error) {
	return nil, nil
}

func (s *fakeConversationStore) ListForSeller(context.Context, string) ([]models.Conversation, error) {
	return nil, nil
}

func (s *fakeConversationStore) ApplyNewMessage(_ context.Context, conversationID string, sender models.SenderType, preview string, sentAt time.Time) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conversationID != s.conv.ID.Hex() {
		return nil, &chat.NotFoundError{Resource: "conversation", ID: conversationID}
	}
	s.conv.LastMessage = preview
	s.conv.LastMessageAt = sentAt
	if models.CounterToIncrement(sender) == models.CounterSellerUnread {
		s.conv.SellerUnread++
	} else {
		s.conv.UserUnread++
	}
	copied := s.conv
	return &copied, nil
}

func (s *fakeConversationStore) MarkRead(context.Context, string, models.SenderType) error {
	return nil
}

func (s *fakeConversationStore) snapshot() models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv
}

type fakeMessageStore struct {
	mu       sync.Mutex
	messages []models.Message
}

func (s *fakeMessageStore) Append(_ context.Context, conversationID, senderID string, sender models.SenderType, text string) (*models.Message, error) {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, &chat.ValidationError{Reason: "invalid conversationId"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := models.Message{
		ID:             primitive.NewObjectID(),
		ConversationID: oid,
		SenderID:       senderID,
		SenderType:     sender,
		Message:        text,
		CreatedAt:      time.Now().UTC(),
	}
	s.messages = append(s.messages, msg)
	return &msg, nil
}

func (s *fakeMessageStore) ListForConversation(context.Context, string, int64, int64) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message{}, s.messages...), nil
}

func newTestHub(t *testing.T) (*Hub, *fakeConversationStore, string) {
	t.Helper()
	convs := &fakeConversationStore{conv: models.Conversation{
		ID:         primitive.NewObjectID(),
		UserID:     "u1",
		SellerID:   "s1",
		UserName:   "Alice",
		SellerName: "Gadget Hut",
	}}
	svc := chat.NewService(chat.ServiceConfig{
		Conversations: convs,
		Messages:      &fakeMessageStore{},
	})
	hub := NewHub(svc, nil)
	return hub, convs, convs.conv.ID.Hex()
}

func dial(t *testing.T, srv *httptest.Server, partyID string) *gws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?partyId=" + partyID
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func writeEvent(t *testing.T, conn *gws.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal event data: %v", err)
	}
	if err := conn.WriteJSON(Event{Event: event, Data: raw}); err != nil {
		t.Fatalf("write %s: %v", event, err)
	}
}

func readEvent(t *testing.T, conn *gws.Conn) Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return ev
}

func expectNoEvent(t *testing.T, conn *gws.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var ev Event
	if err := conn.ReadJSON(&ev); err == nil {
		t.Fatalf("unexpected event received: %s", ev.Event)
	}
}

func waitForRoomSize(t *testing.T, hub *Hub, room string, want int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if hub.RoomSize(room) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("room size never reached %d (now %d)", want, hub.RoomSize(room))
}

func TestSendMessageBroadcastsToRoom(t *testing.T) {
	hub, convs, convID := newTestHub(t)
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	buyer := dial(t, srv, "u1")
	seller := dial(t, srv, "s1")

	writeEvent(t, buyer, "join_room", convID)
	writeEvent(t, seller, "join_room", convID)
	waitForRoomSize(t, hub, convID, 2)

	writeEvent(t, buyer, "send_message", chat.SendInput{
		ConversationID: convID,
		SenderID:       "u1",
		SenderType:     models.SenderUser,
		Message:        "Hi, is this in stock?",
	})

	// Both subscribers, the sender included, get exactly one copy.
	for _, conn := range []*gws.Conn{buyer, seller} {
		ev := readEvent(t, conn)
		if ev.Event != "receive_message" {
			t.Fatalf("event = %s, want receive_message", ev.Event)
		}
		var msg models.Message
		if err := json.Unmarshal(ev.Data, &msg); err != nil {
			t.Fatalf("unmarshal message: %v", err)
		}
		if msg.Message != "Hi, is this in stock?" || msg.SenderType != models.SenderUser {
			t.Fatalf("unexpected message payload: %+v", msg)
		}
	}

	conv := convs.snapshot()
	if conv.SellerUnread != 1 {
		t.Fatalf("sellerUnread = %d, want 1 after channel send", conv.SellerUnread)
	}
	if conv.LastMessage != "Hi, is this in stock?" {
		t.Fatalf("lastMessage = %q", conv.LastMessage)
	}
}

func TestTypingRelayedToOthersOnly(t *testing.T) {
	hub, _, convID := newTestHub(t)
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	buyer := dial(t, srv, "u1")
	seller := dial(t, srv, "s1")
	writeEvent(t, buyer, "join_room", convID)
	writeEvent(t, seller, "join_room", convID)
	waitForRoomSize(t, hub, convID, 2)

	writeEvent(t, buyer, "typing", map[string]string{
		"conversationId": convID,
		"senderId":       "u1",
	})

	ev := readEvent(t, seller)
	if ev.Event != "user_typing" {
		t.Fatalf("event = %s, want user_typing", ev.Event)
	}
	var payload map[string]string
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["senderId"] != "u1" {
		t.Fatalf("payload not relayed: %+v", payload)
	}

	expectNoEvent(t, buyer)
}

func TestSendErrorIsUnicast(t *testing.T) {
	hub, _, convID := newTestHub(t)
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	buyer := dial(t, srv, "u1")
	seller := dial(t, srv, "s1")
	writeEvent(t, buyer, "join_room", convID)
	writeEvent(t, seller, "join_room", convID)
	waitForRoomSize(t, hub, convID, 2)

	writeEvent(t, buyer, "send_message", chat.SendInput{
		ConversationID: convID,
		SenderID:       "u1",
		SenderType:     models.SenderUser,
		Message:        "   ",
	})

	ev := readEvent(t, buyer)
	if ev.Event != "error" {
		t.Fatalf("event = %s, want error", ev.Event)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(ev.Data, &body); err != nil || body.Message == "" {
		t.Fatalf("error event carries no message: %s", ev.Data)
	}

	expectNoEvent(t, seller)
}

func TestJoinAndLeaveAreIdempotent(t *testing.T) {
	hub, _, convID := newTestHub(t)
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	buyer := dial(t, srv, "u1")
	writeEvent(t, buyer, "join_room", convID)
	writeEvent(t, buyer, "join_room", convID)
	waitForRoomSize(t, hub, convID, 1)

	// Leaving a room never joined is a no-op, not an error.
	writeEvent(t, buyer, "leave_room", "never-joined")
	writeEvent(t, buyer, "leave_room", convID)
	waitForRoomSize(t, hub, convID, 0)
}

func TestDisconnectRemovesClientFromRooms(t *testing.T) {
	hub, _, convID := newTestHub(t)
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	buyer := dial(t, srv, "u1")
	seller := dial(t, srv, "s1")
	writeEvent(t, buyer, "join_room", convID)
	writeEvent(t, seller, "join_room", convID)
	waitForRoomSize(t, hub, convID, 2)

	buyer.Close()
	waitForRoomSize(t, hub, convID, 1)
}

func TestJoinRoomObjectForm(t *testing.T) {
	hub, _, convID := newTestHub(t)
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	buyer := dial(t, srv, "u1")
	writeEvent(t, buyer, "join_room", map[string]string{"conversationId": convID})
	waitForRoomSize(t, hub, convID, 1)
}
