package chat

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/directory"
	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/models"
	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/notify"
)

// DefaultHistoryLimit is the page size when the caller does not ask for
// one. History pages oldest-first.
const DefaultHistoryLimit = 50

const notifyTimeout = 10 * time.Second

// Service owns the message-send sequence shared by the HTTP fallback
// path and the live channel: append the message, update the
// conversation's preview and unread counter, then dispatch the offline
// notification without blocking the response. Both entry points call
// Send so a client mixing paths never sees history and conversation
// state disagree.
type Service struct {
	conversations ConversationStore
	messages      MessageStore
	directory     directory.Directory
	notifier      notify.Notifier
	appBaseURL    string
	logger        *zap.Logger
}

type ServiceConfig struct {
	Conversations ConversationStore
	Messages      MessageStore
	Directory     directory.Directory // optional, only used for notification content
	Notifier      notify.Notifier     // optional, nil disables the hook
	AppBaseURL    string
	Logger        *zap.Logger
}

func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		conversations: cfg.Conversations,
		messages:      cfg.Messages,
		directory:     cfg.Directory,
		notifier:      cfg.Notifier,
		appBaseURL:    strings.TrimRight(cfg.AppBaseURL, "/"),
		logger:        logger,
	}
}

func (s *Service) FindOrCreateConversation(ctx context.Context, userID, sellerID, userName, sellerName string) (*models.Conversation, error) {
	if userID == "" {
		return nil, invalid("userId is required")
	}
	if sellerID == "" {
		return nil, invalid("sellerId is required")
	}
	return s.conversations.FindOrCreate(ctx, userID, sellerID, userName, sellerName)
}

func (s *Service) ConversationsForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	if userID == "" {
		return nil, invalid("userId is required")
	}
	return s.conversations.ListForUser(ctx, userID)
}

func (s *Service) ConversationsForSeller(ctx context.Context, sellerID string) ([]models.Conversation, error) {
	if sellerID == "" {
		return nil, invalid("sellerId is required")
	}
	return s.conversations.ListForSeller(ctx, sellerID)
}

// History returns one forward page of a conversation's messages.
// limit <= 0 falls back to DefaultHistoryLimit, negative skip to 0.
func (s *Service) History(ctx context.Context, conversationID string, limit, skip int64) ([]models.Message, error) {
	if conversationID == "" {
		return nil, invalid("conversationId is required")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if skip < 0 {
		skip = 0
	}
	return s.messages.ListForConversation(ctx, conversationID, limit, skip)
}

func (s *Service) MarkRead(ctx context.Context, conversationID string, reader models.SenderType) error {
	if conversationID == "" {
		return invalid("conversationId is required")
	}
	if !reader.Valid() {
		return invalid("readerType must be 'user' or 'seller'")
	}
	return s.conversations.MarkRead(ctx, conversationID, reader)
}

type SendInput struct {
	ConversationID string            `json:"conversationId"`
	SenderID       string            `json:"senderId"`
	SenderType     models.SenderType `json:"senderType"`
	Message        string            `json:"message"`
}

// Send appends the message, then applies the conversation side effects.
// The two writes are not transactional: if the conversation update fails
// after the append, the message stays durable and the preview/unread
// state is stale until the next successful send. That window is an
// accepted part of the contract, so the error still propagates while the
// message survives.
func (s *Service) Send(ctx context.Context, in SendInput) (*models.Message, *models.Conversation, error) {
	if in.ConversationID == "" {
		return nil, nil, invalid("conversationId is required")
	}
	if in.SenderID == "" {
		return nil, nil, invalid("senderId is required")
	}
	if !in.SenderType.Valid() {
		return nil, nil, invalid("senderType must be 'user' or 'seller'")
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, nil, invalid("message is required")
	}

	msg, err := s.messages.Append(ctx, in.ConversationID, in.SenderID, in.SenderType, in.Message)
	if err != nil {
		return nil, nil, err
	}

	preview := TruncatePreview(in.Message, PreviewMaxLen)
	conv, err := s.conversations.ApplyNewMessage(ctx, in.ConversationID, in.SenderType, preview, msg.CreatedAt)
	if err != nil {
		s.logger.Warn("message stored but conversation update failed",
			zap.String("conversationId", in.ConversationID),
			zap.Error(err))
		return nil, nil, err
	}

	if s.notifier != nil {
		go s.dispatchNotification(conv, in.SenderType, preview)
	}

	return msg, conv, nil
}

// dispatchNotification alerts the counterparty off the request path. It
// runs detached with its own deadline; any failure is logged and
// swallowed so the already-completed send is never affected.
func (s *Service) dispatchNotification(conv *models.Conversation, sender models.SenderType, preview string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in notification dispatch", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	n := notify.Notification{
		Preview:  preview,
		DeepLink: s.appBaseURL + "/chat/" + conv.ID.Hex(),
	}
	if sender == models.SenderUser {
		n.RecipientID = conv.SellerID
		n.RecipientName = conv.SellerName
		n.CounterpartyName = conv.UserName
	} else {
		n.RecipientID = conv.UserID
		n.RecipientName = conv.UserName
		n.CounterpartyName = conv.SellerName
	}

	if s.directory != nil {
		party, err := s.lookupRecipient(ctx, sender, conv)
		if err != nil {
			s.logger.Warn("recipient lookup failed, notification skipped",
				zap.String("recipientId", n.RecipientID),
				zap.Error(err))
			return
		}
		n.RecipientEmail = party.Email
		if party.DisplayName != "" {
			n.RecipientName = party.DisplayName
		}
	}

	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("notification delivery failed",
			zap.String("recipientId", n.RecipientID),
			zap.Error(err))
	}
}

func (s *Service) lookupRecipient(ctx context.Context, sender models.SenderType, conv *models.Conversation) (*directory.Party, error) {
	if sender == models.SenderUser {
		return s.directory.Seller(ctx, conv.SellerID)
	}
	return s.directory.User(ctx, conv.UserID)
}
