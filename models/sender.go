package models

// SenderType identifies which side of a conversation produced a message
// or is acknowledging a read.
type SenderType string

const (
	SenderUser   SenderType = "user"
	SenderSeller SenderType = "seller"
)

func (s SenderType) Valid() bool {
	return s == SenderUser || s == SenderSeller
}

// CounterField names one of the two unread counters on a Conversation
// document. The values double as BSON field names so the store can use
// them directly in update documents.
type CounterField string

const (
	CounterUserUnread   CounterField = "userUnread"
	CounterSellerUnread CounterField = "sellerUnread"
)

// CounterToIncrement returns the counterparty's unread counter: a message
// from the user is unread for the seller, and vice versa.
func CounterToIncrement(sender SenderType) CounterField {
	if sender == SenderUser {
		return CounterSellerUnread
	}
	return CounterUserUnread
}

// CounterToReset returns the reader's own unread counter.
func CounterToReset(reader SenderType) CounterField {
	if reader == SenderUser {
		return CounterUserUnread
	}
	return CounterSellerUnread
}
