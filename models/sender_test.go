package models

import "testing"

func TestSenderTypeValid(t *testing.T) {
	tests := []struct {
		in   SenderType
		want bool
	}{
		{SenderUser, true},
		{SenderSeller, true},
		{"admin", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.in.Valid(); got != tt.want {
			t.Errorf("SenderType(%q).Valid() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCounterSelection(t *testing.T) {
	// A message from one side is unread for the other; a read-ack
	// touches only the reader's own counter.
	if CounterToIncrement(SenderUser) != CounterSellerUnread {
		t.Error("user send must increment sellerUnread")
	}
	if CounterToIncrement(SenderSeller) != CounterUserUnread {
		t.Error("seller send must increment userUnread")
	}
	if CounterToReset(SenderUser) != CounterUserUnread {
		t.Error("user read must reset userUnread")
	}
	if CounterToReset(SenderSeller) != CounterSellerUnread {
		t.Error("seller read must reset sellerUnread")
	}
}
