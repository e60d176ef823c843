package chat

// PreviewMaxLen is the cap on Conversation.lastMessage.
const PreviewMaxLen = 100

// TruncatePreview cuts s to at most max runes, keeping the result valid
// UTF-8 for multi-byte message bodies.
func TruncatePreview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
