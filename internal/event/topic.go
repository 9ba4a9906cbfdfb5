package event

import "strings"

// Topic names a kind of event.
type Topic string

// Engine topics.
const (
	TopicBufferChanged    Topic = "buffer.changed"
	TopicPaletteOpened    Topic = "palette.opened"
	TopicPaletteClosed    Topic = "palette.closed"
	TopicPaletteCommitted Topic = "palette.committed"
	TopicDocumentSaved    Topic = "document.saved"
	TopicDocumentSaveFail Topic = "document.save_failed"
)

// Matches reports whether t matches pattern.
// A "*" pattern segment matches exactly one topic segment.
func (t Topic) Matches(pattern Topic) bool {
	if pattern == "*" || pattern == t {
		return true
	}
	ps := strings.Split(string(pattern), ".")
	ts := strings.Split(string(t), ".")
	if len(ps) != len(ts) {
		return false
	}
	for i := range ps {
		if ps[i] != "*" && ps[i] != ts[i] {
			return false
		}
	}
	return true
}
