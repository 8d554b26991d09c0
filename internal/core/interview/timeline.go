package interview

// Timeline is the append-only message log. Messages are never edited,
// reordered, or removed once appended; the only whole-sale mutation is
// Replace, used when a freshly started session pulls its history.
type Timeline struct {
	entries []Message
}

func (t *Timeline) Append(m Message) {
	t.entries = append(t.entries, m)
}

// Replace swaps the entire timeline in one assignment, so a rendering
// consumer never observes a transient empty state mid-replace.
func (t *Timeline) Replace(msgs []Message) {
	entries := make([]Message, len(msgs))
	copy(entries, msgs)
	t.entries = entries
}

// All returns the messages in insertion order. The slice is a copy;
// appending to it does not touch the timeline.
func (t *Timeline) All() []Message {
	out := make([]Message, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Timeline) Len() int {
	return len(t.entries)
}

// Last returns the most recent message, if any.
func (t *Timeline) Last() (Message, bool) {
	if len(t.entries) == 0 {
		return Message{}, false
	}
	return t.entries[len(t.entries)-1], true
}
