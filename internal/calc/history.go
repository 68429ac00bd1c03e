package calc

// DefaultHistorySize is the number of entries History keeps when no capacity is given.
const DefaultHistorySize = 5

// Entry records one successful evaluation.
type Entry struct {
	Expression string `json:"expression" yaml:"expression"`
	Result     string `json:"result" yaml:"result"`
}

// String renders the entry the way the history panel shows it.
func (e Entry) String() string {
	return e.Expression + " = " + e.Result
}

// History is a bounded, most-recent-first list of entries.
// Adding to a full history evicts the oldest entry.
type History struct {
	entries  []Entry
	capacity int
}

// NewHistory creates a history holding at most capacity entries.
// A non-positive capacity falls back to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
	}
}

// Add prepends e. If the history was full, the evicted entry is returned.
func (h *History) Add(e Entry) (evicted Entry, ok bool) {
	if len(h.entries) == h.capacity {
		evicted, ok = h.entries[len(h.entries)-1], true
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, Entry{})
	copy(h.entries[1:], h.entries)
	h.entries[0] = e
	return evicted, ok
}

// Entries returns a copy of the entries, most recent first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries held.
func (h *History) Len() int { return len(h.entries) }

// Cap returns the maximum number of entries.
func (h *History) Cap() int { return h.capacity }
