package journal

// EngineVersion is stamped on every recorded session.
const EngineVersion = "0.1.0"

// Session describes one calculator session: one engine, one display.
type Session struct {
	ID            string `json:"id"`
	HistorySize   int    `json:"history_size"`
	Precision     int    `json:"precision"`
	EngineVersion string `json:"engine_version"`
}

// Input is one key press and what the display showed after it.
type Input struct {
	SessionID string `json:"session_id"`
	Seq       int64  `json:"seq"`

	// Key is the raw key as the input source delivered it.
	Key string `json:"key"`

	// Token is the normalized engine token, empty when the key had no
	// token binding (ignored keys, history toggles).
	Token string `json:"token,omitempty"`

	Display string `json:"display"`
}

// HistoryRecord is a history entry emitted by "=".
// Seq is the seq of the input that produced it.
type HistoryRecord struct {
	SessionID  string `json:"session_id"`
	Seq        int64  `json:"seq"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

// canonical returns the identity-bearing fields of an input. SessionID is
// excluded so a replay under a new session hashes the same.
func (in Input) canonical() map[string]any {
	obj := map[string]any{
		"seq":     in.Seq,
		"key":     in.Key,
		"display": in.Display,
	}
	if in.Token != "" {
		obj["token"] = in.Token
	}
	return obj
}
