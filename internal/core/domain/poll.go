package domain

// Account identifies a caller of the ledger. It is an opaque address
// string; the ledger never interprets it beyond equality.
type Account string

// Poll is a single Yes/No question. Everything except the vote counters
// and the pause flag is immutable after creation.
type Poll struct {
	ID          uint64  `json:"id"`
	Creator     Account `json:"creator"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	EndTime     int64   `json:"end_time"` // unix seconds; voting allowed strictly before
	Exists      bool    `json:"exists"`
	IsPaused    bool    `json:"is_paused"`
	YesVotes    uint64  `json:"yes_votes"`
	NoVotes     uint64  `json:"no_votes"`
}

// VoteRecord is the vote state of one account on one poll. The zero value
// means "has not voted"; Choice is meaningful only when Voted is true.
type VoteRecord struct {
	Voted  bool `json:"voted"`
	Choice bool `json:"choice"`
}
