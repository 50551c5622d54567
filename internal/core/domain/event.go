package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventPollCreated  EventKind = "poll_created"
	EventVoteCast     EventKind = "vote_cast"
	EventPollPauseSet EventKind = "poll_pause_set"
)

// Event is an externally observable notification of a successful state
// change, consumed by off-chain indexers and live subscribers.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Kind      EventKind `json:"kind"`
	EmittedAt time.Time `json:"emitted_at"`
	Payload   any       `json:"payload"`
}

type PollCreatedPayload struct {
	PollID  uint64  `json:"poll_id"`
	Creator Account `json:"creator"`
	Title   string  `json:"title"`
	EndTime int64   `json:"end_time"`
}

type VoteCastPayload struct {
	PollID uint64  `json:"poll_id"`
	Voter  Account `json:"voter"`
	Yes    bool    `json:"yes"`
}

type PollPauseSetPayload struct {
	PollID uint64 `json:"poll_id"`
	Paused bool   `json:"paused"`
}

func NewPollCreatedEvent(poll *Poll, at time.Time) Event {
	return Event{
		ID:        uuid.New(),
		Kind:      EventPollCreated,
		EmittedAt: at,
		Payload: PollCreatedPayload{
			PollID:  poll.ID,
			Creator: poll.Creator,
			Title:   poll.Title,
			EndTime: poll.EndTime,
		},
	}
}

func NewVoteCastEvent(pollID uint64, voter Account, yes bool, at time.Time) Event {
	return Event{
		ID:        uuid.New(),
		Kind:      EventVoteCast,
		EmittedAt: at,
		Payload: VoteCastPayload{
			PollID: pollID,
			Voter:  voter,
			Yes:    yes,
		},
	}
}

func NewPollPauseSetEvent(pollID uint64, paused bool, at time.Time) Event {
	return Event{
		ID:        uuid.New(),
		Kind:      EventPollPauseSet,
		EmittedAt: at,
		Payload: PollPauseSetPayload{
			PollID: pollID,
			Paused: paused,
		},
	}
}
