// Package memory holds the in-memory ledger store. A single mutex
// serializes every state change, so each operation observes and mutates
// the ledger as one atomic step in a total order.
package memory

import (
	"context"
	"sync"

	"github.com/openballot/ledger/internal/core/domain"
	"github.com/openballot/ledger/internal/core/ports"
)

type pollState struct {
	poll   domain.Poll
	votes  map[domain.Account]domain.VoteRecord
	voters []domain.Account
}

type Store struct {
	mu    sync.Mutex
	clock ports.Clock
	polls []*pollState
}

func NewStore(clock ports.Clock) *Store {
	return &Store{clock: clock}
}

func (s *Store) CreatePoll(ctx context.Context, creator domain.Account, title, description string, durationSeconds int64) (*domain.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &pollState{
		poll: domain.Poll{
			ID:          uint64(len(s.polls)),
			Creator:     creator,
			Title:       title,
			Description: description,
			EndTime:     s.clock.Now().Unix() + durationSeconds,
			Exists:      true,
		},
		votes: make(map[domain.Account]domain.VoteRecord),
	}
	s.polls = append(s.polls, state)

	poll := state.poll
	return &poll, nil
}

func (s *Store) CastVote(ctx context.Context, pollID uint64, voter domain.Account, yes bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.lookup(pollID)
	if !ok {
		return domain.ErrPollDoesNotExist
	}
	if state.poll.IsPaused {
		return domain.ErrPollIsPaused
	}
	if s.clock.Now().Unix() >= state.poll.EndTime {
		return domain.ErrPollExpired
	}
	if state.votes[voter].Voted {
		return domain.ErrAlreadyVoted
	}

	state.votes[voter] = domain.VoteRecord{Voted: true, Choice: yes}
	state.voters = append(state.voters, voter)
	if yes {
		state.poll.YesVotes++
	} else {
		state.poll.NoVotes++
	}

	return nil
}

func (s *Store) SetPaused(ctx context.Context, pollID uint64, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.lookup(pollID)
	if !ok {
		return domain.ErrPollDoesNotExist
	}
	state.poll.IsPaused = paused

	return nil
}

func (s *Store) GetPoll(ctx context.Context, pollID uint64) (*domain.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.lookup(pollID)
	if !ok {
		return nil, domain.ErrPollDoesNotExist
	}

	poll := state.poll
	return &poll, nil
}

func (s *Store) PollCount(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return uint64(len(s.polls)), nil
}

func (s *Store) ListPolls(ctx context.Context) ([]*domain.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	polls := make([]*domain.Poll, len(s.polls))
	for i, state := range s.polls {
		poll := state.poll
		polls[i] = &poll
	}

	return polls, nil
}

func (s *Store) Voters(ctx context.Context, pollID uint64) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.lookup(pollID)
	if !ok {
		return []domain.Account{}, nil
	}

	voters := make([]domain.Account, len(state.voters))
	copy(voters, state.voters)

	return voters, nil
}

func (s *Store) VoterChoice(ctx context.Context, pollID uint64, account domain.Account) (domain.VoteRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.lookup(pollID)
	if !ok {
		return domain.VoteRecord{}, nil
	}

	return state.votes[account], nil
}

// lookup requires s.mu to be held.
func (s *Store) lookup(pollID uint64) (*pollState, bool) {
	if pollID >= uint64(len(s.polls)) {
		return nil, false
	}
	return s.polls[pollID], true
}
