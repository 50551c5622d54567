package ports

import (
	"context"

	"github.com/openballot/ledger/internal/core/domain"
)

type CreatePollInput struct {
	Creator         domain.Account
	Title           string
	Description     string
	DurationSeconds int64
}

// LedgerService is the full operation surface of the poll ledger.
type LedgerService interface {
	CreatePoll(ctx context.Context, input CreatePollInput) (uint64, error)
	Vote(ctx context.Context, pollID uint64, voter domain.Account, yes bool) error
	PausePoll(ctx context.Context, pollID uint64, caller domain.Account) error
	UnpausePoll(ctx context.Context, pollID uint64, caller domain.Account) error
	GetPoll(ctx context.Context, pollID uint64) (*domain.Poll, error)
	GetPollCount(ctx context.Context) (uint64, error)
	ListPolls(ctx context.Context) ([]*domain.Poll, error)
	GetVoters(ctx context.Context, pollID uint64) ([]domain.Account, error)
	GetVoterChoice(ctx context.Context, pollID uint64, account domain.Account) (domain.VoteRecord, error)
}

// LedgerStore applies state transitions atomically: every method either
// fully succeeds or fails with a domain error and no state change. The
// store serializes state-changing calls, so precondition checks always see
// the state as of the start of the call.
type LedgerStore interface {
	// CreatePoll allocates the next sequential poll ID and stores the
	// poll with EndTime = now + durationSeconds. Title and duration are
	// validated by the caller.
	CreatePoll(ctx context.Context, creator domain.Account, title, description string, durationSeconds int64) (*domain.Poll, error)

	// CastVote records one vote, checking in order: the poll exists, is
	// not paused, has not expired, and the voter has not voted on it.
	CastVote(ctx context.Context, pollID uint64, voter domain.Account, yes bool) error

	// SetPaused flips the pause flag. Idempotent; fails only when the
	// poll does not exist.
	SetPaused(ctx context.Context, pollID uint64, paused bool) error

	GetPoll(ctx context.Context, pollID uint64) (*domain.Poll, error)
	PollCount(ctx context.Context) (uint64, error)
	ListPolls(ctx context.Context) ([]*domain.Poll, error)

	// Voters returns voter accounts in the order votes were cast. A poll
	// that does not exist yields an empty list, not an error.
	Voters(ctx context.Context, pollID uint64) ([]domain.Account, error)

	// VoterChoice never fails for an unknown poll or account; the record
	// is zero-initialized.
	VoterChoice(ctx context.Context, pollID uint64, account domain.Account) (domain.VoteRecord, error)
}
