package services

import (
	"context"
	"log/slog"

	"github.com/openballot/ledger/internal/core/domain"
	"github.com/openballot/ledger/internal/core/ports"
)

type ledgerService struct {
	store    ports.LedgerStore
	notifier ports.Notifier
	clock    ports.Clock
	owner    domain.Account
	logger   *slog.Logger
}

func NewLedgerService(store ports.LedgerStore, notifier ports.Notifier, clock ports.Clock, owner domain.Account, logger *slog.Logger) ports.LedgerService {
	return &ledgerService{
		store:    store,
		notifier: notifier,
		clock:    clock,
		owner:    owner,
		logger:   logger,
	}
}

func (s *ledgerService) CreatePoll(ctx context.Context, input ports.CreatePollInput) (uint64, error) {
	if input.Title == "" {
		return 0, domain.ErrEmptyTitle
	}
	if input.DurationSeconds <= 0 {
		return 0, domain.ErrInvalidDuration
	}

	poll, err := s.store.CreatePoll(ctx, input.Creator, input.Title, input.Description, input.DurationSeconds)
	if err != nil {
		return 0, err
	}

	s.logger.Info("poll created",
		"poll_id", poll.ID,
		"creator", string(poll.Creator),
		"end_time", poll.EndTime,
	)
	s.notifier.Notify(ctx, domain.NewPollCreatedEvent(poll, s.clock.Now()))

	return poll.ID, nil
}

func (s *ledgerService) Vote(ctx context.Context, pollID uint64, voter domain.Account, yes bool) error {
	if err := s.store.CastVote(ctx, pollID, voter, yes); err != nil {
		return err
	}

	s.logger.Info("vote cast", "poll_id", pollID, "voter", string(voter), "yes", yes)
	s.notifier.Notify(ctx, domain.NewVoteCastEvent(pollID, voter, yes, s.clock.Now()))

	return nil
}

func (s *ledgerService) PausePoll(ctx context.Context, pollID uint64, caller domain.Account) error {
	return s.setPaused(ctx, pollID, caller, true)
}

func (s *ledgerService) UnpausePoll(ctx context.Context, pollID uint64, caller domain.Account) error {
	return s.setPaused(ctx, pollID, caller, false)
}

func (s *ledgerService) setPaused(ctx context.Context, pollID uint64, caller domain.Account, paused bool) error {
	if caller != s.owner {
		return domain.ErrNotOwner
	}

	if err := s.store.SetPaused(ctx, pollID, paused); err != nil {
		return err
	}

	s.logger.Info("poll pause state changed", "poll_id", pollID, "paused", paused)
	s.notifier.Notify(ctx, domain.NewPollPauseSetEvent(pollID, paused, s.clock.Now()))

	return nil
}

func (s *ledgerService) GetPoll(ctx context.Context, pollID uint64) (*domain.Poll, error) {
	return s.store.GetPoll(ctx, pollID)
}

func (s *ledgerService) GetPollCount(ctx context.Context) (uint64, error) {
	return s.store.PollCount(ctx)
}

func (s *ledgerService) ListPolls(ctx context.Context) ([]*domain.Poll, error) {
	return s.store.ListPolls(ctx)
}

func (s *ledgerService) GetVoters(ctx context.Context, pollID uint64) ([]domain.Account, error) {
	return s.store.Voters(ctx, pollID)
}

func (s *ledgerService) GetVoterChoice(ctx context.Context, pollID uint64, account domain.Account) (domain.VoteRecord, error) {
	return s.store.VoterChoice(ctx, pollID, account)
}
