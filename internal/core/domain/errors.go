package domain

import "errors"

var (
	ErrEmptyTitle       = errors.New("poll title must not be empty")
	ErrInvalidDuration  = errors.New("poll duration must be positive")
	ErrPollDoesNotExist = errors.New("poll does not exist")
	ErrPollIsPaused     = errors.New("poll is paused")
	ErrPollExpired      = errors.New("poll has expired")
	ErrAlreadyVoted     = errors.New("account has already voted on this poll")
	ErrNotOwner         = errors.New("caller is not the ledger owner")
)
