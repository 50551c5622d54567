package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/openballot/ledger/internal/core/domain"
	"github.com/openballot/ledger/internal/core/ports"
)

const uniqueViolation = "23505"

type ledgerRepository struct {
	db    *sql.DB
	clock ports.Clock
}

func NewLedgerRepository(db *sql.DB, clock ports.Clock) ports.LedgerStore {
	return &ledgerRepository{
		db:    db,
		clock: clock,
	}
}

func (r *ledgerRepository) CreatePoll(ctx context.Context, creator domain.Account, title, description string, durationSeconds int64) (*domain.Poll, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The single ledger_state row is the poll counter; locking it via the
	// update keeps ID allocation sequential and gap-free.
	var pollID uint64
	queryCount := `
		UPDATE ledger_state SET poll_count = poll_count + 1
		RETURNING poll_count - 1
	`
	if err := tx.QueryRowContext(ctx, queryCount).Scan(&pollID); err != nil {
		return nil, fmt.Errorf("failed to allocate poll id: %w", err)
	}

	endTime := r.clock.Now().Unix() + durationSeconds

	queryPoll := `
		INSERT INTO polls (id, creator, title, description, end_time)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.ExecContext(ctx, queryPoll, pollID, string(creator), title, description, endTime)
	if err != nil {
		return nil, fmt.Errorf("failed to insert poll: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &domain.Poll{
		ID:          pollID,
		Creator:     creator,
		Title:       title,
		Description: description,
		EndTime:     endTime,
		Exists:      true,
	}, nil
}

func (r *ledgerRepository) CastVote(ctx context.Context, pollID uint64, voter domain.Account, yes bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the poll row so the gate checks and the counter update are one
	// atomic step against concurrent votes.
	queryPoll := `
		SELECT is_paused, end_time
		FROM polls
		WHERE id = $1
		FOR UPDATE
	`
	var isPaused bool
	var endTime int64
	err = tx.QueryRowContext(ctx, queryPoll, pollID).Scan(&isPaused, &endTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrPollDoesNotExist
		}
		return fmt.Errorf("failed to get poll: %w", err)
	}

	if isPaused {
		return domain.ErrPollIsPaused
	}
	if r.clock.Now().Unix() >= endTime {
		return domain.ErrPollExpired
	}

	queryVote := `
		INSERT INTO votes (poll_id, account, choice)
		VALUES ($1, $2, $3)
	`
	_, err = tx.ExecContext(ctx, queryVote, pollID, string(voter), yes)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	queryTally := `UPDATE polls SET yes_votes = yes_votes + 1 WHERE id = $1`
	if !yes {
		queryTally = `UPDATE polls SET no_votes = no_votes + 1 WHERE id = $1`
	}
	if _, err := tx.ExecContext(ctx, queryTally, pollID); err != nil {
		return fmt.Errorf("failed to update tally: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *ledgerRepository) SetPaused(ctx context.Context, pollID uint64, paused bool) error {
	query := `UPDATE polls SET is_paused = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, pollID, paused)
	if err != nil {
		return fmt.Errorf("failed to set pause state: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrPollDoesNotExist
	}

	return nil
}

func (r *ledgerRepository) GetPoll(ctx context.Context, pollID uint64) (*domain.Poll, error) {
	query := `
		SELECT id, creator, title, description, end_time, is_paused, yes_votes, no_votes
		FROM polls
		WHERE id = $1
	`

	poll, err := scanPoll(r.db.QueryRowContext(ctx, query, pollID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollDoesNotExist
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	return poll, nil
}

func (r *ledgerRepository) PollCount(ctx context.Context) (uint64, error) {
	var count uint64
	err := r.db.QueryRowContext(ctx, `SELECT poll_count FROM ledger_state`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get poll count: %w", err)
	}

	return count, nil
}

func (r *ledgerRepository) ListPolls(ctx context.Context) ([]*domain.Poll, error) {
	query := `
		SELECT id, creator, title, description, end_time, is_paused, yes_votes, no_votes
		FROM polls
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	polls := []*domain.Poll{}
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}

	return polls, nil
}

func (r *ledgerRepository) Voters(ctx context.Context, pollID uint64) ([]domain.Account, error) {
	query := `
		SELECT account
		FROM votes
		WHERE poll_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get voters: %w", err)
	}
	defer rows.Close()

	voters := []domain.Account{}
	for rows.Next() {
		var account string
		if err := rows.Scan(&account); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, domain.Account(account))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voters: %w", err)
	}

	return voters, nil
}

func (r *ledgerRepository) VoterChoice(ctx context.Context, pollID uint64, account domain.Account) (domain.VoteRecord, error) {
	query := `SELECT choice FROM votes WHERE poll_id = $1 AND account = $2`

	var choice bool
	err := r.db.QueryRowContext(ctx, query, pollID, string(account)).Scan(&choice)
	if err != nil {
		// Zero-initialized record for unknown polls and accounts alike.
		if errors.Is(err, sql.ErrNoRows) {
			return domain.VoteRecord{}, nil
		}
		return domain.VoteRecord{}, fmt.Errorf("failed to get voter choice: %w", err)
	}

	return domain.VoteRecord{Voted: true, Choice: choice}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoll(row rowScanner) (*domain.Poll, error) {
	var poll domain.Poll
	var creator string
	err := row.Scan(
		&poll.ID, &creator, &poll.Title, &poll.Description,
		&poll.EndTime, &poll.IsPaused, &poll.YesVotes, &poll.NoVotes,
	)
	if err != nil {
		return nil, err
	}

	poll.Creator = domain.Account(creator)
	poll.Exists = true

	return &poll, nil
}
