package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openballot/ledger/internal/adapters/clock"
	"github.com/openballot/ledger/internal/core/domain"
)

func newTestStore() (*Store, *clock.Fake) {
	fakeClock := clock.NewFake(time.Unix(1_700_000_000, 0))
	return NewStore(fakeClock), fakeClock
}

func TestCreatePollSequentialIDs(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		poll, err := store.CreatePoll(ctx, "0xcreator", "Poll", "", 3600)
		require.NoError(t, err)
		assert.Equal(t, uint64(i), poll.ID)
	}

	count, err := store.PollCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), count)
}

func TestCastVotePreconditionOrder(t *testing.T) {
	store, fakeClock := newTestStore()
	ctx := context.Background()

	poll, err := store.CreatePoll(ctx, "0xcreator", "Poll", "", 3600)
	require.NoError(t, err)

	// A paused, expired poll reports the pause first.
	require.NoError(t, store.SetPaused(ctx, poll.ID, true))
	fakeClock.Advance(2 * time.Hour)
	assert.ErrorIs(t, store.CastVote(ctx, poll.ID, "0xvoter1", true), domain.ErrPollIsPaused)

	// Unpaused but expired, the expiry surfaces.
	require.NoError(t, store.SetPaused(ctx, poll.ID, false))
	assert.ErrorIs(t, store.CastVote(ctx, poll.ID, "0xvoter1", true), domain.ErrPollExpired)

	// Nonexistence beats everything.
	assert.ErrorIs(t, store.CastVote(ctx, 42, "0xvoter1", true), domain.ErrPollDoesNotExist)
}

func TestCastVoteExpiryBoundary(t *testing.T) {
	store, fakeClock := newTestStore()
	ctx := context.Background()

	poll, err := store.CreatePoll(ctx, "0xcreator", "Poll", "", 100)
	require.NoError(t, err)

	fakeClock.Advance(99 * time.Second)
	require.NoError(t, store.CastVote(ctx, poll.ID, "0xvoter1", true))

	fakeClock.Advance(1 * time.Second)
	assert.ErrorIs(t, store.CastVote(ctx, poll.ID, "0xvoter2", true), domain.ErrPollExpired)
}

func TestTallyMatchesVoterList(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	poll, err := store.CreatePoll(ctx, "0xcreator", "Poll", "", 3600)
	require.NoError(t, err)

	choices := []bool{true, true, false, true, false}
	for i, yes := range choices {
		voter := domain.Account(fmt.Sprintf("0xvoter%d", i))
		require.NoError(t, store.CastVote(ctx, poll.ID, voter, yes))
	}

	got, err := store.GetPoll(ctx, poll.ID)
	require.NoError(t, err)
	voters, err := store.Voters(ctx, poll.ID)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), got.YesVotes)
	assert.Equal(t, uint64(2), got.NoVotes)
	assert.Equal(t, got.YesVotes+got.NoVotes, uint64(len(voters)))
}

func TestVotersPreserveCastOrder(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	poll, err := store.CreatePoll(ctx, "0xcreator", "Poll", "", 3600)
	require.NoError(t, err)

	expected := []domain.Account{"0xc", "0xa", "0xb"}
	for _, voter := range expected {
		require.NoError(t, store.CastVote(ctx, poll.ID, voter, true))
	}

	voters, err := store.Voters(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, expected, voters)
}

func TestVotersOnNonexistentPoll(t *testing.T) {
	store, _ := newTestStore()

	voters, err := store.Voters(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, voters)
}

func TestVoterChoiceZeroInitialized(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	record, err := store.VoterChoice(ctx, 7, "0xvoter1")
	require.NoError(t, err)
	assert.Equal(t, domain.VoteRecord{}, record)

	poll, err := store.CreatePoll(ctx, "0xcreator", "Poll", "", 3600)
	require.NoError(t, err)

	record, err = store.VoterChoice(ctx, poll.ID, "0xvoter1")
	require.NoError(t, err)
	assert.Equal(t, domain.VoteRecord{}, record)

	require.NoError(t, store.CastVote(ctx, poll.ID, "0xvoter1", false))

	record, err = store.VoterChoice(ctx, poll.ID, "0xvoter1")
	require.NoError(t, err)
	assert.Equal(t, domain.VoteRecord{Voted: true, Choice: false}, record)
}

func TestGetPollReturnsCopy(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	created, err := store.CreatePoll(ctx, "0xcreator", "Poll", "", 3600)
	require.NoError(t, err)

	got, err := store.GetPoll(ctx, created.ID)
	require.NoError(t, err)
	got.YesVotes = 99

	fresh, err := store.GetPoll(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, fresh.YesVotes)
}

func TestConcurrentVotesKeepInvariants(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	poll, err := store.CreatePoll(ctx, "0xcreator", "Poll", "", 3600)
	require.NoError(t, err)

	const voterCount = 100
	var wg sync.WaitGroup
	for i := 0; i < voterCount; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			voter := domain.Account(fmt.Sprintf("0xvoter%d", i))
			// Every voter also retries once; the retry must not double-count.
			_ = store.CastVote(ctx, poll.ID, voter, i%2 == 0)
			_ = store.CastVote(ctx, poll.ID, voter, i%2 != 0)
		}(i)
	}
	wg.Wait()

	got, err := store.GetPoll(ctx, poll.ID)
	require.NoError(t, err)
	voters, err := store.Voters(ctx, poll.ID)
	require.NoError(t, err)

	assert.Equal(t, uint64(voterCount), got.YesVotes+got.NoVotes)
	assert.Len(t, voters, voterCount)
}

func TestListPollsOrdered(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.CreatePoll(ctx, "0xcreator", fmt.Sprintf("Poll %d", i), "", 3600)
		require.NoError(t, err)
	}

	polls, err := store.ListPolls(ctx)
	require.NoError(t, err)
	require.Len(t, polls, 3)
	for i, poll := range polls {
		assert.Equal(t, uint64(i), poll.ID)
		assert.Equal(t, fmt.Sprintf("Poll %d", i), poll.Title)
	}
}
