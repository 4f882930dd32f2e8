package match

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindled/kindled/internal/application/service"
	"github.com/kindled/kindled/internal/domain/client"
	"github.com/kindled/kindled/internal/domain/vote"
	"github.com/kindled/kindled/pkg/apperror"
	"github.com/kindled/kindled/pkg/logger"
)

type fakeClientRepo struct {
	clients map[uuid.UUID]*client.Client
}

func newFakeClientRepo(clients ...*client.Client) *fakeClientRepo {
	m := make(map[uuid.UUID]*client.Client)
	for _, c := range clients {
		m[c.ID] = c
	}
	return &fakeClientRepo{clients: m}
}

func (r *fakeClientRepo) Save(ctx context.Context, c *client.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, client.ErrClientNotFound
	}
	return c, nil
}

func (r *fakeClientRepo) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	for _, c := range r.clients {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, client.ErrClientNotFound
}

func (r *fakeClientRepo) Update(ctx context.Context, c *client.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	result := make([]*client.Client, 0, len(r.clients))
	for _, c := range r.clients {
		result = append(result, c)
	}
	return result, nil
}

type fakeLedger struct {
	mu    sync.Mutex
	votes map[[2]uuid.UUID]vote.Vote
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{votes: make(map[[2]uuid.UUID]vote.Vote)}
}

func (l *fakeLedger) Insert(ctx context.Context, v vote.Vote) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := [2]uuid.UUID{v.VoterID, v.TargetID}
	if _, ok := l.votes[key]; ok {
		return vote.ErrDuplicateVote
	}
	l.votes[key] = v
	return nil
}

func (l *fakeLedger) Exists(ctx context.Context, voterID, targetID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.votes[[2]uuid.UUID{voterID, targetID}]
	return ok, nil
}

func (l *fakeLedger) CountByVoterOnDate(ctx context.Context, voterID uuid.UUID, day time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for key, v := range l.votes {
		if key[0] == voterID && v.VotedOn.Equal(day) {
			count++
		}
	}
	return count, nil
}

func (l *fakeLedger) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.votes)
}

type fakeNotifier struct {
	sent chan service.Notification
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan service.Notification, 10)}
}

func (n *fakeNotifier) Notify(ctx context.Context, notification service.Notification) error {
	n.sent <- notification
	return nil
}

type stubQuota struct {
	count int
}

func (q *stubQuota) Count(ctx context.Context, voterID uuid.UUID, day time.Time) (int, error) {
	return q.count, nil
}

func (q *stubQuota) Incr(ctx context.Context, voterID uuid.UUID, day time.Time) error {
	q.count++
	return nil
}

func testClient(name string) *client.Client {
	return &client.Client{
		ID:    uuid.New(),
		Email: name + "@example.com",
		Name:  name,
		Sex:   "female",
	}
}

func newTestUseCase(repo *fakeClientRepo, ledger *fakeLedger, notifier service.Notifier, limit int) *CastVoteUseCase {
	return NewCastVoteUseCase(repo, ledger, nil, notifier, logger.NewNop(), limit)
}

func TestCastVote_SelfVoteForbidden(t *testing.T) {
	alice := testClient("alice")
	uc := newTestUseCase(newFakeClientRepo(alice), newFakeLedger(), newFakeNotifier(), 10)

	_, err := uc.Execute(context.Background(), CastVoteInput{VoterID: alice.ID, TargetID: alice.ID})

	assert.ErrorIs(t, err, apperror.ErrPermission)
}

func TestCastVote_UnknownTarget(t *testing.T) {
	alice := testClient("alice")
	uc := newTestUseCase(newFakeClientRepo(alice), newFakeLedger(), newFakeNotifier(), 10)

	_, err := uc.Execute(context.Background(), CastVoteInput{VoterID: alice.ID, TargetID: uuid.New()})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCastVote_RepeatIsIdempotent(t *testing.T) {
	alice, bob := testClient("alice"), testClient("bob")
	ledger := newFakeLedger()
	uc := newTestUseCase(newFakeClientRepo(alice, bob), ledger, newFakeNotifier(), 10)
	input := CastVoteInput{VoterID: alice.ID, TargetID: bob.ID}

	first, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeVoted, first.Outcome)

	second, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeAlreadyVoted, second.Outcome)

	assert.Equal(t, 1, ledger.len())
}

func TestCastVote_ReciprocalVoteMatches(t *testing.T) {
	alice, bob := testClient("alice"), testClient("bob")
	ledger := newFakeLedger()
	notifier := newFakeNotifier()
	uc := newTestUseCase(newFakeClientRepo(alice, bob), ledger, notifier, 10)

	first, err := uc.Execute(context.Background(), CastVoteInput{VoterID: alice.ID, TargetID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeVoted, first.Outcome)

	second, err := uc.Execute(context.Background(), CastVoteInput{VoterID: bob.ID, TargetID: alice.ID})
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeMatched, second.Outcome)

	assert.Equal(t, 2, ledger.len())

	recipients := make(map[string]string)
	for i := 0; i < 2; i++ {
		select {
		case n := <-notifier.sent:
			recipients[n.Recipient] = n.Body
		case <-time.After(2 * time.Second):
			t.Fatal("expected two match notifications")
		}
	}

	require.Len(t, recipients, 2)
	assert.Contains(t, recipients[alice.Email], bob.Name)
	assert.Contains(t, recipients[alice.Email], bob.Email)
	assert.Contains(t, recipients[bob.Email], alice.Name)
	assert.Contains(t, recipients[bob.Email], alice.Email)
}

func TestCastVote_DailyQuota(t *testing.T) {
	voter := testClient("voter")
	targets := []*client.Client{testClient("t1"), testClient("t2"), testClient("t3"), testClient("t4")}

	repo := newFakeClientRepo(append(targets, voter)...)
	ledger := newFakeLedger()
	uc := newTestUseCase(repo, ledger, newFakeNotifier(), 3)

	for i := 0; i < 3; i++ {
		out, err := uc.Execute(context.Background(), CastVoteInput{VoterID: voter.ID, TargetID: targets[i].ID})
		require.NoError(t, err)
		assert.Equal(t, vote.OutcomeVoted, out.Outcome)
	}

	out, err := uc.Execute(context.Background(), CastVoteInput{VoterID: voter.ID, TargetID: targets[3].ID})
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeQuotaExceeded, out.Outcome)
	assert.Equal(t, 3, ledger.len())
}

func TestCastVote_QuotaFastPathShortCircuits(t *testing.T) {
	alice, bob := testClient("alice"), testClient("bob")
	ledger := newFakeLedger()
	quota := &stubQuota{count: 5}
	uc := NewCastVoteUseCase(newFakeClientRepo(alice, bob), ledger, quota, newFakeNotifier(), logger.NewNop(), 5)

	out, err := uc.Execute(context.Background(), CastVoteInput{VoterID: alice.ID, TargetID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeQuotaExceeded, out.Outcome)
	assert.Equal(t, 0, ledger.len())
}

// blindLedger never sees existing votes on lookup, so the duplicate only
// surfaces as an insert conflict, like a concurrent cast that won the race
// between our existence check and our insert.
type blindLedger struct {
	*fakeLedger
}

func (l *blindLedger) Exists(ctx context.Context, voterID, targetID uuid.UUID) (bool, error) {
	return false, nil
}

func TestCastVote_ConcurrentDuplicateMapsToAlreadyVoted(t *testing.T) {
	alice, bob := testClient("alice"), testClient("bob")
	inner := newFakeLedger()
	require.NoError(t, inner.Insert(context.Background(), vote.Vote{VoterID: alice.ID, TargetID: bob.ID}))
	ledger := &blindLedger{fakeLedger: inner}

	uc := NewCastVoteUseCase(newFakeClientRepo(alice, bob), ledger, nil, newFakeNotifier(), logger.NewNop(), 10)

	out, err := uc.Execute(context.Background(), CastVoteInput{VoterID: alice.ID, TargetID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeAlreadyVoted, out.Outcome)
	assert.Equal(t, 1, inner.len())
}

func TestCastVote_QuotaCountsOnlyToday(t *testing.T) {
	voter, target := testClient("voter"), testClient("target")
	ledger := newFakeLedger()

	// A vote from a past day must not count against today's quota.
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	old := testClient("old")
	require.NoError(t, ledger.Insert(context.Background(), vote.Vote{
		VoterID:  voter.ID,
		TargetID: old.ID,
		VotedOn:  time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC),
	}))

	uc := newTestUseCase(newFakeClientRepo(voter, target, old), ledger, newFakeNotifier(), 1)

	out, err := uc.Execute(context.Background(), CastVoteInput{VoterID: voter.ID, TargetID: target.ID})
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeVoted, out.Outcome)
}
