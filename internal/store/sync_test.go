package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/lifeos/lifeos-sync/internal/models"
	"github.com/lifeos/lifeos-sync/internal/schema"
	"github.com/lifeos/lifeos-sync/internal/session"
	"github.com/lifeos/lifeos-sync/internal/store"
)

// fakeRemote is an in-memory Remote with scriptable failures and test-driven
// change feeds.
type fakeRemote struct {
	mu        sync.Mutex
	rows      map[string][]bson.M
	fetchErr  error
	insertErr error
	updateErr error
	deleteErr error
	feeds     map[string]chan store.ChangeEvent
	watchCtx  context.Context
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		rows:  map[string][]bson.M{},
		feeds: map[string]chan store.ChangeEvent{},
	}
}

func (r *fakeRemote) FetchAll(ctx context.Context, collection, userID string) ([]bson.M, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return append([]bson.M{}, r.rows[collection]...), nil
}

func (r *fakeRemote) Insert(ctx context.Context, collection string, row bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.rows[collection] = append(r.rows[collection], row)
	return nil
}

func (r *fakeRemote) Update(ctx context.Context, collection, id, userID string, row bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	for i, existing := range r.rows[collection] {
		if existing["id"] == id {
			r.rows[collection][i] = row
			break
		}
	}
	return nil
}

func (r *fakeRemote) Delete(ctx context.Context, collection, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	rows := r.rows[collection]
	for i, existing := range rows {
		if existing["id"] == id {
			r.rows[collection] = append(rows[:i], rows[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeRemote) Watch(ctx context.Context, collection, userID string) (<-chan store.ChangeEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	feed := make(chan store.ChangeEvent, 8)
	r.feeds[collection] = feed
	r.watchCtx = ctx
	return feed, nil
}

func (r *fakeRemote) push(collection string, ev store.ChangeEvent) {
	r.mu.Lock()
	feed := r.feeds[collection]
	r.mu.Unlock()
	feed <- ev
}

func (r *fakeRemote) seedExpense(t *testing.T, userID string, e models.Expense) {
	t.Helper()
	row, err := schema.ToRemote(&e, userID)
	require.NoError(t, err)
	r.mu.Lock()
	r.rows[models.CollectionExpenses] = append(r.rows[models.CollectionExpenses], row)
	r.mu.Unlock()
}

func newRemoteStore(t *testing.T, remote *fakeRemote, kv *fakeKV) (*store.Store, *session.Gate, *logrustest.Hook) {
	t.Helper()
	logger, hook := logrustest.NewNullLogger()
	gate := session.NewGate()
	gate.Set(&session.Identity{UserID: "user-1"})
	s := store.New(store.Config{
		Remote: remote,
		Local:  kv,
		Gate:   gate,
		Logger: logger,
		Sample: testDataset,
	})
	s.Start(context.Background())
	t.Cleanup(s.Close)
	return s, gate, hook
}

func errorEntries(hook *logrustest.Hook) []logrus.Entry {
	var out []logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			out = append(out, *e)
		}
	}
	return out
}

func TestAuthenticatedStartFetchesRemoteState(t *testing.T) {
	remote := newFakeRemote()
	remote.seedExpense(t, "user-1", models.Expense{ID: "exp_r1", Amount: 300, Category: models.CategoryTravel, Date: time.Now(), CreatedAt: time.Now()})

	s, _, _ := newRemoteStore(t, remote, newFakeKV())

	require.Equal(t, store.Ready, s.Expenses.State())
	require.Equal(t, 1, s.Expenses.Len())
	exp, ok := s.Expenses.Get("exp_r1")
	require.True(t, ok)
	assert.Equal(t, float64(300), exp.Amount)

	// Sample data never leaks into the authenticated path.
	_, ok = s.Expenses.Get("exp_seed")
	assert.False(t, ok)
}

func TestAuthenticatedAddCommitsRemotely(t *testing.T) {
	remote := newFakeRemote()
	kv := newFakeKV()
	s, _, _ := newRemoteStore(t, remote, kv)

	res := s.AddExpense(context.Background(), models.Expense{Amount: 55, Category: models.CategoryShopping, Date: time.Now()})
	require.Equal(t, store.Confirmed, res)

	remote.mu.Lock()
	rows := remote.rows[models.CollectionExpenses]
	remote.mu.Unlock()
	require.Len(t, rows, 1)
	assert.Equal(t, "user-1", rows[0]["user_id"], "rows are tagged with the owner identity")
	assert.Contains(t, rows[0], "created_at", "remote columns are snake_case")
	assert.NotContains(t, rows[0], "createdAt")

	// Authenticated mutations never touch the device-local snapshots.
	_, ok := kv.Get(models.CollectionExpenses)
	assert.False(t, ok)
}

func TestRemoteFailureRollsBackAndLogsOnce(t *testing.T) {
	remote := newFakeRemote()
	remote.seedExpense(t, "user-1", models.Expense{ID: "exp_r1", Amount: 300, Category: models.CategoryTravel, Date: time.Now(), CreatedAt: time.Now()})
	s, _, hook := newRemoteStore(t, remote, newFakeKV())

	before := s.Expenses.Items()
	hook.Reset()

	remote.mu.Lock()
	remote.insertErr = context.DeadlineExceeded
	remote.mu.Unlock()

	res := s.AddExpense(context.Background(), models.Expense{Amount: 1, Category: models.CategoryOther, Date: time.Now()})
	require.Equal(t, store.RolledBack, res)

	// Observationally nothing happened.
	after := s.Expenses.Items()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
	}

	errs := errorEntries(hook)
	require.Len(t, errs, 1, "a failed mutation is logged exactly once")
	assert.Equal(t, "Remote write failed, local state rolled back", errs[0].Message)
}

func TestRemoteUpdateFailureRestoresEntity(t *testing.T) {
	remote := newFakeRemote()
	remote.seedExpense(t, "user-1", models.Expense{ID: "exp_r1", Amount: 300, Category: models.CategoryTravel, Date: time.Now(), CreatedAt: time.Now()})
	s, _, _ := newRemoteStore(t, remote, newFakeKV())

	remote.mu.Lock()
	remote.updateErr = context.DeadlineExceeded
	remote.mu.Unlock()

	res := s.UpdateExpense(context.Background(), "exp_r1", map[string]any{"amount": 999})
	require.Equal(t, store.RolledBack, res)

	exp, ok := s.Expenses.Get("exp_r1")
	require.True(t, ok)
	assert.Equal(t, float64(300), exp.Amount)
}

func TestRemoteDeleteFailureRestoresEntity(t *testing.T) {
	remote := newFakeRemote()
	remote.seedExpense(t, "user-1", models.Expense{ID: "exp_r1", Amount: 300, Category: models.CategoryTravel, Date: time.Now(), CreatedAt: time.Now()})
	s, _, _ := newRemoteStore(t, remote, newFakeKV())

	remote.mu.Lock()
	remote.deleteErr = context.DeadlineExceeded
	remote.mu.Unlock()

	require.Equal(t, store.RolledBack, s.DeleteExpense(context.Background(), "exp_r1"))
	assert.Equal(t, 1, s.Expenses.Len())
}

func TestFetchFailureDegradesToEmptyReady(t *testing.T) {
	remote := newFakeRemote()
	remote.fetchErr = context.DeadlineExceeded

	s, _, hook := newRemoteStore(t, remote, newFakeKV())

	assert.Equal(t, store.Ready, s.Expenses.State())
	assert.Equal(t, 0, s.Expenses.Len())
	assert.Equal(t, 0, s.Goals.Len())
	assert.NotEmpty(t, errorEntries(hook))
}

func TestFeedInsertWithKnownIdIsSuppressed(t *testing.T) {
	remote := newFakeRemote()
	remote.seedExpense(t, "user-1", models.Expense{ID: "exp_r1", Amount: 300, Category: models.CategoryTravel, Date: time.Now(), CreatedAt: time.Now()})
	s, _, _ := newRemoteStore(t, remote, newFakeKV())

	// Echo of a row this session already holds, then a genuinely new row.
	echo, err := schema.ToRemote(&models.Expense{ID: "exp_r1", Amount: 300, Category: models.CategoryTravel, Date: time.Now(), CreatedAt: time.Now()}, "user-1")
	require.NoError(t, err)
	remote.push(models.CollectionExpenses, store.ChangeEvent{Type: store.ChangeInsert, Row: echo})

	fresh, err := schema.ToRemote(&models.Expense{ID: "exp_r2", Amount: 10, Category: models.CategoryOther, Date: time.Now(), CreatedAt: time.Now()}, "user-1")
	require.NoError(t, err)
	remote.push(models.CollectionExpenses, store.ChangeEvent{Type: store.ChangeInsert, Row: fresh})

	require.Eventually(t, func() bool {
		_, ok := s.Expenses.Get("exp_r2")
		return ok
	}, time.Second, 5*time.Millisecond)

	count := 0
	for _, e := range s.Expenses.Items() {
		if e.ID == "exp_r1" {
			count++
		}
	}
	assert.Equal(t, 1, count, "duplicate insert notifications are suppressed")
}

func TestFeedUpdateReplacesEntity(t *testing.T) {
	remote := newFakeRemote()
	remote.seedExpense(t, "user-1", models.Expense{ID: "exp_r1", Amount: 300, Category: models.CategoryTravel, Date: time.Now(), CreatedAt: time.Now()})
	s, _, _ := newRemoteStore(t, remote, newFakeKV())

	row, err := schema.ToRemote(&models.Expense{ID: "exp_r1", Amount: 450, Category: models.CategoryTravel, Date: time.Now(), CreatedAt: time.Now()}, "user-1")
	require.NoError(t, err)
	remote.push(models.CollectionExpenses, store.ChangeEvent{Type: store.ChangeUpdate, Row: row})

	require.Eventually(t, func() bool {
		exp, ok := s.Expenses.Get("exp_r1")
		return ok && exp.Amount == 450
	}, time.Second, 5*time.Millisecond)
}

func TestFeedUpdateForAbsentIdIsIgnored(t *testing.T) {
	remote := newFakeRemote()
	s, _, _ := newRemoteStore(t, remote, newFakeKV())

	ghost, err := schema.ToRemote(&models.Expense{ID: "exp_ghost", Amount: 5, Category: models.CategoryOther, Date: time.Now(), CreatedAt: time.Now()}, "user-1")
	require.NoError(t, err)
	remote.push(models.CollectionExpenses, store.ChangeEvent{Type: store.ChangeUpdate, Row: ghost})

	fresh, err := schema.ToRemote(&models.Expense{ID: "exp_new", Amount: 6, Category: models.CategoryOther, Date: time.Now(), CreatedAt: time.Now()}, "user-1")
	require.NoError(t, err)
	remote.push(models.CollectionExpenses, store.ChangeEvent{Type: store.ChangeInsert, Row: fresh})

	require.Eventually(t, func() bool {
		_, ok := s.Expenses.Get("exp_new")
		return ok
	}, time.Second, 5*time.Millisecond)

	_, ok := s.Expenses.Get("exp_ghost")
	assert.False(t, ok, "an update for an absent id must not create the entity")
}

func TestFeedDeleteRemovesEntity(t *testing.T) {
	remote := newFakeRemote()
	remote.seedExpense(t, "user-1", models.Expense{ID: "exp_r1", Amount: 300, Category: models.CategoryTravel, Date: time.Now(), CreatedAt: time.Now()})
	s, _, _ := newRemoteStore(t, remote, newFakeKV())

	// A delete for an id this session never held is ignored.
	remote.push(models.CollectionExpenses, store.ChangeEvent{Type: store.ChangeDelete, ID: "exp_ghost"})
	remote.push(models.CollectionExpenses, store.ChangeEvent{Type: store.ChangeDelete, ID: "exp_r1"})

	require.Eventually(t, func() bool {
		return s.Expenses.Len() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestIdentitySwitchTearsDownAndResubscribes(t *testing.T) {
	remote := newFakeRemote()
	remote.seedExpense(t, "user-1", models.Expense{ID: "exp_r1", Amount: 300, Category: models.CategoryTravel, Date: time.Now(), CreatedAt: time.Now()})

	logger, _ := logrustest.NewNullLogger()
	gate := session.NewGate()
	s := store.New(store.Config{
		Remote: remote,
		Local:  newFakeKV(),
		Gate:   gate,
		Logger: logger,
		Sample: testDataset,
	})
	s.Start(context.Background())
	t.Cleanup(s.Close)

	// Anonymous start: sample data, no feed.
	require.Equal(t, 1, s.Expenses.Len())
	_, ok := s.Expenses.Get("exp_seed")
	require.True(t, ok)

	// Sign-in replaces state with the remote fetch and opens feeds.
	gate.Set(&session.Identity{UserID: "user-1"})
	_, ok = s.Expenses.Get("exp_r1")
	require.True(t, ok)
	_, ok = s.Expenses.Get("exp_seed")
	require.False(t, ok)

	remote.mu.Lock()
	firstCtx := remote.watchCtx
	remote.mu.Unlock()
	require.NotNil(t, firstCtx)
	require.NoError(t, firstCtx.Err())

	// Sign-out cancels the feed subscriptions and restores the local path.
	gate.Set(nil)
	assert.Error(t, firstCtx.Err(), "the previous feed context must be cancelled")
	_, ok = s.Expenses.Get("exp_seed")
	assert.True(t, ok)
}
