package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// fakeNewsRepo serves in-memory due lists and applies guarded status updates
// the way the real repository does: the update only succeeds when the row is
// still in the expected status.
type fakeNewsRepo struct {
	repository.NewsRepository

	mu             sync.Mutex
	items          map[uint]*models.News
	publishCalls   int
	unpublishCalls int
	publishErr     error
}

func newFakeNewsRepo(items ...*models.News) *fakeNewsRepo {
	f := &fakeNewsRepo{items: make(map[uint]*models.News)}
	for _, n := range items {
		f.items[n.ID] = n
	}
	return f
}

func (f *fakeNewsRepo) ListDueForPublish(ctx context.Context, now time.Time, limit int) ([]*models.News, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publishCalls++
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	var due []*models.News
	for _, n := range f.items {
		if n.Status == models.NewsStatusReview && n.PublishAt != nil && !n.PublishAt.After(now) {
			due = append(due, n)
		}
	}
	return due, nil
}

func (f *fakeNewsRepo) ListDueForUnpublish(ctx context.Context, now time.Time, limit int) ([]*models.News, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unpublishCalls++
	var due []*models.News
	for _, n := range f.items {
		if n.Status == models.NewsStatusPublished && n.UnpublishAt != nil && !n.UnpublishAt.After(now) {
			due = append(due, n)
		}
	}
	return due, nil
}

func (f *fakeNewsRepo) UpdateStatusIfCurrent(ctx context.Context, id uint, from, to models.NewsStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.items[id]
	if !ok || n.Status != from {
		return false, nil
	}
	n.Status = to
	return true, nil
}

func (f *fakeNewsRepo) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.publishCalls, f.unpublishCalls
}

func (f *fakeNewsRepo) status(id uint) models.NewsStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id].Status
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []*models.NewsHistory
}

func (f *fakeHistoryRepo) Save(ctx context.Context, entry *models.NewsHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistoryRepo) ListByNews(ctx context.Context, newsID uint, limit, offset int) ([]*models.NewsHistory, error) {
	return nil, nil
}

func (f *fakeHistoryRepo) recorded() []*models.NewsHistory {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.NewsHistory(nil), f.entries...)
}

func TestNewNewsScheduler_DefaultsInterval(t *testing.T) {
	s := NewNewsScheduler(newFakeNewsRepo(), &fakeHistoryRepo{}, fakeTxManager{}, 0)
	assert.Equal(t, time.Minute, s.interval)
	assert.NotNil(t, s.logger)

	s = NewNewsScheduler(newFakeNewsRepo(), &fakeHistoryRepo{}, fakeTxManager{}, 5*time.Minute)
	assert.Equal(t, 5*time.Minute, s.interval)
}

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	repo := newFakeNewsRepo()
	s := NewNewsScheduler(repo, &fakeHistoryRepo{}, fakeTxManager{}, time.Hour)

	stop := s.Start(context.Background())

	// The first pass runs right away, not after the first tick.
	require.Eventually(t, func() bool {
		p, u := repo.calls()
		return p == 1 && u == 1
	}, time.Second, 10*time.Millisecond)

	stop()

	// After stopping, no further passes happen.
	time.Sleep(50 * time.Millisecond)
	p, u := repo.calls()
	assert.Equal(t, 1, p)
	assert.Equal(t, 1, u)
}

func TestScheduler_ListErrorDoesNotAbortPass(t *testing.T) {
	repo := newFakeNewsRepo()
	repo.publishErr = errors.New("db down")
	s := NewNewsScheduler(repo, &fakeHistoryRepo{}, fakeTxManager{}, time.Hour)

	s.runOnce(context.Background())

	// A failed publish listing still lets the unpublish half run.
	p, u := repo.calls()
	assert.Equal(t, 1, p)
	assert.Equal(t, 1, u)
}

func TestScheduler_PublishesDueArticle(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	publishAt := now.Add(-time.Minute)
	repo := newFakeNewsRepo(&models.News{ID: 7, Status: models.NewsStatusReview, PublishAt: &publishAt})
	history := &fakeHistoryRepo{}

	s := NewNewsScheduler(repo, history, fakeTxManager{}, time.Hour)
	s.now = func() time.Time { return now }

	s.runOnce(context.Background())

	assert.Equal(t, models.NewsStatusPublished, repo.status(7))

	entries := history.recorded()
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, uint(7), entry.NewsID)
	require.NotNil(t, entry.FromStatus)
	assert.Equal(t, string(models.NewsStatusReview), *entry.FromStatus)
	assert.Equal(t, string(models.NewsStatusPublished), entry.ToStatus)
	assert.Equal(t, models.HistoryActionAutoPublish, entry.Diff.Action)
	require.NotNil(t, entry.Diff.ScheduledAt)
	assert.Equal(t, publishAt, *entry.Diff.ScheduledAt)
}

func TestScheduler_UnpublishesExpiredArticle(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	unpublishAt := now.Add(-time.Minute)
	repo := newFakeNewsRepo(&models.News{ID: 9, Status: models.NewsStatusPublished, UnpublishAt: &unpublishAt})
	history := &fakeHistoryRepo{}

	s := NewNewsScheduler(repo, history, fakeTxManager{}, time.Hour)
	s.now = func() time.Time { return now }

	s.runOnce(context.Background())

	assert.Equal(t, models.NewsStatusUnpublished, repo.status(9))

	entries := history.recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, models.HistoryActionAutoUnpublish, entries[0].Diff.Action)
}

func TestScheduler_PassesAreIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	publishAt := now.Add(-time.Minute)
	repo := newFakeNewsRepo(&models.News{ID: 7, Status: models.NewsStatusReview, PublishAt: &publishAt})
	history := &fakeHistoryRepo{}

	s := NewNewsScheduler(repo, history, fakeTxManager{}, time.Hour)
	s.now = func() time.Time { return now }

	// Running the same pass again finds nothing due and records nothing new.
	s.runOnce(context.Background())
	s.runOnce(context.Background())

	assert.Equal(t, models.NewsStatusPublished, repo.status(7))
	assert.Len(t, history.recorded(), 1)
}

func TestScheduler_GuardSkipsConcurrentlyMovedArticle(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	publishAt := now.Add(-time.Minute)
	item := &models.News{ID: 7, Status: models.NewsStatusReview, PublishAt: &publishAt}
	repo := newFakeNewsRepo(item)
	history := &fakeHistoryRepo{}

	s := NewNewsScheduler(repo, history, fakeTxManager{}, time.Hour)
	s.now = func() time.Time { return now }

	// An editor archives the article after it was listed but before the
	// guarded update runs: the stale transition is dropped silently.
	err := s.transition(context.Background(), &models.News{ID: 7, PublishAt: &publishAt, Status: models.NewsStatusArchived},
		models.NewsStatusPublished, models.NewsStatusUnpublished, models.HistoryActionAutoUnpublish, nil)
	require.NoError(t, err)

	assert.Equal(t, models.NewsStatusReview, repo.status(7))
	assert.Empty(t, history.recorded())
}
