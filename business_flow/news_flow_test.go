package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTxManager runs the unit of work without a real transaction
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// fakeNewsRepo keeps articles in memory and mimics the guarded status update
type fakeNewsRepo struct {
	repository.NewsRepository
	news map[uint]*models.News
}

func newFakeNewsRepo(items ...*models.News) *fakeNewsRepo {
	m := make(map[uint]*models.News, len(items))
	for _, n := range items {
		m[n.ID] = n
	}
	return &fakeNewsRepo{news: m}
}

func (f *fakeNewsRepo) ByID(ctx context.Context, id uint) (*models.News, error) {
	return f.news[id], nil
}

func (f *fakeNewsRepo) ByIDNotDeleted(ctx context.Context, id uint) (*models.News, error) {
	n := f.news[id]
	if n == nil || n.IsDeleted {
		return nil, nil
	}
	return n, nil
}

func (f *fakeNewsRepo) UpdateStatusIfCurrent(ctx context.Context, id uint, from, to models.NewsStatus) (bool, error) {
	n := f.news[id]
	if n == nil || n.Status != from {
		return false, nil
	}
	n.Status = to
	return true, nil
}

func (f *fakeNewsRepo) SetDeleted(ctx context.Context, id uint, deleted bool, at *time.Time) error {
	n := f.news[id]
	n.IsDeleted = deleted
	n.DeletedAt = at
	return nil
}

func (f *fakeNewsRepo) HardDelete(ctx context.Context, id uint) error {
	delete(f.news, id)
	return nil
}

// fakeHistoryRepo records saved entries in order
type fakeHistoryRepo struct {
	entries []*models.NewsHistory
}

func (f *fakeHistoryRepo) Save(ctx context.Context, entry *models.NewsHistory) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistoryRepo) ListByNews(ctx context.Context, newsID uint, limit, offset int) ([]*models.NewsHistory, error) {
	var out []*models.NewsHistory
	for _, e := range f.entries {
		if e.NewsID == newsID {
			out = append(out, e)
		}
	}
	return out, nil
}

func testNewsFlow(newsRepo *fakeNewsRepo, historyRepo *fakeHistoryRepo) *NewsFlowImpl {
	return &NewsFlowImpl{
		newsRepo:    newsRepo,
		historyRepo: historyRepo,
		txm:         fakeTxManager{},
	}
}

func draftArticle(id uint) *models.News {
	return &models.News{ID: id, AuthorID: 1, Status: models.NewsStatusDraft}
}

func TestChangeStatus_RecordsOneHistoryEntry(t *testing.T) {
	newsRepo := newFakeNewsRepo(draftArticle(1))
	historyRepo := &fakeHistoryRepo{}
	flow := testNewsFlow(newsRepo, historyRepo)

	resp, err := flow.ChangeStatus(context.Background(), &dto.ChangeNewsStatusRequest{
		ID:      1,
		ActorID: 42,
		Status:  "review",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "review", resp.Status)

	require.Len(t, historyRepo.entries, 1)
	entry := historyRepo.entries[0]
	require.NotNil(t, entry.FromStatus)
	assert.Equal(t, "draft", *entry.FromStatus)
	assert.Equal(t, "review", entry.ToStatus)
	assert.Equal(t, models.HistoryActionStatusChange, entry.Diff.Action)
	require.NotNil(t, entry.ChangedByID)
	assert.Equal(t, uint(42), *entry.ChangedByID)
}

func TestChangeStatus_SameStatusRejected(t *testing.T) {
	newsRepo := newFakeNewsRepo(draftArticle(1))
	historyRepo := &fakeHistoryRepo{}
	flow := testNewsFlow(newsRepo, historyRepo)

	_, err := flow.ChangeStatus(context.Background(), &dto.ChangeNewsStatusRequest{
		ID:      1,
		ActorID: 42,
		Status:  "draft",
	}, nil)
	require.Error(t, err)
	assert.True(t, IsSameStatusTransition(err))

	// A rejected no-op transition must leave no history behind.
	assert.Empty(t, historyRepo.entries)
}

func TestChangeStatus_InvalidStatusValue(t *testing.T) {
	flow := testNewsFlow(newFakeNewsRepo(draftArticle(1)), &fakeHistoryRepo{})

	_, err := flow.ChangeStatus(context.Background(), &dto.ChangeNewsStatusRequest{
		ID:      1,
		ActorID: 42,
		Status:  "live",
	}, nil)
	require.Error(t, err)

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "NEWS_STATUS_INVALID", be.Code)
}

func TestChangeStatus_NotFound(t *testing.T) {
	flow := testNewsFlow(newFakeNewsRepo(), &fakeHistoryRepo{})

	_, err := flow.ChangeStatus(context.Background(), &dto.ChangeNewsStatusRequest{
		ID:      99,
		ActorID: 42,
		Status:  "review",
	}, nil)
	require.Error(t, err)
	assert.True(t, IsNewsNotFound(err))
}

func TestChangeStatus_DeletedArticleNotFound(t *testing.T) {
	article := draftArticle(1)
	article.IsDeleted = true
	flow := testNewsFlow(newFakeNewsRepo(article), &fakeHistoryRepo{})

	_, err := flow.ChangeStatus(context.Background(), &dto.ChangeNewsStatusRequest{
		ID:      1,
		ActorID: 42,
		Status:  "review",
	}, nil)
	require.Error(t, err)
	assert.True(t, IsNewsNotFound(err))
}

func TestSoftDeleteAndRestore(t *testing.T) {
	article := draftArticle(1)
	newsRepo := newFakeNewsRepo(article)
	historyRepo := &fakeHistoryRepo{}
	flow := testNewsFlow(newsRepo, historyRepo)

	require.NoError(t, flow.SoftDeleteNews(context.Background(), 1, 42, nil))
	assert.True(t, article.IsDeleted)
	require.NotNil(t, article.DeletedAt)

	// Deleting twice is rejected.
	err := flow.SoftDeleteNews(context.Background(), 1, 42, nil)
	require.Error(t, err)
	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "NEWS_ALREADY_DELETED", be.Code)

	require.NoError(t, flow.RestoreNews(context.Background(), 1, 42, nil))
	assert.False(t, article.IsDeleted)
	assert.Nil(t, article.DeletedAt)

	// Restoring a live article is rejected.
	err = flow.RestoreNews(context.Background(), 1, 42, nil)
	require.Error(t, err)
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "NEWS_NOT_DELETED", be.Code)

	// Every soft delete and restore leaves an audit entry.
	require.Len(t, historyRepo.entries, 2)
	assert.Equal(t, models.HistoryActionSoftDelete, historyRepo.entries[0].Diff.Action)
	assert.Equal(t, models.HistoryActionRestore, historyRepo.entries[1].Diff.Action)
}

func TestHardDeleteRequiresSoftDelete(t *testing.T) {
	article := draftArticle(1)
	newsRepo := newFakeNewsRepo(article)
	flow := testNewsFlow(newsRepo, &fakeHistoryRepo{})

	err := flow.HardDeleteNews(context.Background(), 1, 42, nil)
	require.Error(t, err)
	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "NEWS_NOT_DELETED", be.Code)

	require.NoError(t, flow.SoftDeleteNews(context.Background(), 1, 42, nil))
	require.NoError(t, flow.HardDeleteNews(context.Background(), 1, 42, nil))

	gone, err := newsRepo.ByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
	}{
		{"defaults applied", 0, 0, 1, 20},
		{"negative page clamped", -3, 10, 1, 10},
		{"size capped", 1, 500, 1, 100},
		{"valid passthrough", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := NormalizePage(tt.page, tt.size, 20, 100)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}
