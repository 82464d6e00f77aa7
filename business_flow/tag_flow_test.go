package businessflow

import (
	"context"
	"testing"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTagRepo struct {
	repository.TagRepository
	tags map[uint]*models.Tag
}

func newFakeTagRepo(tags ...*models.Tag) *fakeTagRepo {
	m := make(map[uint]*models.Tag, len(tags))
	for _, tag := range tags {
		m[tag.ID] = tag
	}
	return &fakeTagRepo{tags: m}
}

func (f *fakeTagRepo) ByID(ctx context.Context, id uint) (*models.Tag, error) {
	return f.tags[id], nil
}

func (f *fakeTagRepo) ByCode(ctx context.Context, code string) (*models.Tag, error) {
	for _, tag := range f.tags {
		if tag.Code == code {
			return tag, nil
		}
	}
	return nil, nil
}

func (f *fakeTagRepo) Save(ctx context.Context, tag *models.Tag) error {
	if tag.ID == 0 {
		tag.ID = uint(len(f.tags) + 1)
	}
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeTagRepo) Delete(ctx context.Context, id uint) error {
	delete(f.tags, id)
	return nil
}

func TestCreateTag_DuplicateCode(t *testing.T) {
	flow := &TagFlowImpl{tagRepo: newFakeTagRepo(&models.Tag{ID: 1, Code: "siyosat"})}

	// Codes are lowercased before the uniqueness check.
	_, err := flow.CreateTag(context.Background(), &dto.CreateTagRequest{Code: " Siyosat "}, nil)
	require.Error(t, err)

	var berr *BusinessError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, "TAG_CODE_TAKEN", berr.Code)
}

func TestDeleteTag(t *testing.T) {
	repo := newFakeTagRepo(&models.Tag{ID: 1, Code: "siyosat", IsActive: true})
	flow := &TagFlowImpl{tagRepo: repo}

	require.NoError(t, flow.DeleteTag(context.Background(), 1, nil))
	assert.NotContains(t, repo.tags, uint(1))

	err := flow.DeleteTag(context.Background(), 1, nil)
	require.Error(t, err)
	assert.True(t, IsTagNotFound(err))
}
