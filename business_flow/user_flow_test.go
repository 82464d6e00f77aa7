package businessflow

import (
	"context"
	"testing"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fakeUserRepo) Save(ctx context.Context, user *models.User) error {
	if user.ID == 0 {
		var maxID uint
		for id := range f.users {
			if id > maxID {
				maxID = id
			}
		}
		user.ID = maxID + 1
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, userID uint, active bool) error {
	if u, ok := f.users[userID]; ok {
		u.IsActive = active
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context, filter models.UserFilter) (int64, error) {
	users, err := f.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return 0, err
	}
	return int64(len(users)), nil
}

func (f *fakeUserRepo) ByFilter(ctx context.Context, filter models.UserFilter, orderBy string, limit, offset int) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func testUserFlow(users ...*models.User) (*UserFlowImpl, *fakeUserRepo) {
	repo := newFakeUserRepo(users...)
	flow := &UserFlowImpl{userRepo: repo, txm: fakeTxManager{}}
	return flow, repo
}

func TestCreateUser_Success(t *testing.T) {
	flow, repo := testUserFlow()

	result, err := flow.CreateUser(context.Background(), &dto.CreateUserRequest{
		Username: "Newsroom_Editor",
		Password: "SecurePass123!",
		FullName: "Dilnoza Karimova",
		Role:     models.UserRoleEditor,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "newsroom_editor", result.Username)
	assert.Equal(t, models.UserRoleEditor, result.Role)
	assert.True(t, result.IsActive)

	stored, err := repo.ByUsername(context.Background(), "newsroom_editor")
	require.NoError(t, err)
	require.NotNil(t, stored)
	ok, err := utils.VerifyPassword("SecurePass123!", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	flow, _ := testUserFlow(&models.User{ID: 1, Username: "editor", Role: models.UserRoleEditor})

	_, err := flow.CreateUser(context.Background(), &dto.CreateUserRequest{
		Username: "Editor",
		Password: "SecurePass123!",
		Role:     models.UserRoleAuthor,
	}, nil)
	require.Error(t, err)
	assert.True(t, IsUsernameTaken(err))
}

func TestSetUserActive(t *testing.T) {
	flow, repo := testUserFlow(
		&models.User{ID: 1, Username: "admin", Role: models.UserRoleAdmin, IsActive: true},
		&models.User{ID: 2, Username: "author", Role: models.UserRoleAuthor, IsActive: true},
	)

	inactive := false
	result, err := flow.SetUserActive(context.Background(), &dto.SetUserActiveRequest{
		ID:       2,
		ActorID:  1,
		IsActive: &inactive,
	}, nil)
	require.NoError(t, err)
	assert.False(t, result.IsActive)
	assert.False(t, repo.users[2].IsActive)

	// Deactivating yourself is rejected, so an admin login always survives.
	_, err = flow.SetUserActive(context.Background(), &dto.SetUserActiveRequest{
		ID:       1,
		ActorID:  1,
		IsActive: &inactive,
	}, nil)
	require.Error(t, err)
	assert.True(t, IsUserSelfTarget(err))
	assert.True(t, repo.users[1].IsActive)
}

func TestSetUserActive_UnknownUser(t *testing.T) {
	flow, _ := testUserFlow(&models.User{ID: 1, Username: "admin", Role: models.UserRoleAdmin})

	active := true
	_, err := flow.SetUserActive(context.Background(), &dto.SetUserActiveRequest{
		ID:       99,
		ActorID:  1,
		IsActive: &active,
	}, nil)
	require.Error(t, err)
	assert.True(t, IsUserNotFound(err))
}

func TestDeleteUser(t *testing.T) {
	flow, repo := testUserFlow(
		&models.User{ID: 1, Username: "admin", Role: models.UserRoleAdmin, IsActive: true},
		&models.User{ID: 2, Username: "author", Role: models.UserRoleAuthor, IsActive: true},
	)

	require.NoError(t, flow.DeleteUser(context.Background(), 2, 1, nil))
	assert.NotContains(t, repo.users, uint(2))

	// Removing your own account is rejected.
	err := flow.DeleteUser(context.Background(), 1, 1, nil)
	require.Error(t, err)
	assert.True(t, IsUserSelfTarget(err))
	assert.Contains(t, repo.users, uint(1))

	err = flow.DeleteUser(context.Background(), 99, 1, nil)
	require.Error(t, err)
	assert.True(t, IsUserNotFound(err))
}

func TestListUsers_Filters(t *testing.T) {
	flow, _ := testUserFlow(
		&models.User{ID: 1, Username: "admin", Role: models.UserRoleAdmin, IsActive: true},
		&models.User{ID: 2, Username: "editor", Role: models.UserRoleEditor, IsActive: true},
		&models.User{ID: 3, Username: "retired", Role: models.UserRoleAuthor, IsActive: false},
	)

	all, err := flow.ListUsers(context.Background(), &dto.ListUsersRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Equal(t, int64(3), all.Pagination.TotalItems)

	active := true
	activeOnly, err := flow.ListUsers(context.Background(), &dto.ListUsersRequest{IsActive: &active})
	require.NoError(t, err)
	assert.Len(t, activeOnly.Items, 2)

	role := models.UserRoleEditor
	editors, err := flow.ListUsers(context.Background(), &dto.ListUsersRequest{Role: &role})
	require.NoError(t, err)
	require.Len(t, editors.Items, 1)
	assert.Equal(t, "editor", editors.Items[0].Username)
}
