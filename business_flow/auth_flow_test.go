package businessflow

import (
	"context"
	"testing"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/app/services"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/khabarhub/newsads/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	repository.UserRepository
	users           map[uint]*models.User
	updatedPassword string
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	m := make(map[uint]*models.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) ByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ByID(ctx context.Context, id uint) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	f.updatedPassword = passwordHash
	return nil
}

type fakeTokenService struct {
	revoked []string
}

func (f *fakeTokenService) GenerateToken(userID uint, role string) (string, int, error) {
	return "test-token", 3600, nil
}

func (f *fakeTokenService) ValidateToken(ctx context.Context, token string) (*services.TokenClaims, error) {
	return nil, services.ErrTokenInvalid
}

func (f *fakeTokenService) RevokeToken(ctx context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	return nil
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:           1,
		Username:     "editor",
		PasswordHash: hash,
		FullName:     "News Editor",
		Role:         models.UserRoleEditor,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	user := testUser(t, "correct horse battery")
	flow := NewAuthFlow(newFakeUserRepo(user), &fakeTokenService{}, fakeTxManager{})

	resp, err := flow.Login(context.Background(), &dto.LoginRequest{
		Username: "Editor", // case and whitespace are normalized
		Password: "correct horse battery",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "test-token", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "editor", resp.User.Username)
	assert.Equal(t, models.UserRoleEditor, resp.User.Role)
}

func TestLogin_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	user := testUser(t, "correct horse battery")
	flow := NewAuthFlow(newFakeUserRepo(user), &fakeTokenService{}, fakeTxManager{})

	_, errUnknown := flow.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody",
		Password: "whatever123",
	}, nil)
	require.Error(t, errUnknown)

	_, errWrongPass := flow.Login(context.Background(), &dto.LoginRequest{
		Username: "editor",
		Password: "not the password",
	}, nil)
	require.Error(t, errWrongPass)

	// Both failures surface the identical code so the endpoint does not
	// reveal which usernames exist.
	var be1, be2 *BusinessError
	require.ErrorAs(t, errUnknown, &be1)
	require.ErrorAs(t, errWrongPass, &be2)
	assert.Equal(t, be1.Code, be2.Code)
	assert.True(t, IsInvalidCredentials(errUnknown))
	assert.True(t, IsInvalidCredentials(errWrongPass))
}

func TestLogin_InactiveUser(t *testing.T) {
	user := testUser(t, "correct horse battery")
	user.IsActive = false
	flow := NewAuthFlow(newFakeUserRepo(user), &fakeTokenService{}, fakeTxManager{})

	_, err := flow.Login(context.Background(), &dto.LoginRequest{
		Username: "editor",
		Password: "correct horse battery",
	}, nil)
	require.Error(t, err)
	assert.True(t, IsUserInactive(err))
}

func TestLogout_RevokesToken(t *testing.T) {
	tokens := &fakeTokenService{}
	flow := NewAuthFlow(newFakeUserRepo(), tokens, fakeTxManager{})

	resp, err := flow.Logout(context.Background(), "some-access-token", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, []string{"some-access-token"}, tokens.revoked)
}

func TestChangePassword(t *testing.T) {
	user := testUser(t, "old password 123")
	repo := newFakeUserRepo(user)
	flow := NewAuthFlow(repo, &fakeTokenService{}, fakeTxManager{})

	// Wrong current password is rejected.
	err := flow.ChangePassword(context.Background(), 1, &dto.ChangePasswordRequest{
		CurrentPassword: "not the password",
		NewPassword:     "brand new password",
	}, nil)
	require.Error(t, err)
	assert.True(t, IsInvalidCredentials(err))
	assert.Empty(t, repo.updatedPassword)

	// Correct current password stores a hash of the new one.
	err = flow.ChangePassword(context.Background(), 1, &dto.ChangePasswordRequest{
		CurrentPassword: "old password 123",
		NewPassword:     "brand new password",
	}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, repo.updatedPassword)

	ok, err := utils.VerifyPassword("brand new password", repo.updatedPassword)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChangePassword_UnknownUser(t *testing.T) {
	flow := NewAuthFlow(newFakeUserRepo(), &fakeTokenService{}, fakeTxManager{})

	err := flow.ChangePassword(context.Background(), 99, &dto.ChangePasswordRequest{
		CurrentPassword: "whatever12345",
		NewPassword:     "whatever67890",
	}, nil)
	require.Error(t, err)
	assert.True(t, IsUserNotFound(err))
}
