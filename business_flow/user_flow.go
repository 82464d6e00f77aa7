package businessflow

import (
	"context"
	"strings"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/khabarhub/newsads/utils"
)

// UserFlow handles the admin user management surface
type UserFlow interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest, metadata *ClientMetadata) (*dto.UserDTO, error)
	ListUsers(ctx context.Context, req *dto.ListUsersRequest) (*dto.ListUsersResponse, error)
	SetUserActive(ctx context.Context, req *dto.SetUserActiveRequest, metadata *ClientMetadata) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, userID, actorID uint, metadata *ClientMetadata) error
}

// UserFlowImpl implements the user management business flow
type UserFlowImpl struct {
	userRepo repository.UserRepository
	txm      repository.TxManager
}

// NewUserFlow creates a new user flow instance
func NewUserFlow(userRepo repository.UserRepository, txm repository.TxManager) UserFlow {
	return &UserFlowImpl{
		userRepo: userRepo,
		txm:      txm,
	}
}

// CreateUser adds an editorial account. Usernames are lowercased and unique.
func (f *UserFlowImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest, metadata *ClientMetadata) (*dto.UserDTO, error) {
	username := strings.TrimSpace(strings.ToLower(req.Username))

	existing, err := f.userRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}
	if existing != nil {
		return nil, NewBusinessError("USERNAME_TAKEN", "Username already exists", ErrUsernameTaken)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, NewBusinessError("USER_CREATION_FAILED", "Failed to hash password", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         req.Role,
		IsActive:     true,
		CreatedAt:    utils.UTCNow(),
	}
	if err := f.userRepo.Save(ctx, user); err != nil {
		return nil, NewBusinessError("USER_CREATION_FAILED", "User creation failed", err)
	}

	return toUserDTO(user), nil
}

// ListUsers retrieves a page of editorial users
func (f *UserFlowImpl) ListUsers(ctx context.Context, req *dto.ListUsersRequest) (*dto.ListUsersResponse, error) {
	page, size := NormalizePage(req.Page, req.PageSize, utils.DefaultPageSize, utils.MaxPageSize)

	filter := models.UserFilter{
		Role:     req.Role,
		IsActive: req.IsActive,
	}

	total, err := f.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("USER_LIST_FAILED", "Failed to count users", err)
	}

	users, err := f.userRepo.ByFilter(ctx, filter, "username ASC", size, (page-1)*size)
	if err != nil {
		return nil, NewBusinessError("USER_LIST_FAILED", "Failed to list users", err)
	}

	resp := &dto.ListUsersResponse{
		Items:      make([]dto.UserDTO, 0, len(users)),
		Pagination: paginationDTO(page, size, total),
	}
	for _, u := range users {
		resp.Items = append(resp.Items, *toUserDTO(u))
	}

	return resp, nil
}

// SetUserActive toggles an account's active flag. A deactivated user keeps
// their rows and history but can no longer authenticate. Admins cannot
// deactivate themselves, so the system always retains a working admin login.
func (f *UserFlowImpl) SetUserActive(ctx context.Context, req *dto.SetUserActiveRequest, metadata *ClientMetadata) (*dto.UserDTO, error) {
	if req.ID == req.ActorID {
		return nil, NewBusinessError("USER_SELF_TARGET", "Cannot change your own active status", ErrUserSelfTarget)
	}

	user, err := f.userRepo.ByID(ctx, req.ID)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}
	if user == nil {
		return nil, NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
	}

	if err := f.userRepo.SetActive(ctx, user.ID, *req.IsActive); err != nil {
		return nil, NewBusinessError("USER_UPDATE_FAILED", "Failed to update user", err)
	}
	user.IsActive = *req.IsActive

	return toUserDTO(user), nil
}

// DeleteUser removes an account entirely. Articles keep their author id, so
// deletion is reserved for accounts that never produced content; deactivation
// is the usual path.
func (f *UserFlowImpl) DeleteUser(ctx context.Context, userID, actorID uint, metadata *ClientMetadata) error {
	if userID == actorID {
		return NewBusinessError("USER_SELF_TARGET", "Cannot remove your own account", ErrUserSelfTarget)
	}

	user, err := f.userRepo.ByID(ctx, userID)
	if err != nil {
		return NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}
	if user == nil {
		return NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
	}

	return f.txm.WithTx(ctx, func(txCtx context.Context) error {
		if err := f.userRepo.Delete(txCtx, user.ID); err != nil {
			return NewBusinessError("USER_DELETE_FAILED", "Failed to remove user", err)
		}
		return nil
	})
}
