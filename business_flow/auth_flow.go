package businessflow

import (
	"context"
	"strings"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/app/services"
	"github.com/khabarhub/newsads/repository"
	"github.com/khabarhub/newsads/utils"
)

// AuthFlow handles login, logout and credential changes
type AuthFlow interface {
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string, metadata *ClientMetadata) (*dto.LogoutResponse, error)
	ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest, metadata *ClientMetadata) error
}

// AuthFlowImpl implements AuthFlow
type AuthFlowImpl struct {
	userRepo repository.UserRepository
	tokens   services.TokenService
	txm      repository.TxManager
}

// NewAuthFlow creates a new auth flow
func NewAuthFlow(userRepo repository.UserRepository, tokens services.TokenService, txm repository.TxManager) AuthFlow {
	return &AuthFlowImpl{
		userRepo: userRepo,
		tokens:   tokens,
		txm:      txm,
	}
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords return the same error so the endpoint does not leak
// which accounts exist.
func (f *AuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(strings.ToLower(req.Username))

	user, err := f.userRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Failed to look up user", err)
	}
	if user == nil {
		return nil, NewBusinessError("INVALID_CREDENTIALS", "Invalid username or password", ErrInvalidCredentials)
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Failed to verify password", err)
	}
	if !ok {
		return nil, NewBusinessError("INVALID_CREDENTIALS", "Invalid username or password", ErrInvalidCredentials)
	}

	if !user.IsActive {
		return nil, NewBusinessError("USER_INACTIVE", "User account is deactivated", ErrUserInactive)
	}

	token, expiresIn, err := f.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate access token", err)
	}

	userDTO := toUserDTO(user)
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        *userDTO,
	}, nil
}

// Logout revokes the presented token
func (f *AuthFlowImpl) Logout(ctx context.Context, token string, metadata *ClientMetadata) (*dto.LogoutResponse, error) {
	if err := f.tokens.RevokeToken(ctx, token); err != nil {
		return nil, NewBusinessError("LOGOUT_FAILED", "Failed to revoke token", err)
	}

	return &dto.LogoutResponse{Message: "Logged out successfully"}, nil
}

// ChangePassword verifies the current password before setting a new one
func (f *AuthFlowImpl) ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest, metadata *ClientMetadata) error {
	user, err := f.userRepo.ByID(ctx, userID)
	if err != nil {
		return NewBusinessError("PASSWORD_CHANGE_FAILED", "Failed to look up user", err)
	}
	if user == nil {
		return NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
	}

	ok, err := utils.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return NewBusinessError("PASSWORD_CHANGE_FAILED", "Failed to verify password", err)
	}
	if !ok {
		return NewBusinessError("INVALID_CREDENTIALS", "Current password is incorrect", ErrInvalidCredentials)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return NewBusinessError("PASSWORD_CHANGE_FAILED", "Failed to hash new password", err)
	}

	if err := f.txm.WithTx(ctx, func(txCtx context.Context) error {
		return f.userRepo.UpdatePassword(txCtx, user.ID, hash)
	}); err != nil {
		return NewBusinessError("PASSWORD_CHANGE_FAILED", "Failed to update password", err)
	}

	return nil
}
