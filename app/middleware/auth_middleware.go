// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/app/services"
	"github.com/khabarhub/newsads/repository"

	"github.com/gofiber/fiber/v3"
)

// Locals keys set by the auth middleware
const (
	LocalsUserID   = "user_id"
	LocalsUserRole = "user_role"
	LocalsTokenID  = "token_id"
	LocalsToken    = "access_token"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
	userRepo     repository.UserRepository
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

// Authenticate is the middleware function that validates JWT tokens
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTHORIZATION_HEADER", "Authorization header is required")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "INVALID_AUTHORIZATION_FORMAT", "Invalid authorization header format. Expected 'Bearer <token>'")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return unauthorized(c, "MISSING_ACCESS_TOKEN", "Access token is required")
		}

		// Validate the token (this already checks for revocation)
		claims, err := m.tokenService.ValidateToken(c.Context(), token)
		if err != nil {
			var errorCode string
			var message string

			if errors.Is(err, services.ErrTokenExpired) {
				errorCode = "TOKEN_EXPIRED"
				message = "Access token has expired"
			} else if errors.Is(err, services.ErrTokenRevoked) {
				errorCode = "TOKEN_REVOKED"
				message = "Access token has been revoked"
			} else {
				errorCode = "TOKEN_INVALID"
				message = "Invalid access token"
			}

			return unauthorized(c, errorCode, message)
		}

		// The token can outlive the account: re-check the user row
		user, err := m.userRepo.ByID(c.Context(), claims.UserID)
		if err != nil {
			return unauthorized(c, "TOKEN_VALIDATION_FAILED", "Token validation failed")
		}
		if user == nil || !user.IsActive {
			return unauthorized(c, "USER_INACTIVE", "User account is deactivated")
		}

		// Store user information in context for downstream handlers
		c.Locals(LocalsUserID, user.ID)
		c.Locals(LocalsUserRole, user.Role)
		c.Locals(LocalsTokenID, claims.TokenID)
		c.Locals(LocalsToken, token)

		// Store RequestID for audit logging
		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// RequireRole restricts a route to the given roles. It must run after
// Authenticate so the role is present in locals.
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, _ := c.Locals(LocalsUserRole).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
			Success: false,
			Message: "Operation not permitted for this role",
			Error: dto.ErrorDetail{
				Code: "FORBIDDEN",
			},
		})
	}
}

func unauthorized(c fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: code,
		},
	})
}
