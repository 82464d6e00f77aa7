package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret-key-for-jwt-signing-32-chars"

// createTestTokenService creates a token service with a symmetric key and an
// optional redis client for revocation
func createTestTokenService(rc *redis.Client) (TokenService, error) {
	return NewTokenService(
		15*time.Minute,
		"test-issuer",
		"test-audience",
		false, // useRSAKeys
		"",    // privateKeyPEM
		"",    // publicKeyPEM
		testSecretKey,
		rc,
	)
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name        string
		useRSAKeys  bool
		secretKey   string
		expectError bool
	}{
		{
			name:        "valid symmetric key configuration",
			useRSAKeys:  false,
			secretKey:   testSecretKey,
			expectError: false,
		},
		{
			name:        "missing secret key",
			useRSAKeys:  false,
			secretKey:   "",
			expectError: true,
		},
		{
			name:        "rsa requested without keys",
			useRSAKeys:  true,
			secretKey:   "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewTokenService(
				15*time.Minute,
				"test-issuer",
				"test-audience",
				tt.useRSAKeys,
				"",
				"",
				tt.secretKey,
				nil,
			)

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, service)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, service)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	service, err := createTestTokenService(nil)
	require.NoError(t, err)

	token, expiresIn, err := service.GenerateToken(7, "editor")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int((15 * time.Minute).Seconds()), expiresIn)

	claims, err := service.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "editor", claims.Role)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service, err := createTestTokenService(nil)
	require.NoError(t, err)

	token, _, err := service.GenerateToken(7, "editor")
	require.NoError(t, err)

	other, err := NewTokenService(
		15*time.Minute, "test-issuer", "test-audience",
		false, "", "", "a-completely-different-32-char-secret!!", nil,
	)
	require.NoError(t, err)

	_, err = other.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_Garbage(t *testing.T) {
	service, err := createTestTokenService(nil)
	require.NoError(t, err)

	_, err = service.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_Expired(t *testing.T) {
	service, err := NewTokenService(
		-time.Minute, // already expired at issue time
		"test-issuer", "test-audience",
		false, "", "", testSecretKey, nil,
	)
	require.NoError(t, err)

	token, _, err := service.GenerateToken(7, "editor")
	require.NoError(t, err)

	_, err = service.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRevokeToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	service, err := createTestTokenService(rc)
	require.NoError(t, err)

	token, _, err := service.GenerateToken(7, "editor")
	require.NoError(t, err)

	_, err = service.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, service.RevokeToken(context.Background(), token))

	_, err = service.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// Revoking an already revoked token is a no-op, not an error.
	assert.NoError(t, service.RevokeToken(context.Background(), token))
}

func TestRevokeToken_FailsOpenOnRedisOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	service, err := createTestTokenService(rc)
	require.NoError(t, err)

	token, _, err := service.GenerateToken(7, "editor")
	require.NoError(t, err)
	require.NoError(t, service.RevokeToken(context.Background(), token))

	// With redis unreachable the revocation list cannot be consulted; tokens
	// validate rather than locking everyone out.
	mr.Close()
	_, err = service.ValidateToken(context.Background(), token)
	assert.NoError(t, err)
}
