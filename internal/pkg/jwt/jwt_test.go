package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "EMP00042", "Alice", "ADMIN", "secret", 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, "secret")
	require.NoError(t, err)

	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "EMP00042", claims.EmployeeID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "EMP00001", "A", "USER", "secret", 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(1, "EMP00001", "A", "USER", "secret", -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-1", "refresh-secret", 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, "refresh-secret")
	require.NoError(t, err)

	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "token-id-1", claims.TokenID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	access, err := GenerateAccessToken(1, "EMP00001", "A", "USER", "secret", 15)
	require.NoError(t, err)

	refresh, err := GenerateRefreshToken(1, "token-id-1", "secret", 7)
	require.NoError(t, err)

	// Same secret, but the claim shapes differ
	refreshClaims, err := ValidateRefreshToken(access, "secret")
	if err == nil {
		assert.Empty(t, refreshClaims.TokenID)
	}

	accessClaims, err := ValidateAccessToken(refresh, "secret")
	if err == nil {
		assert.Empty(t, accessClaims.EmployeeID)
	}
}
