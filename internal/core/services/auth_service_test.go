package services

import (
	"context"
	"testing"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"
	"assetdesk/internal/config"
	"assetdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		testConfig(),
	)
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterInput{
		Name:     "Alice Example",
		Email:    "Alice@Example.COM",
		Password: "secret-password-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "EMP00001", resp.User.EmployeeID)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, models.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Claims carry the identity the middleware relies on
	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "EMP00001", claims.EmployeeID)
	assert.Equal(t, "Alice Example", claims.Name)

	// Password is stored hashed
	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.NotEqual(t, "secret-password-1", user.Password)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Name: "A", Email: "a@example.com", Password: "secret-password-1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterInput{Name: "B", Email: "a@example.com", Password: "secret-password-2"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegister_WeakPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(context.Background(), &RegisterInput{Name: "A", Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Name: "A", Email: "a@example.com", Password: "secret-password-1"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &LoginInput{Email: "a@example.com", Password: "secret-password-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(ctx, &LoginInput{Email: "a@example.com", Password: "wrong-password-1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "secret-password-1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Name: "A", Email: "a@example.com", Password: "secret-password-1"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "a@example.com").
		Update("is_active", false).Error)

	_, err = svc.Login(ctx, &LoginInput{Email: "a@example.com", Password: "secret-password-1"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestRefreshToken_Rotation(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterInput{Name: "A", Email: "a@example.com", Password: "secret-password-1"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked once rotated
	_, err = svc.RefreshToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// The new one still works
	_, err = svc.RefreshToken(ctx, refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshToken_Garbage(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterInput{Name: "A", Email: "a@example.com", Password: "secret-password-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, reg.RefreshToken))

	_, err = svc.RefreshToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestNextEmployeeID(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	id, err := svc.NextEmployeeID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EMP00001", id)

	first, err := svc.Register(ctx, &RegisterInput{Name: "A", Email: "a@example.com", Password: "secret-password-1"})
	require.NoError(t, err)
	assert.Equal(t, "EMP00001", first.User.EmployeeID)

	second, err := svc.Register(ctx, &RegisterInput{Name: "B", Email: "b@example.com", Password: "secret-password-1"})
	require.NoError(t, err)
	assert.Equal(t, "EMP00002", second.User.EmployeeID)

	// Deleting a user never frees its number
	require.NoError(t, db.Where("email = ?", "b@example.com").Delete(&models.User{}).Error)

	id, err = svc.NextEmployeeID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EMP00003", id)
}
