package services

import (
	"context"
	"testing"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"
	"assetdesk/internal/core/domain"
	"assetdesk/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(repositories.NewUserRepository(db), newAuthService(db))
}

func TestUserCreate(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user, err := svc.Create(ctx, &CreateUserInput{
		Name:     "Bob Admin",
		Email:    "Bob@Example.com",
		Password: "secret-password-1",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	assert.Equal(t, "EMP00001", user.EmployeeID)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// Unknown roles collapse to USER
	user, err = svc.Create(ctx, &CreateUserInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "secret-password-1",
		Role:     "SUPERUSER",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestUserUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateUserInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret-password-1",
	})
	require.NoError(t, err)

	other, err := svc.Create(ctx, &CreateUserInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "secret-password-1",
	})
	require.NoError(t, err)

	name := "Robert"
	updated, err := svc.Update(ctx, created.ID, &UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, "bob@example.com", updated.Email)

	// Switching to an email another account holds is rejected
	taken := "carol@example.com"
	_, err = svc.Update(ctx, created.ID, &UpdateUserInput{Email: &taken})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// Re-submitting your own email is a no-op, not a conflict
	own := "bob@example.com"
	_, err = svc.Update(ctx, created.ID, &UpdateUserInput{Email: &own})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID+99, &UpdateUserInput{Name: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserDelete_NumberNeverReissued(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	first, err := svc.Create(ctx, &CreateUserInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret-password-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "EMP00001", first.EmployeeID)

	require.NoError(t, svc.Delete(ctx, first.ID))

	_, err = svc.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	second, err := svc.Create(ctx, &CreateUserInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "secret-password-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "EMP00002", second.EmployeeID)
}

func TestUserList(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	for _, u := range []struct{ name, email string }{
		{"Bob", "bob@example.com"},
		{"Carol", "carol@example.com"},
		{"Dave", "dave@example.com"},
	} {
		_, err := svc.Create(ctx, &CreateUserInput{Name: u.name, Email: u.email, Password: "secret-password-1"})
		require.NoError(t, err)
	}

	users, total, err := svc.List(ctx, &pagination.Params{Page: 1, Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, users, 2)

	// Ordered by employee ID
	assert.Equal(t, "EMP00001", users[0].EmployeeID)
	assert.Equal(t, "EMP00002", users[1].EmployeeID)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	authSvc := newAuthService(db)
	svc := NewUserService(repositories.NewUserRepository(db), authSvc)
	ctx := context.Background()

	reg, err := authSvc.Register(ctx, &RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret-password-1",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, reg.User.ID, &ChangePasswordInput{
		OldPassword: "wrong-password-1",
		NewPassword: "secret-password-2",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, reg.User.ID, &ChangePasswordInput{
		OldPassword: "secret-password-1",
		NewPassword: "short",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	err = svc.ChangePassword(ctx, reg.User.ID, &ChangePasswordInput{
		OldPassword: "secret-password-1",
		NewPassword: "secret-password-2",
	})
	require.NoError(t, err)

	// Old sessions are revoked, the new password works
	_, err = authSvc.RefreshToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = authSvc.Login(ctx, &LoginInput{Email: "bob@example.com", Password: "secret-password-2"})
	require.NoError(t, err)
}
