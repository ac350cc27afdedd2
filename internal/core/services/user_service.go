package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"
	"assetdesk/internal/core/domain"
	"assetdesk/internal/pkg/pagination"
	"assetdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
	authSvc  *AuthService
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, authSvc *AuthService) *UserService {
	return &UserService{
		userRepo: userRepo,
		authSvc:  authSvc,
	}
}

// CreateUserInput represents admin user creation input
type CreateUserInput struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role"`
	Department   string `json:"department"`
	DepartmentID *uint  `json:"department_id"`
	LocationID   *uint  `json:"location_id"`
}

// UpdateUserInput represents user update input, nil fields are unchanged
type UpdateUserInput struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Role         *string `json:"role"`
	Department   *string `json:"department"`
	DepartmentID *uint   `json:"department_id"`
	LocationID   *uint   `json:"location_id"`
	IsActive     *bool   `json:"is_active"`
}

// ChangePasswordInput represents password change input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Create creates a user account on behalf of an admin
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	if !password.Validate(input.Password) {
		return nil, domain.ErrInvalidPassword
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	employeeID, err := s.authSvc.NextEmployeeID(ctx)
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if input.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}

	user := &models.User{
		EmployeeID:   employeeID,
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		Password:     hashedPassword,
		Role:         role,
		Department:   input.Department,
		DepartmentID: input.DepartmentID,
		LocationID:   input.LocationID,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User created: %s (%s)", user.Name, user.EmployeeID)
	return user.ToResponse(), nil
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// GetByEmployeeID gets a user by employee ID
func (s *UserService) GetByEmployeeID(ctx context.Context, employeeID string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, params *pagination.Params) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}

	return responses, total, nil
}

// Update applies non-nil fields to a user
func (s *UserService) Update(ctx context.Context, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		email := strings.ToLower(*input.Email)
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrUserAlreadyExists
			}
			user.Email = email
		}
	}
	if input.Role != nil && (*input.Role == models.RoleAdmin || *input.Role == models.RoleUser) {
		user.Role = *input.Role
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.DepartmentID != nil {
		user.DepartmentID = input.DepartmentID
	}
	if input.LocationID != nil {
		user.LocationID = input.LocationID
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User updated: %s", user.EmployeeID)
	return user.ToResponse(), nil
}

// Delete soft deletes a user and revokes their sessions. The employee ID
// stays consumed; the next registration still gets a fresh number.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.authSvc.LogoutAll(ctx, id); err != nil {
		log.Printf("⚠️ Warning: failed to revoke sessions for deleted user %s: %v", user.EmployeeID, err)
	}

	log.Printf("✅ User deleted: %s", user.EmployeeID)
	return nil
}

// ChangePassword verifies the old password and sets a new one
func (s *UserService) ChangePassword(ctx context.Context, id uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return ErrInvalidCredentials
	}

	if !password.Validate(input.NewPassword) {
		return domain.ErrInvalidPassword
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// Force re-login everywhere after a password change
	if err := s.authSvc.LogoutAll(ctx, id); err != nil {
		log.Printf("⚠️ Warning: failed to revoke sessions after password change: %v", err)
	}

	log.Printf("✅ Password changed for user: %s", user.EmployeeID)
	return nil
}
