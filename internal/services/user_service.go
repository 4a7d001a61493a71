package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"maintdesk/internal/authz"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

type UserService interface {
	CreateUser(ctx context.Context, user *models.User, plainPassword string) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, patch UserUpdate) (*models.User, error)

	// Authenticate checks credentials and the active gate; inactive
	// accounts cannot log in.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// UserUpdate carries the fields an admin PATCH may change.
type UserUpdate struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Role           *string `json:"role"`
	Active         *bool   `json:"active"`
	Password       *string `json:"password"`
	TelegramChatID *int64  `json:"telegram_chat_id"`
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) CreateUser(ctx context.Context, user *models.User, plainPassword string) error {
	switch {
	case strings.TrimSpace(user.Name) == "":
		return fmt.Errorf("name is required: %w", ErrValidation)
	case strings.TrimSpace(user.Email) == "":
		return fmt.Errorf("email is required: %w", ErrValidation)
	case strings.TrimSpace(plainPassword) == "":
		return fmt.Errorf("password is required: %w", ErrValidation)
	}
	if !authz.IsKnownRole(user.Role) {
		return fmt.Errorf("unknown role %q: %w", user.Role, ErrValidation)
	}

	existing, err := s.repo.GetByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("email %q already registered: %w", user.Email, ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.CreatedAt = time.Now()
	return s.repo.Create(ctx, user)
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, id int64, patch UserUpdate) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Role != nil {
		if !authz.IsKnownRole(*patch.Role) {
			return nil, fmt.Errorf("unknown role %q: %w", *patch.Role, ErrValidation)
		}
		user.Role = *patch.Role
	}
	if patch.Active != nil {
		user.Active = *patch.Active
	}
	if patch.TelegramChatID != nil {
		user.TelegramChatID = patch.TelegramChatID
	}
	if patch.Password != nil {
		if strings.TrimSpace(*patch.Password) == "" {
			return nil, fmt.Errorf("password must not be empty: %w", ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}
