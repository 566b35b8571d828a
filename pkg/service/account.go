package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/storefront/pkg/auth"
	"github.com/example/storefront/pkg/models"
)

// TokenIssuer abstracts the bearer-token maker for the account service.
type TokenIssuer interface {
	Issue(userID primitive.ObjectID, role string) (string, error)
}

// AccountService handles registration, login, and profile maintenance.
type AccountService struct {
	users  UserStore
	tokens TokenIssuer
}

func NewAccountService(users UserStore, tokens TokenIssuer) *AccountService {
	return &AccountService{users: users, tokens: tokens}
}

type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the login/register response: the user plus a bearer token.
type AuthResult struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  string             `json:"role"`
	Token string             `json:"token"`
}

func (s *AccountService) Register(ctx context.Context, in Credentials) (*AuthResult, error) {
	if in.Name == "" || in.Email == "" {
		return nil, fmt.Errorf("name and email are required: %w", ErrInvalidRequest)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", ErrInvalidRequest)
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user already exists: %w", ErrInvalidRequest)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.authResult(user)
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.authResult(user)
}

func (s *AccountService) Profile(ctx context.Context, principal auth.Principal) (*models.User, error) {
	user, err := s.users.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return user, nil
}

// UpdateProfileInput carries only the fields to change; nil means keep.
// Changing the password requires the current one.
type UpdateProfileInput struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Bio             *string `json:"bio"`
	Password        *string `json:"password"`
	CurrentPassword *string `json:"current_password"`
}

func (s *AccountService) UpdateProfile(ctx context.Context, principal auth.Principal, in UpdateProfileInput) (*models.User, error) {
	user, err := s.users.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}

	if in.Name != nil && *in.Name != "" {
		user.Name = *in.Name
	}
	if in.Email != nil && *in.Email != "" {
		user.Email = *in.Email
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}

	if in.Password != nil {
		if in.CurrentPassword == nil || !auth.CheckPassword(*in.CurrentPassword, user.PasswordHash) {
			return nil, fmt.Errorf("current password is incorrect: %w", ErrInvalidRequest)
		}
		if len(*in.Password) < 6 {
			return nil, fmt.Errorf("password must be at least 6 characters: %w", ErrInvalidRequest)
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) authResult(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}, nil
}
