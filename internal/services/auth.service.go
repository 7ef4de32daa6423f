package services

import (
	"context"
	"errors"

	"github.com/finbook/bookkeeper/internal/auth"
	"github.com/finbook/bookkeeper/internal/model"
	"github.com/finbook/bookkeeper/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type AuthService struct {
	users  UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, p model.RegisterRequest) (*model.User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &model.User{
		Email:        p.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, model.NewFieldError("email", "A user with that email already exists.")
		}
		return nil, err
	}
	return user, nil
}

// Login never says whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID)
}

func (s *AuthService) Refresh(refreshToken string) (*auth.TokenPair, error) {
	pair, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return pair, nil
}
