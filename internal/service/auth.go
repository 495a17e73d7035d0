package service

import (
	"context"
	"errors"
	"time"

	"github.com/taskdock/taskdock-go/internal/crypto"
	"github.com/taskdock/taskdock-go/internal/model"
	"github.com/taskdock/taskdock-go/internal/repository"
)

var (
	ErrUnknownUser     = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserExists      = errors.New("user already exists")
	ErrFieldsRequired  = errors.New("user id, password, email and mobile are required")
)

// UserStore is the persistence surface the auth service depends on.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUserID(ctx context.Context, userID string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// AuthService handles registration, login and user listing.
type AuthService struct {
	store     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account. The raw password is hashed before
// anything is stored; a clash on any of the unique fields (user id,
// email, mobile) rejects the registration rather than merging it.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) error {
	if req.UserID == "" || req.Password == "" || req.Email == "" || req.Mobile == "" {
		return ErrFieldsRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		UserID:       req.UserID,
		UserName:     req.UserName,
		PasswordHash: hash,
		Email:        req.Email,
		Mobile:       req.Mobile,
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return ErrUserExists
		}
		return err
	}

	return nil
}

// Login verifies the credentials and issues a session token. An unknown
// user and a wrong password are reported separately so the transport can
// map them to distinct statuses.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	user, err := s.store.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenResponse{}, ErrUnknownUser
		}
		return model.TokenResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if !match {
		return model.TokenResponse{}, ErrInvalidPassword
	}

	token, err := crypto.GenerateToken(user.UserID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{Token: token}, nil
}

// ListUsers returns all registered users without their password hashes.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserResponse, len(users))
	for i, u := range users {
		result[i] = model.UserResponse{
			UserID:    u.UserID,
			UserName:  u.UserName,
			Email:     u.Email,
			Mobile:    u.Mobile,
			CreatedAt: u.CreatedAt,
		}
	}
	return result, nil
}
