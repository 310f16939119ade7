package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/condratcatalina/Afaceri-electronice/internal/hash"
	"github.com/condratcatalina/Afaceri-electronice/internal/logging"
	"github.com/condratcatalina/Afaceri-electronice/internal/models"
	"github.com/condratcatalina/Afaceri-electronice/internal/tokens"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
	SaveRefreshToken(ctx context.Context, token string, userID uint, expiresAt time.Time) error
	FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}

type AuthService struct {
	Repo          UserRepository
	JWTSecret     []byte
	RefreshSecret []byte
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	User         *models.User
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", ErrValidation)
	}

	if _, err := s.Repo.FindUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("user already exists: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", ErrValidation)
	}

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("invalid username or password: %w", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login failed", "reason", "bad password", "username", username)
		return nil, fmt.Errorf("invalid username or password: %w", ErrUnauthorized)
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates the token pair: the presented refresh token is revoked
// and a new pair is issued, so a replayed token dies on first reuse.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
	}

	stored, err := s.Repo.FindRefreshToken(ctx, refreshToken)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("refresh token not found: %w", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if stored.Revoked || time.Now().Unix() > stored.ExpiresAt {
		return nil, fmt.Errorf("refresh token expired or revoked: %w", ErrUnauthorized)
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
	}

	user, err := s.Repo.FindUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, refreshToken)
}

func (s *AuthService) DeleteUser(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("user id is not valid: %w", ErrValidation)
	}
	err := s.Repo.DeleteUser(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return err
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*LoginResult, error) {
	accessExp := time.Now().Add(accessTokenTTL)
	accessToken, err := tokens.SignAccessToken(user.ID, user.Role, s.JWTSecret, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(refreshTokenTTL)
	refreshToken, err := tokens.SignRefreshToken(user.ID, s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SaveRefreshToken(ctx, refreshToken, user.ID, refreshExp); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		User:         user,
	}, nil
}
