package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maastudio/storefront/internal/hash"
	"github.com/maastudio/storefront/internal/models"
	"github.com/maastudio/storefront/internal/repo"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrValidation)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || password == "" || email == "" {
		return nil, fmt.Errorf("%w: username, email and password required", ErrValidation)
	}

	if _, err := s.Repo.FindUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	h, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(h),
		Role:         "user",
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, string, *models.User, error) {
	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", "", nil, ErrInvalidCredentials
	}

	access, err := s.signAccessToken(user.ID, user.Role)
	if err != nil {
		return "", "", nil, err
	}
	refresh, err := s.issueRefreshToken(ctx, user.ID, user.Role)
	if err != nil {
		return "", "", nil, err
	}
	return access, refresh, user, nil
}

// Rotate exchanges a valid refresh token for a fresh pair, revoking the old one.
func (s *AuthService) Rotate(ctx context.Context, rawRefresh string) (string, string, error) {
	claims, err := s.parseToken(rawRefresh, s.RefreshSecret)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	stored, err := s.Repo.FindRefreshToken(ctx, rawRefresh)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A well-signed token we no longer recognize means it was already
			// rotated: someone is replaying it. Kill the whole family.
			_ = s.Repo.RevokeUserRefreshTokens(ctx, userID)
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if time.Now().After(stored.ExpiresAt) {
		return "", "", ErrInvalidCredentials
	}

	if err := s.Repo.RevokeRefreshToken(ctx, rawRefresh); err != nil {
		return "", "", err
	}

	access, err := s.signAccessToken(userID, role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.issueRefreshToken(ctx, userID, role)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *AuthService) Logout(ctx context.Context, rawRefresh string) error {
	return s.Repo.RevokeRefreshToken(ctx, rawRefresh)
}

func (s *AuthService) signAccessToken(userID uuid.UUID, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  time.Now().Add(AccessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
}

func (s *AuthService) issueRefreshToken(ctx context.Context, userID uuid.UUID, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"jti":  uuid.NewString(),
		"exp":  time.Now().Add(RefreshTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.RefreshSecret)
	if err != nil {
		return "", err
	}
	rec := &models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(RefreshTokenTTL),
	}
	if err := s.Repo.SaveRefreshToken(ctx, rec); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) parseToken(raw string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}
