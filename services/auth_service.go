package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims is the payload of both token kinds.
type Claims struct {
	UserID    uint        `json:"user_id"`
	Role      models.Role `json:"role,omitempty"`
	TokenType string      `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AuthService struct {
	Users      *UserService
	Store      TokenStore
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

func NewAuthService(users *UserService, store TokenStore, secret string, accessTTL, refreshTTL time.Duration) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 60 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		Users:      users,
		Store:      store,
		Secret:     []byte(secret),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		Now:        time.Now,
	}
}

// Login verifies credentials and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	if username == "" || password == "" {
		return nil, invalid("username and password are required")
	}
	user, err := s.Users.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// consumed, so replaying it fails.
func (s *AuthService) Refresh(ctx context.Context, refresh string) (*TokenPair, error) {
	claims, err := s.parse(refresh, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	ok, err := s.Store.Consume(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidToken
	}
	user, err := s.Users.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}
	return s.issue(ctx, user)
}

// ParseAccess validates an access token and returns its claims.
func (s *AuthService) ParseAccess(token string) (*Claims, error) {
	return s.parse(token, tokenTypeAccess)
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*TokenPair, error) {
	now := s.Now()

	access, err := s.sign(Claims{
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.AccessTTL)),
		},
	})
	if err != nil {
		return nil, err
	}

	jti := uuid.NewString()
	refreshExp := now.Add(s.RefreshTTL)
	refresh, err := s.sign(Claims{
		UserID:    user.ID,
		TokenType: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExp),
		},
	})
	if err != nil {
		return nil, err
	}
	if err := s.Store.Save(ctx, jti, user.ID, refreshExp); err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parse(raw, tokenType string) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.Now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
