package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// TokenStore remembers issued refresh-token ids. Consume succeeds at most
// once per id, which is what makes rotation single-use.
type TokenStore interface {
	Save(ctx context.Context, jti string, userID uint, expiresAt time.Time) error
	Consume(ctx context.Context, jti string) (bool, error)
}

// DBTokenStore keeps refresh tokens in the refresh_tokens table.
type DBTokenStore struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewDBTokenStore(db *gorm.DB) *DBTokenStore {
	return &DBTokenStore{DB: db, Now: time.Now}
}

func (s *DBTokenStore) Save(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	rt := models.RefreshToken{JTI: jti, UserID: userID, ExpiresAt: expiresAt.UTC()}
	if err := s.DB.WithContext(ctx).Create(&rt).Error; err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *DBTokenStore) Consume(ctx context.Context, jti string) (bool, error) {
	res := s.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("jti = ? AND revoked = ? AND expires_at > ?", jti, false, s.Now().UTC()).
		Update("revoked", true)
	if res.Error != nil {
		return false, fmt.Errorf("failed to revoke refresh token: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// RedisTokenStore keeps refresh tokens as expiring redis keys.
type RedisTokenStore struct {
	Client *redis.Client
	Prefix string
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{Client: client, Prefix: "refresh:"}
}

func (s *RedisTokenStore) Save(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.Client.Set(ctx, s.Prefix+jti, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Consume(ctx context.Context, jti string) (bool, error) {
	n, err := s.Client.Del(ctx, s.Prefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return n == 1, nil
}
