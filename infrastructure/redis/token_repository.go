package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"uptask-api/domain/models"
	"uptask-api/domain/repositories"
)

const tokenKeyPrefix = "uptask:token:"

// storedToken รูปแบบ JSON ที่เก็บใน value ของ key
type storedToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenRepository token 6 หลักเป็น key, Redis TTL = อายุของ token
type TokenRepository struct {
	client *Client
}

func NewTokenRepository(client *Client) repositories.TokenRepository {
	return &TokenRepository{client: client}
}

func tokenKey(value string) string {
	return tokenKeyPrefix + value
}

// Create ใช้ SET NX: ถ้ารหัสชนกับ token ที่ยังไม่หมดอายุคืน ErrTokenCollision
func (r *TokenRepository) Create(ctx context.Context, token *models.Token) error {
	now := time.Now().UTC()
	ttl := token.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return fmt.Errorf("token %s already expired", token.Token)
	}

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = now

	payload, err := json.Marshal(storedToken{
		ID:        token.ID,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	})
	if err != nil {
		return err
	}

	ok, err := r.client.rdb.SetNX(ctx, tokenKey(token.Token), payload, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		r.client.log.Warn("Token collision", "user_id", token.UserID)
		return repositories.ErrTokenCollision
	}
	return nil
}

func (r *TokenRepository) GetByToken(ctx context.Context, value string) (*models.Token, error) {
	raw, err := r.client.rdb.Get(ctx, tokenKey(value)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var stored storedToken
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	token := &models.Token{
		ID:        stored.ID,
		Token:     value,
		UserID:    stored.UserID,
		ExpiresAt: stored.ExpiresAt,
		CreatedAt: stored.CreatedAt,
	}
	// TTL ของ Redis ละเอียดระดับ ms จึงเช็ค ExpiresAt ซ้ำ
	if token.IsExpired(time.Now()) {
		return nil, repositories.ErrNotFound
	}
	return token, nil
}

func (r *TokenRepository) Delete(ctx context.Context, token *models.Token) error {
	return r.client.rdb.Del(ctx, tokenKey(token.Token)).Err()
}

// DeleteExpired Redis ลบ key ที่หมด TTL เอง
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
