package repositories

import (
	"context"

	"uptask-api/domain/models"
)

// TokenRepository เก็บ token 6 หลัก มีทั้งแบบ Redis (TTL) และแบบ database
type TokenRepository interface {
	Create(ctx context.Context, token *models.Token) error
	// GetByToken ไม่คืน token ที่หมดอายุแล้ว (คืน ErrNotFound)
	GetByToken(ctx context.Context, value string) (*models.Token, error)
	Delete(ctx context.Context, token *models.Token) error
	DeleteExpired(ctx context.Context) (int64, error)
}
