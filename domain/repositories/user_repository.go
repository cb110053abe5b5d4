package repositories

import (
	"context"

	"github.com/google/uuid"

	"uptask-api/domain/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs คืน user ตามลำดับของ ids ที่ส่งมา (ตัวที่ไม่มีแล้วจะถูกข้าม)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
