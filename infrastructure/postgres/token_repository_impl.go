package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"uptask-api/domain/models"
	"uptask-api/domain/repositories"
)

// TokenRepositoryImpl ใช้เมื่อไม่มี Redis (expiry ดูจาก expires_at)
type TokenRepositoryImpl struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) repositories.TokenRepository {
	return &TokenRepositoryImpl{db: db}
}

// Create ไม่ยอมให้มีรหัสซ้ำกันระหว่าง token ที่ยังไม่หมดอายุ (GetByToken หาด้วยรหัสอย่างเดียว)
func (r *TokenRepositoryImpl) Create(ctx context.Context, token *models.Token) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&models.Token{}).
			Where("token = ? AND expires_at > ?", token.Token, time.Now().UTC()).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return repositories.ErrTokenCollision
		}
		return tx.Omit("User").Create(token).Error
	})
}

func (r *TokenRepositoryImpl) GetByToken(ctx context.Context, value string) (*models.Token, error) {
	var token models.Token
	err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", value, time.Now().UTC()).
		Order("created_at DESC").
		First(&token).Error
	if err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

func (r *TokenRepositoryImpl) Delete(ctx context.Context, token *models.Token) error {
	return r.db.WithContext(ctx).Where("id = ?", token.ID).Delete(&models.Token{}).Error
}

func (r *TokenRepositoryImpl) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now().UTC()).
		Delete(&models.Token{})
	return result.RowsAffected, result.Error
}
