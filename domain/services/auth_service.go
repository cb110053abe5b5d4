package services

import (
	"context"

	"github.com/google/uuid"

	"uptask-api/domain/dto"
	"uptask-api/domain/models"
)

type AuthService interface {
	CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) error
	ConfirmAccount(ctx context.Context, token string) error
	// Login คืน JWT เมื่อบัญชียืนยันแล้วและ password ถูก
	Login(ctx context.Context, req *dto.LoginRequest) (string, error)
	RequestConfirmationCode(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ValidateToken(ctx context.Context, token string) error
	UpdatePasswordWithToken(ctx context.Context, token string, req *dto.NewPasswordRequest) error

	// Authenticate ตรวจ bearer JWT และโหลด user ที่อ้างถึง
	Authenticate(ctx context.Context, jwtToken string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) error
	UpdateCurrentPassword(ctx context.Context, userID uuid.UUID, req *dto.UpdateCurrentPasswordRequest) error
	CheckPassword(ctx context.Context, userID uuid.UUID, password string) error

	// PurgeExpiredTokens ถูกเรียกจาก scheduler
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}
