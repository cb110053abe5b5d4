package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"uptask-api/domain/dto"
	"uptask-api/domain/models"
	"uptask-api/domain/ports"
	"uptask-api/domain/repositories"
	"uptask-api/domain/services"
	"uptask-api/pkg/logger"
	"uptask-api/pkg/utils"
)

const (
	msgUserExists          = "El Usuario ya esta registrado"
	msgUserNotRegistered   = "El Usuario no esta registrado"
	msgAlreadyConfirmed    = "El Usuario ya esta confirmado"
	msgNotConfirmed        = "La cuenta no ha sido confirmada, hemos enviado un e-mail de confirmación"
	msgWrongPassword       = "Password Incorrecto"
	msgEmailTaken          = "Ese email ya esta registrado"
	msgWrongCurrentPass    = "El Password actual es incorrecto"
	msgWrongPasswordVerify = "El Password es incorrecto"
)

const maxTokenAttempts = 5

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
	mailer    ports.MailerPort
	jwtSecret string
	jwtTTL    time.Duration
	tokenTTL  time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	mailer ports.MailerPort,
	jwtSecret string,
	jwtTTL time.Duration,
	tokenTTL time.Duration,
) services.AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
		tokenTTL:  tokenTTL,
	}
}

func (s *AuthServiceImpl) CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) error {
	email := dto.NormalizeEmail(req.Email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		logger.WarnContext(ctx, "Email already registered", "email", email)
		return utils.ErrConflict(msgUserExists)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    email,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return err
	}
	s.sendConfirmation(ctx, user, token)

	logger.InfoContext(ctx, "Account created", "user_id", user.ID, "email", user.Email)
	return nil
}

func (s *AuthServiceImpl) ConfirmAccount(ctx context.Context, tokenValue string) error {
	token, err := s.findToken(ctx, tokenValue)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.ErrNotFound(utils.MsgInvalidToken)
		}
		return fmt.Errorf("find token owner: %w", err)
	}

	user.Confirmed = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("confirm user: %w", err)
	}
	if err := s.tokenRepo.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}

	logger.InfoContext(ctx, "Account confirmed", "user_id", user.ID)
	return nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	user, err := s.findUserByEmail(ctx, req.Email, utils.MsgUserNotFound)
	if err != nil {
		return "", err
	}

	// บัญชีที่ยังไม่ยืนยันจะได้ token ใหม่ทุกครั้งที่พยายาม login ไม่ว่า password จะถูกหรือไม่
	if !user.Confirmed {
		token, err := s.issueToken(ctx, user.ID)
		if err != nil {
			return "", err
		}
		s.sendConfirmation(ctx, user, token)

		logger.WarnContext(ctx, "Login failed - account not confirmed", "user_id", user.ID)
		return "", utils.ErrUnauthorized(msgNotConfirmed)
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		logger.WarnContext(ctx, "Login failed - invalid password", "user_id", user.ID)
		return "", utils.ErrUnauthorized(msgWrongPassword)
	}

	jwtToken, err := utils.GenerateJWT(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", fmt.Errorf("generate jwt: %w", err)
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return jwtToken, nil
}

func (s *AuthServiceImpl) RequestConfirmationCode(ctx context.Context, email string) error {
	user, err := s.findUserByEmail(ctx, email, msgUserNotRegistered)
	if err != nil {
		return err
	}

	if user.Confirmed {
		return utils.ErrForbidden(msgAlreadyConfirmed)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return err
	}
	s.sendConfirmation(ctx, user, token)
	return nil
}

func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.findUserByEmail(ctx, email, msgUserNotRegistered)
	if err != nil {
		return err
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return err
	}

	mail := ports.AuthEmail{Email: user.Email, Name: user.Name, Token: token.Token}
	if err := s.mailer.SendPasswordResetToken(ctx, mail); err != nil {
		logger.ErrorContext(ctx, "Failed to send password reset email", "user_id", user.ID, "error", err)
	}
	return nil
}

func (s *AuthServiceImpl) ValidateToken(ctx context.Context, tokenValue string) error {
	_, err := s.findToken(ctx, tokenValue)
	return err
}

func (s *AuthServiceImpl) UpdatePasswordWithToken(ctx context.Context, tokenValue string, req *dto.NewPasswordRequest) error {
	token, err := s.findToken(ctx, tokenValue)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.ErrNotFound(utils.MsgInvalidToken)
		}
		return fmt.Errorf("find token owner: %w", err)
	}

	if user.Password, err = utils.HashPassword(req.Password); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.tokenRepo.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}

	logger.InfoContext(ctx, "Password reset with token", "user_id", user.ID)
	return nil
}

func (s *AuthServiceImpl) Authenticate(ctx context.Context, jwtToken string) (*models.User, error) {
	userID, err := utils.ParseJWT(jwtToken, s.jwtSecret)
	if err != nil {
		logger.WarnContext(ctx, "JWT verification failed", "error", err)
		return nil, utils.ErrInvalidJWT()
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.ErrInvalidJWT()
		}
		return nil, fmt.Errorf("load authenticated user: %w", err)
	}
	return user, nil
}

func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	email := dto.NormalizeEmail(req.Email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil && existing.ID != user.ID {
		return utils.ErrConflict(msgEmailTaken)
	}

	user.Name = req.Name
	user.Email = email
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	logger.InfoContext(ctx, "Profile updated")
	return nil
}

func (s *AuthServiceImpl) UpdateCurrentPassword(ctx context.Context, userID uuid.UUID, req *dto.UpdateCurrentPasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	if !utils.CheckPassword(req.CurrentPassword, user.Password) {
		return utils.ErrUnauthorized(msgWrongCurrentPass)
	}

	if user.Password, err = utils.HashPassword(req.Password); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	logger.InfoContext(ctx, "Password changed")
	return nil
}

func (s *AuthServiceImpl) CheckPassword(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	if !utils.CheckPassword(password, user.Password) {
		return utils.ErrUnauthorized(msgWrongPasswordVerify)
	}
	return nil
}

func (s *AuthServiceImpl) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokenRepo.DeleteExpired(ctx)
}

// ========== helpers ==========

func (s *AuthServiceImpl) findUserByEmail(ctx context.Context, email, notFoundMsg string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, dto.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.ErrNotFound(notFoundMsg)
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

func (s *AuthServiceImpl) findToken(ctx context.Context, value string) (*models.Token, error) {
	token, err := s.tokenRepo.GetByToken(ctx, value)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.ErrNotFound(utils.MsgInvalidToken)
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return token, nil
}

// issueToken สุ่มรหัสใหม่เมื่อชนกับ token ที่ยังใช้งานอยู่ สูงสุด maxTokenAttempts ครั้ง
func (s *AuthServiceImpl) issueToken(ctx context.Context, userID uuid.UUID) (*models.Token, error) {
	for attempt := 1; ; attempt++ {
		value, err := utils.GenerateToken()
		if err != nil {
			return nil, fmt.Errorf("generate token: %w", err)
		}

		token := &models.Token{
			Token:     value,
			UserID:    userID,
			ExpiresAt: time.Now().UTC().Add(s.tokenTTL),
		}
		err = s.tokenRepo.Create(ctx, token)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, repositories.ErrTokenCollision) || attempt == maxTokenAttempts {
			return nil, fmt.Errorf("create token: %w", err)
		}
		logger.WarnContext(ctx, "Token collision, regenerating", "attempt", attempt)
	}
}

// sendConfirmation ส่งแบบ fire-and-forget: mail ล้มเหลวไม่ทำให้ request ล้ม
func (s *AuthServiceImpl) sendConfirmation(ctx context.Context, user *models.User, token *models.Token) {
	mail := ports.AuthEmail{Email: user.Email, Name: user.Name, Token: token.Token}
	if err := s.mailer.SendConfirmationEmail(ctx, mail); err != nil {
		logger.ErrorContext(ctx, "Failed to send confirmation email", "user_id", user.ID, "error", err)
	}
}
