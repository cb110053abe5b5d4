package messaging

import (
	"context"
	"log/slog"

	"uptask-api/domain/ports"
	"uptask-api/pkg/logger"
)

// LogMailer - Mailer ที่ไม่ส่งอะไรเลย แค่ log (ใช้ตอนไม่มี NATS)
// รหัสถูก log ใต้ key "code" (ไม่โดน redact) เพื่อให้ยืนยันบัญชีตอน dev ได้
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer() ports.MailerPort {
	return &LogMailer{
		logger: logger.Component("log_mailer"),
	}
}

func (m *LogMailer) SendConfirmationEmail(ctx context.Context, email ports.AuthEmail) error {
	m.logger.InfoContext(ctx, "Confirmation email (noop)",
		"email", email.Email,
		"name", email.Name,
		"code", email.Token,
	)
	return nil
}

func (m *LogMailer) SendPasswordResetToken(ctx context.Context, email ports.AuthEmail) error {
	m.logger.InfoContext(ctx, "Password reset email (noop)",
		"email", email.Email,
		"name", email.Name,
		"code", email.Token,
	)
	return nil
}
