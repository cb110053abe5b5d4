package ports

import "context"

// ═══════════════════════════════════════════════════════════════════════════════
// Mailer Port - ส่ง email ยืนยันบัญชี / reset password
// ═══════════════════════════════════════════════════════════════════════════════

// AuthEmail - ข้อมูลที่ template ของ email ต้องใช้
type AuthEmail struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// MailerPort - Interface สำหรับส่ง email (NATS queue หรือ log)
type MailerPort interface {
	// SendConfirmationEmail ส่ง token สำหรับยืนยันบัญชี
	SendConfirmationEmail(ctx context.Context, email AuthEmail) error

	// SendPasswordResetToken ส่ง token สำหรับตั้ง password ใหม่
	SendPasswordResetToken(ctx context.Context, email AuthEmail) error
}
