package nats

import (
	"fmt"
	"time"
)

// Stream and subject names
const (
	MailStreamName     = "MAIL_JOBS"
	MailConsumerName   = "MAILER"
	SubjectMailConfirm = "mail.auth.confirm"
	SubjectMailReset   = "mail.auth.reset"

	// Pub/Sub subject สำหรับ event ของ project board: events.project.{project_id}
	SubjectProjectEvents = "events.project"
)

// ═══════════════════════════════════════════════════════════════════════════════
// MailJob - API → Mail Worker (via JetStream)
// ⚠️ โครงสร้างนี้ต้องตรงกับ mail worker
// ═══════════════════════════════════════════════════════════════════════════════
type MailJob struct {
	Kind      string `json:"kind"` // confirm, reset
	Email     string `json:"email"`
	Name      string `json:"name"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"created_at"`
}

// NewMailJob สร้าง MailJob ใหม่
func NewMailJob(kind, email, name, token string) *MailJob {
	return &MailJob{
		Kind:      kind,
		Email:     email,
		Name:      name,
		Token:     token,
		CreatedAt: time.Now().Unix(),
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// BoardEvent - API → API instances (via Pub/Sub) → WebSocket rooms
// ═══════════════════════════════════════════════════════════════════════════════
type BoardEvent struct {
	ProjectID string `json:"project_id"`
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// ProjectSubject subject ของ project หนึ่งตัว
func ProjectSubject(projectID string) string {
	return fmt.Sprintf("%s.%s", SubjectProjectEvents, projectID)
}
