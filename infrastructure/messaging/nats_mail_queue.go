package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"uptask-api/domain/ports"
	natspkg "uptask-api/infrastructure/nats"
	"uptask-api/pkg/logger"
)

// NATSMailQueue implements MailerPort โดยส่ง job เข้า JetStream ให้ mail worker
type NATSMailQueue struct {
	js jetstream.JetStream
}

// NewNATSMailQueue สร้าง MailerPort adapter สำหรับ NATS JetStream
func NewNATSMailQueue(js jetstream.JetStream) ports.MailerPort {
	return &NATSMailQueue{js: js}
}

func (q *NATSMailQueue) SendConfirmationEmail(ctx context.Context, email ports.AuthEmail) error {
	return q.publish(ctx, natspkg.SubjectMailConfirm, natspkg.NewMailJob("confirm", email.Email, email.Name, email.Token))
}

func (q *NATSMailQueue) SendPasswordResetToken(ctx context.Context, email ports.AuthEmail) error {
	return q.publish(ctx, natspkg.SubjectMailReset, natspkg.NewMailJob("reset", email.Email, email.Name, email.Token))
}

func (q *NATSMailQueue) publish(ctx context.Context, subject string, job *natspkg.MailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal mail job: %w", err)
	}

	ack, err := q.js.Publish(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish mail job: %w", err)
	}

	logger.InfoContext(ctx, "Mail job published to JetStream",
		"subject", subject,
		"email", job.Email,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
	)
	return nil
}
