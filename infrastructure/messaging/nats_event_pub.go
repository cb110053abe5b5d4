package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"uptask-api/domain/ports"
	natspkg "uptask-api/infrastructure/nats"
)

// NATSEventPublisher implements EventPublisherPort using NATS Pub/Sub
type NATSEventPublisher struct {
	conn *nats.Conn
}

// NewNATSEventPublisher สร้าง EventPublisherPort adapter สำหรับ NATS
func NewNATSEventPublisher(conn *nats.Conn) ports.EventPublisherPort {
	return &NATSEventPublisher{conn: conn}
}

// Publish ส่ง event ไปที่ events.project.{project_id}
func (p *NATSEventPublisher) Publish(ctx context.Context, event ports.ProjectEvent) error {
	data, err := json.Marshal(natspkg.BoardEvent{
		ProjectID: event.ProjectID.String(),
		Type:      event.Type,
		Data:      event.Data,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal board event: %w", err)
	}

	return p.conn.Publish(natspkg.ProjectSubject(event.ProjectID.String()), data)
}
