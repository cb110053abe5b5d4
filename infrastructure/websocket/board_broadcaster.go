package websocket

import (
	"context"

	"github.com/google/uuid"

	"uptask-api/domain/ports"
	natspkg "uptask-api/infrastructure/nats"
	"uptask-api/pkg/logger"
)

// BoardBroadcaster รับ event จาก NATS แล้ว broadcast ไปยัง room ของ project
type BoardBroadcaster struct {
	subscriber *natspkg.Subscriber
	manager    *WebSocketManager
}

// NewBoardBroadcaster สร้าง BoardBroadcaster ใหม่
func NewBoardBroadcaster(subscriber *natspkg.Subscriber, manager *WebSocketManager) *BoardBroadcaster {
	return &BoardBroadcaster{
		subscriber: subscriber,
		manager:    manager,
	}
}

// Start เริ่ม broadcaster
func (b *BoardBroadcaster) Start() error {
	b.subscriber.OnEvent(b.handleEvent)
	if err := b.subscriber.Start(); err != nil {
		return err
	}
	logger.Info("Board broadcaster started")
	return nil
}

// Stop หยุด broadcaster
func (b *BoardBroadcaster) Stop() error {
	return b.subscriber.Stop()
}

func (b *BoardBroadcaster) handleEvent(event *natspkg.BoardEvent) {
	projectID, err := uuid.Parse(event.ProjectID)
	if err != nil {
		logger.Warn("Invalid board event received", "project_id", event.ProjectID)
		return
	}
	b.manager.BroadcastToRoom(ProjectRoom(projectID), event.Type, event.Data)
}

// LocalEventPublisher implements EventPublisherPort โดย broadcast ตรง (ใช้ตอนไม่มี NATS)
type LocalEventPublisher struct {
	manager *WebSocketManager
}

func NewLocalEventPublisher(manager *WebSocketManager) ports.EventPublisherPort {
	return &LocalEventPublisher{manager: manager}
}

func (p *LocalEventPublisher) Publish(ctx context.Context, event ports.ProjectEvent) error {
	p.manager.BroadcastToRoom(ProjectRoom(event.ProjectID), event.Type, event.Data)
	return nil
}
