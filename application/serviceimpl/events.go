package serviceimpl

import (
	"context"

	"github.com/google/uuid"

	"uptask-api/domain/ports"
	"uptask-api/pkg/logger"
)

// publish ส่ง board event แบบ fire-and-forget (error แค่ log)
func publish(ctx context.Context, events ports.EventPublisherPort, projectID uuid.UUID, eventType string, data any) {
	if events == nil {
		return
	}
	err := events.Publish(ctx, ports.ProjectEvent{
		ProjectID: projectID,
		Type:      eventType,
		Data:      data,
	})
	if err != nil {
		logger.WarnContext(ctx, "Failed to publish board event",
			"project_id", projectID,
			"type", eventType,
			"error", err,
		)
	}
}
