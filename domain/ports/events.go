package ports

import (
	"context"

	"github.com/google/uuid"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Event Publisher Port - แจ้งการเปลี่ยนแปลงของ project board
// ═══════════════════════════════════════════════════════════════════════════════

const (
	EventTaskCreated    = "task.created"
	EventTaskUpdated    = "task.updated"
	EventTaskStatus     = "task.status"
	EventTaskDeleted    = "task.deleted"
	EventNoteCreated    = "note.created"
	EventNoteDeleted    = "note.deleted"
	EventTeamAdded      = "team.added"
	EventTeamRemoved    = "team.removed"
	EventProjectDeleted = "project.deleted"
)

// ProjectEvent - Plain struct (ไม่มี NATS dependency)
type ProjectEvent struct {
	ProjectID uuid.UUID `json:"projectId"`
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
}

// EventPublisherPort - Interface สำหรับส่ง event ไปยัง client ที่เปิด board อยู่
type EventPublisherPort interface {
	Publish(ctx context.Context, event ProjectEvent) error
}
