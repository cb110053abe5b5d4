package dto

import (
	"time"

	"github.com/google/uuid"
)

type TaskRequest struct {
	Name        string `json:"name" validate:"required" msg:"El Nombre de la tarea es Obligatorio"`
	Description string `json:"description" validate:"required" msg:"La descripción de la tarea es obligatoria"`
}

type TaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending onHold inProgress underReview completed" msg:"El estado es obligatorio"`
}

type TaskResponse struct {
	ID          uuid.UUID   `json:"_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Project     uuid.UUID   `json:"project"`
	Status      string      `json:"status"`
	Notes       []uuid.UUID `json:"notes"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type TaskStatusChangeResponse struct {
	ID        uuid.UUID     `json:"_id"`
	User      *UserResponse `json:"user"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// TaskDetailResponse ใช้กับ GET task เดี่ยว (history + notes ถูก populate)
type TaskDetailResponse struct {
	ID          uuid.UUID                  `json:"_id"`
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Project     uuid.UUID                  `json:"project"`
	Status      string                     `json:"status"`
	CompletedBy []TaskStatusChangeResponse `json:"completedBy"`
	Notes       []NoteResponse             `json:"notes"`
	CreatedAt   time.Time                  `json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
}
