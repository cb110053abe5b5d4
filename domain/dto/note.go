package dto

import (
	"time"

	"github.com/google/uuid"
)

type NoteRequest struct {
	Content string `json:"content" validate:"required" msg:"El Contenido de la nota es obligatorio"`
}

type NoteResponse struct {
	ID        uuid.UUID     `json:"_id"`
	Content   string        `json:"content"`
	CreatedBy *UserResponse `json:"createdBy"`
	Task      uuid.UUID     `json:"task"`
	CreatedAt time.Time     `json:"createdAt"`
}
