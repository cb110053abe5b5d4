package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProjectRequest struct {
	ProjectName string `json:"projectName" validate:"required" msg:"El Nombre del Proyecto es Obligatorio"`
	ClientName  string `json:"clientName" validate:"required" msg:"El Nombre del Cliente es Obligatorio"`
	Description string `json:"description" validate:"required" msg:"La Descripción del Proyecto es Obligatoria"`
}

type ProjectResponse struct {
	ID          uuid.UUID   `json:"_id"`
	ProjectName string      `json:"projectName"`
	ClientName  string      `json:"clientName"`
	Description string      `json:"description"`
	Slug        string      `json:"slug"`
	Manager     uuid.UUID   `json:"manager"`
	Tasks       []uuid.UUID `json:"tasks"`
	Team        []uuid.UUID `json:"team"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ProjectDetailResponse ใช้กับ GET /projects/:id (tasks ถูก populate)
type ProjectDetailResponse struct {
	ID          uuid.UUID      `json:"_id"`
	ProjectName string         `json:"projectName"`
	ClientName  string         `json:"clientName"`
	Description string         `json:"description"`
	Slug        string         `json:"slug"`
	Manager     uuid.UUID      `json:"manager"`
	Tasks       []TaskResponse `json:"tasks"`
	Team        []uuid.UUID    `json:"team"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
