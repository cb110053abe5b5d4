package services

import (
	"context"

	"github.com/google/uuid"

	"uptask-api/domain/models"
)

type TeamService interface {
	FindMemberByEmail(ctx context.Context, email string) (*models.User, error)
	ListMembers(ctx context.Context, project *models.Project) ([]*models.User, error)
	AddMember(ctx context.Context, project *models.Project, userID uuid.UUID) error
	RemoveMember(ctx context.Context, project *models.Project, userID uuid.UUID) error
}
