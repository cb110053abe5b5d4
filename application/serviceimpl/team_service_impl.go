package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"uptask-api/domain/dto"
	"uptask-api/domain/models"
	"uptask-api/domain/ports"
	"uptask-api/domain/repositories"
	"uptask-api/domain/services"
	"uptask-api/pkg/logger"
	"uptask-api/pkg/utils"
)

const (
	msgMemberExists  = "El usuario ya existe en el proyecto"
	msgMemberMissing = "El usuario no existe en el proyecto"
)

type TeamServiceImpl struct {
	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
	events      ports.EventPublisherPort
}

func NewTeamService(
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	events ports.EventPublisherPort,
) services.TeamService {
	return &TeamServiceImpl{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		events:      events,
	}
}

func (s *TeamServiceImpl) FindMemberByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, dto.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.ErrNotFound(utils.MsgMemberNotFound)
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return user, nil
}

func (s *TeamServiceImpl) ListMembers(ctx context.Context, project *models.Project) ([]*models.User, error) {
	members, err := s.userRepo.GetByIDs(ctx, project.Team)
	if err != nil {
		return nil, fmt.Errorf("list team: %w", err)
	}
	return members, nil
}

func (s *TeamServiceImpl) AddMember(ctx context.Context, project *models.Project, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.ErrNotFound(utils.MsgMemberNotFound)
		}
		return fmt.Errorf("find member: %w", err)
	}

	team, err := s.projectRepo.ModifyTeam(ctx, project.ID, func(current models.UUIDList) (models.UUIDList, error) {
		if current.Contains(user.ID) {
			return nil, utils.ErrConflict(msgMemberExists)
		}
		return append(current, user.ID), nil
	})
	if err != nil {
		return teamError(err, "add member")
	}
	project.Team = team

	publish(ctx, s.events, project.ID, ports.EventTeamAdded, dto.UserToUserResponse(user))
	logger.InfoContext(ctx, "Team member added", "project_id", project.ID, "member_id", user.ID)
	return nil
}

func (s *TeamServiceImpl) RemoveMember(ctx context.Context, project *models.Project, userID uuid.UUID) error {
	team, err := s.projectRepo.ModifyTeam(ctx, project.ID, func(current models.UUIDList) (models.UUIDList, error) {
		if !current.Contains(userID) {
			return nil, utils.ErrConflict(msgMemberMissing)
		}
		return current.Without(userID), nil
	})
	if err != nil {
		return teamError(err, "remove member")
	}
	project.Team = team

	publish(ctx, s.events, project.ID, ports.EventTeamRemoved, map[string]uuid.UUID{"_id": userID})
	logger.InfoContext(ctx, "Team member removed", "project_id", project.ID, "member_id", userID)
	return nil
}

// teamError AppError (409) ผ่านไปตรงๆ ส่วน project ที่หายไประหว่างทางเป็น 404
func teamError(err error, op string) error {
	if _, ok := utils.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.ErrNotFound(utils.MsgProjectNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
