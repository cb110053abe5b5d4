package serviceimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uptask-api/domain/dto"
	"uptask-api/domain/ports"
	"uptask-api/infrastructure/postgres"
	"uptask-api/pkg/logger"
	"uptask-api/pkg/utils"
)

func TestTeamService_AddAndRemoveMember(t *testing.T) {
	db := newTestDB(t)
	svc := newBoardServices(db)
	ctx := context.Background()
	manager := seedUser(t, db, "manager@test.com")
	member := seedUser(t, db, "member@test.com")

	project, err := svc.projects.CreateProject(ctx, manager.ID, &dto.ProjectRequest{
		ProjectName: "Equipo", ClientName: "Acme", Description: "Colaboración",
	})
	require.NoError(t, err)

	found, err := svc.team.FindMemberByEmail(ctx, "member@test.com")
	require.NoError(t, err)
	assert.Equal(t, member.ID, found.ID)

	_, err = svc.team.FindMemberByEmail(ctx, "nadie@test.com")
	requireAppError(t, err, fiber.StatusNotFound, utils.MsgMemberNotFound)

	require.NoError(t, svc.team.AddMember(ctx, project, member.ID))

	err = svc.team.AddMember(ctx, project, member.ID)
	requireAppError(t, err, fiber.StatusConflict, msgMemberExists)

	err = svc.team.AddMember(ctx, project, uuid.New())
	requireAppError(t, err, fiber.StatusNotFound, utils.MsgMemberNotFound)

	members, err := svc.team.ListMembers(ctx, project)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "member@test.com", members[0].Email)

	// el miembro ahora ve el proyecto
	projects, err := svc.projects.ListProjects(ctx, member.ID)
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	require.NoError(t, svc.team.RemoveMember(ctx, project, member.ID))

	err = svc.team.RemoveMember(ctx, project, member.ID)
	requireAppError(t, err, fiber.StatusConflict, msgMemberMissing)

	projects, err = svc.projects.ListProjects(ctx, member.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)

	assert.Equal(t, []string{ports.EventTeamAdded, ports.EventTeamRemoved}, svc.events.types())
}

func TestTeamService_FindMemberIgnoresCase(t *testing.T) {
	db := newTestDB(t)
	svc := newBoardServices(db)
	member := seedUser(t, db, "b@test.com")

	found, err := svc.team.FindMemberByEmail(context.Background(), "  B@TEST.COM ")
	require.NoError(t, err)
	assert.Equal(t, member.ID, found.ID)
}

func TestTeamService_StaleProjectSnapshots(t *testing.T) {
	db := newTestDB(t)
	svc := newBoardServices(db)
	ctx := context.Background()
	projects := postgres.NewProjectRepository(db)

	manager := seedUser(t, db, "manager@test.com")
	first := seedUser(t, db, "first@test.com")
	second := seedUser(t, db, "second@test.com")

	created, err := svc.projects.CreateProject(ctx, manager.ID, &dto.ProjectRequest{
		ProjectName: "Equipo", ClientName: "Acme", Description: "Colaboración",
	})
	require.NoError(t, err)

	// dos requests que cargaron el proyecto antes de que cualquiera escribiera
	snapshotA, err := projects.GetByID(ctx, created.ID)
	require.NoError(t, err)
	snapshotB, err := projects.GetByID(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.team.AddMember(ctx, snapshotA, first.ID))
	require.NoError(t, svc.team.AddMember(ctx, snapshotB, second.ID))

	stored, err := projects.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsMember(first.ID))
	assert.True(t, stored.IsMember(second.ID))

	// el snapshot A no sabe de second, pero el conflicto se decide con la fila actual
	err = svc.team.AddMember(ctx, snapshotA, second.ID)
	requireAppError(t, err, fiber.StatusConflict, msgMemberExists)
	assert.Len(t, snapshotA.Team, 1)
}

func TestTeamService_LogsMemberSeparatelyFromActor(t *testing.T) {
	db := newTestDB(t)
	svc := newBoardServices(db)
	manager := seedUser(t, db, "manager@test.com")
	member := seedUser(t, db, "member@test.com")

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	ctx := logger.ContextWithUserID(context.Background(), manager.ID.String())
	project, err := svc.projects.CreateProject(ctx, manager.ID, &dto.ProjectRequest{
		ProjectName: "Equipo", ClientName: "Acme", Description: "Colaboración",
	})
	require.NoError(t, err)
	buf.Reset()

	require.NoError(t, svc.team.AddMember(ctx, project, member.ID))

	var line string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.Contains(l, "Team member added") {
			line = l
		}
	}
	require.NotEmpty(t, line)
	assert.Equal(t, 1, strings.Count(line, `"user_id"`), line)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	assert.Equal(t, manager.ID.String(), record["user_id"])
	assert.Equal(t, member.ID.String(), record["member_id"])
}
