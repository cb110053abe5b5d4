package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"uptask-api/domain/models"
	"uptask-api/domain/repositories"
)

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "User " + email, Email: email, Password: "hash"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedProject(t *testing.T, db *gorm.DB, manager *models.User) *models.Project {
	t.Helper()
	project := &models.Project{
		ProjectName: "Tienda",
		ClientName:  "Cliente",
		Description: "Proyecto de prueba",
		ManagerID:   manager.ID,
	}
	require.NoError(t, NewProjectRepository(db).Create(context.Background(), project))
	return project
}

func TestUserRepository_GetByIDsKeepsOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	a := seedUser(t, db, "a@test.com")
	b := seedUser(t, db, "b@test.com")
	c := seedUser(t, db, "c@test.com")

	users, err := repo.GetByIDs(ctx, []uuid.UUID{c.ID, a.ID, uuid.New(), b.ID})
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, c.ID, users[0].ID)
	assert.Equal(t, a.ID, users[1].ID)
	assert.Equal(t, b.ID, users[2].ID)

	_, err = repo.GetByEmail(ctx, "missing@test.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProjectRepository_ListForUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	manager := seedUser(t, db, "manager@test.com")
	member := seedUser(t, db, "member@test.com")
	outsider := seedUser(t, db, "outsider@test.com")

	project := seedProject(t, db, manager)
	_, err := repo.ModifyTeam(ctx, project.ID, func(team models.UUIDList) (models.UUIDList, error) {
		return append(team, member.ID), nil
	})
	require.NoError(t, err)

	for _, tt := range []struct {
		name  string
		user  uuid.UUID
		count int
	}{
		{"manager", manager.ID, 1},
		{"team member", member.ID, 1},
		{"outsider", outsider.ID, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			projects, err := repo.ListForUser(ctx, tt.user)
			require.NoError(t, err)
			assert.Len(t, projects, tt.count)
		})
	}

	stored, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsMember(member.ID))
	assert.False(t, stored.IsManager(member.ID))
}

func TestProjectRepository_ModifyTeamReadsCurrentRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	manager := seedUser(t, db, "manager@test.com")
	first := seedUser(t, db, "first@test.com")
	second := seedUser(t, db, "second@test.com")
	project := seedProject(t, db, manager)

	add := func(id uuid.UUID) func(models.UUIDList) (models.UUIDList, error) {
		return func(team models.UUIDList) (models.UUIDList, error) {
			return append(team, id), nil
		}
	}

	// ทั้งสองครั้งเริ่มจาก snapshot ที่ team ว่าง แต่ ModifyTeam อ่านค่าจาก DB จึงไม่ทับกัน
	_, err := repo.ModifyTeam(ctx, project.ID, add(first.ID))
	require.NoError(t, err)
	team, err := repo.ModifyTeam(ctx, project.ID, add(second.ID))
	require.NoError(t, err)
	assert.Equal(t, models.UUIDList{first.ID, second.ID}, team)

	rejected := errors.New("rejected")
	_, err = repo.ModifyTeam(ctx, project.ID, func(models.UUIDList) (models.UUIDList, error) {
		return nil, rejected
	})
	assert.ErrorIs(t, err, rejected)

	stored, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UUIDList{first.ID, second.ID}, stored.Team)

	_, err = repo.ModifyTeam(ctx, uuid.New(), add(first.ID))
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestTaskRepository_CreateAndDeleteMaintainProjectTasks(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tasks := NewTaskRepository(db)
	projects := NewProjectRepository(db)

	manager := seedUser(t, db, "manager@test.com")
	project := seedProject(t, db, manager)

	first := &models.Task{Name: "Login", Description: "Pantalla de login", ProjectID: project.ID}
	second := &models.Task{Name: "Registro", Description: "Pantalla de registro", ProjectID: project.ID}
	require.NoError(t, tasks.CreateInProject(ctx, first))
	require.NoError(t, tasks.CreateInProject(ctx, second))
	assert.Equal(t, models.TaskStatusPending, first.Status)

	stored, err := projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UUIDList{first.ID, second.ID}, stored.Tasks)

	require.NoError(t, tasks.DeleteFromProject(ctx, first))

	stored, err = projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UUIDList{second.ID}, stored.Tasks)

	_, err = tasks.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestTaskRepository_CreateInMissingProject(t *testing.T) {
	db := newTestDB(t)

	err := NewTaskRepository(db).CreateInProject(context.Background(), &models.Task{
		Name:        "Huérfana",
		Description: "Sin proyecto",
		ProjectID:   uuid.New(),
	})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestTaskRepository_UpdateStatusRecordsHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tasks := NewTaskRepository(db)

	manager := seedUser(t, db, "manager@test.com")
	project := seedProject(t, db, manager)
	task := &models.Task{Name: "Deploy", Description: "Subir a producción", ProjectID: project.ID}
	require.NoError(t, tasks.CreateInProject(ctx, task))

	for _, status := range []models.TaskStatus{models.TaskStatusInProgress, models.TaskStatusCompleted} {
		task.Status = status
		require.NoError(t, tasks.UpdateStatus(ctx, task, &models.TaskStatusChange{
			TaskID: task.ID,
			UserID: manager.ID,
			Status: status,
		}))
	}

	detail, err := tasks.GetDetail(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, detail.Status)
	require.Len(t, detail.CompletedBy, 2)
	assert.Equal(t, models.TaskStatusInProgress, detail.CompletedBy[0].Status)
	require.NotNil(t, detail.CompletedBy[1].User)
	assert.Equal(t, manager.Email, detail.CompletedBy[1].User.Email)
}

func TestNoteRepository_CreateAndDeleteMaintainTaskNotes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tasks := NewTaskRepository(db)
	notes := NewNoteRepository(db)

	author := seedUser(t, db, "author@test.com")
	project := seedProject(t, db, author)
	task := &models.Task{Name: "API", Description: "Endpoints", ProjectID: project.ID}
	require.NoError(t, tasks.CreateInProject(ctx, task))

	note := &models.Note{Content: "Revisar validaciones", CreatedBy: author.ID, TaskID: task.ID}
	require.NoError(t, notes.CreateForTask(ctx, note))

	stored, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UUIDList{note.ID}, stored.Notes)

	list, err := notes.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Author)
	assert.Equal(t, author.Name, list[0].Author.Name)

	require.NoError(t, notes.DeleteFromTask(ctx, note))

	stored, err = tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Notes)

	_, err = notes.GetByID(ctx, note.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProjectRepository_DeleteCascade(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	projects := NewProjectRepository(db)
	tasks := NewTaskRepository(db)
	notes := NewNoteRepository(db)

	manager := seedUser(t, db, "manager@test.com")
	project := seedProject(t, db, manager)
	other := seedProject(t, db, manager)

	task := &models.Task{Name: "Diseño", Description: "Mockups", ProjectID: project.ID}
	require.NoError(t, tasks.CreateInProject(ctx, task))
	require.NoError(t, notes.CreateForTask(ctx, &models.Note{Content: "Listo", CreatedBy: manager.ID, TaskID: task.ID}))

	kept := &models.Task{Name: "Otra", Description: "Otro proyecto", ProjectID: other.ID}
	require.NoError(t, tasks.CreateInProject(ctx, kept))

	require.NoError(t, projects.DeleteCascade(ctx, project.ID))

	_, err := projects.GetByID(ctx, project.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	var noteCount int64
	require.NoError(t, db.Model(&models.Note{}).Count(&noteCount).Error)
	assert.Zero(t, noteCount)

	_, err = tasks.GetByID(ctx, kept.ID)
	assert.NoError(t, err)
}

func TestTokenRepository_Expiry(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTokenRepository(db)

	user := seedUser(t, db, "token@test.com")
	now := time.Now().UTC()

	valid := &models.Token{Token: "123456", UserID: user.ID, ExpiresAt: now.Add(10 * time.Minute)}
	expired := &models.Token{Token: "654321", UserID: user.ID, ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, repo.Create(ctx, valid))
	require.NoError(t, repo.Create(ctx, expired))

	// รหัสเดียวกับ token ที่ยังใช้ได้ถูกปฏิเสธ
	clash := &models.Token{Token: "123456", UserID: user.ID, ExpiresAt: now.Add(10 * time.Minute)}
	assert.ErrorIs(t, repo.Create(ctx, clash), repositories.ErrTokenCollision)

	found, err := repo.GetByToken(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)

	_, err = repo.GetByToken(ctx, "654321")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	deleted, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	require.NoError(t, repo.Delete(ctx, found))
	_, err = repo.GetByToken(ctx, "123456")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// รหัสที่เคยใช้แล้วสร้างใหม่ได้
	reused := &models.Token{Token: "123456", UserID: user.ID, ExpiresAt: now.Add(10 * time.Minute)}
	assert.NoError(t, repo.Create(ctx, reused))
}
