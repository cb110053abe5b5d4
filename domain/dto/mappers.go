package dto

import (
	"github.com/google/uuid"

	"uptask-api/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func UsersToUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *UserToUserResponse(u))
	}
	return out
}

func ids(list models.UUIDList) []uuid.UUID {
	if list == nil {
		return []uuid.UUID{}
	}
	return list
}

func ProjectToProjectResponse(project *models.Project) *ProjectResponse {
	if project == nil {
		return nil
	}
	return &ProjectResponse{
		ID:          project.ID,
		ProjectName: project.ProjectName,
		ClientName:  project.ClientName,
		Description: project.Description,
		Slug:        project.Slug,
		Manager:     project.ManagerID,
		Tasks:       ids(project.Tasks),
		Team:        ids(project.Team),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func ProjectsToProjectResponses(projects []*models.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, *ProjectToProjectResponse(p))
	}
	return out
}

func ProjectToProjectDetailResponse(project *models.Project, tasks []*models.Task) *ProjectDetailResponse {
	if project == nil {
		return nil
	}
	return &ProjectDetailResponse{
		ID:          project.ID,
		ProjectName: project.ProjectName,
		ClientName:  project.ClientName,
		Description: project.Description,
		Slug:        project.Slug,
		Manager:     project.ManagerID,
		Tasks:       TasksToTaskResponses(tasks),
		Team:        ids(project.Team),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	return &TaskResponse{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Project:     task.ProjectID,
		Status:      string(task.Status),
		Notes:       ids(task.Notes),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func TasksToTaskResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *TaskToTaskResponse(t))
	}
	return out
}

func TaskToTaskDetailResponse(task *models.Task, notes []*models.Note) *TaskDetailResponse {
	if task == nil {
		return nil
	}
	history := make([]TaskStatusChangeResponse, 0, len(task.CompletedBy))
	for i := range task.CompletedBy {
		change := &task.CompletedBy[i]
		history = append(history, TaskStatusChangeResponse{
			ID:        change.ID,
			User:      UserToUserResponse(change.User),
			Status:    string(change.Status),
			CreatedAt: change.CreatedAt,
		})
	}
	return &TaskDetailResponse{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Project:     task.ProjectID,
		Status:      string(task.Status),
		CompletedBy: history,
		Notes:       NotesToNoteResponses(notes),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func NoteToNoteResponse(note *models.Note) *NoteResponse {
	if note == nil {
		return nil
	}
	resp := &NoteResponse{
		ID:        note.ID,
		Content:   note.Content,
		Task:      note.TaskID,
		CreatedAt: note.CreatedAt,
	}
	if note.Author != nil {
		resp.CreatedBy = UserToUserResponse(note.Author)
	} else {
		resp.CreatedBy = &UserResponse{ID: note.CreatedBy}
	}
	return resp
}

func NotesToNoteResponses(notes []*models.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, *NoteToNoteResponse(n))
	}
	return out
}
