package dto

import (
	"time"

	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/services"
)

// UserDTO represents a user in API responses. The password hash is never exposed.
type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned by the token endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	Members     []string  `json:"members"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	ProjectID   string            `json:"project_id"`
	CreatedAt   time.Time         `json:"created_at"`
	Status      models.TaskStatus `json:"status"`
	AssigneeID  *string           `json:"assignee_id"`
}

// SuggestedTaskDTO is an unsaved draft produced by the suggestion endpoint
type SuggestedTaskDTO struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// ToTokenResponse converts an issued token
func ToTokenResponse(token services.Token) TokenResponse {
	return TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   int64(token.ExpiresIn.Seconds()),
	}
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	members := project.Members
	if members == nil {
		members = []string{}
	}
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
		Members:     members,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}
	return items
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
		Status:      task.Status,
		AssigneeID:  task.AssigneeID,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToSuggestedTaskDTOs converts generated drafts
func ToSuggestedTaskDTOs(drafts []services.GeneratedTask) []SuggestedTaskDTO {
	items := make([]SuggestedTaskDTO, len(drafts))
	for i, draft := range drafts {
		items[i] = SuggestedTaskDTO{
			Title:       draft.Title,
			Description: draft.Description,
			DueDate:     draft.DueDate,
		}
	}
	return items
}
