package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/teamly-api/internal/models"
)

// ErrNotFound is returned when no record has the requested key.
var ErrNotFound = errors.New("record not found")

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	// ProjectIDs restricts results to these projects. An empty list matches
	// nothing.
	ProjectIDs []string
	Status     *models.TaskStatus
	AssigneeID *string
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create appends a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by exact email
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create appends a new project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID
	FindByID(ctx context.Context, id string) (*models.Project, error)

	// ListByMember lists projects the user is a member of
	ListByMember(ctx context.Context, userID string) ([]models.Project, error)

	// Update merges patch into the project
	Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create appends a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// List retrieves tasks matching filter in insertion order
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update merges patch into the task
	Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
}
