package repository

import (
	"context"
	"slices"

	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/store"
)

// StoreTaskRepository is a record store implementation of TaskRepository
type StoreTaskRepository struct {
	tasks *store.Collection[models.Task]
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(s *store.Store) TaskRepository {
	return &StoreTaskRepository{tasks: s.Tasks}
}

// Create appends a new task
func (r *StoreTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.tasks.Append(ctx, *task)
}

// FindByID finds a task by ID
func (r *StoreTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	task, found, err := r.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &task, nil
}

// List retrieves tasks matching filter
func (r *StoreTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	if len(filter.ProjectIDs) == 0 {
		return []models.Task{}, nil
	}

	tasks, err := r.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !slices.Contains(filter.ProjectIDs, t.ProjectID) {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.AssigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *filter.AssigneeID) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// Update merges patch into the task
func (r *StoreTaskRepository) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	task, found, err := r.tasks.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &task, nil
}
