package repository

import (
	"context"

	"github.com/yukikurage/teamly-api/internal/access"
	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/store"
)

// StoreProjectRepository is a record store implementation of ProjectRepository
type StoreProjectRepository struct {
	projects *store.Collection[models.Project]
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(s *store.Store) ProjectRepository {
	return &StoreProjectRepository{projects: s.Projects}
}

// Create appends a new project
func (r *StoreProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.projects.Append(ctx, *project)
}

// FindByID finds a project by ID
func (r *StoreProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	project, found, err := r.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &project, nil
}

// ListByMember lists projects the user is a member of
func (r *StoreProjectRepository) ListByMember(ctx context.Context, userID string) ([]models.Project, error) {
	projects, err := r.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	return access.VisibleProjects(projects, userID), nil
}

// Update merges patch into the project. The store treats an unknown id as a
// no-op; here it surfaces as ErrNotFound.
func (r *StoreProjectRepository) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	project, found, err := r.projects.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &project, nil
}
