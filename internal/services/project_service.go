package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/teamly-api/internal/access"
	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/repository"
)

var (
	ErrProjectNotFound    = errors.New("project not found or access denied")
	ErrOwnerOnly          = errors.New("only the project owner can perform this action")
	ErrInvalidProjectName = errors.New("project name cannot be empty")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description *string
	OwnerID     string
}

// CreateProject creates a project whose only member is its owner.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidProjectName
	}

	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
		CreatedAt:   time.Now().UTC(),
		Members:     []string{input.OwnerID},
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjectsForUser returns projects the user belongs to.
func (s *ProjectService) ListProjectsForUser(ctx context.Context, userID string) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project visible to the actor. Non-members get the
// same error as for a missing project.
func (s *ProjectService) GetProject(ctx context.Context, projectID, actorID string) (*models.Project, error) {
	return s.findForMember(ctx, projectID, actorID)
}

// UpdateProjectInput represents an owner edit of a project.
type UpdateProjectInput struct {
	ProjectID   string
	ActorID     string
	Name        string
	Description *string
}

// UpdateProject renames or redescribes a project. Only the owner may do this.
func (s *ProjectService) UpdateProject(ctx context.Context, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.findForMember(ctx, input.ProjectID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if !access.IsOwner(*project, input.ActorID) {
		return nil, ErrOwnerOnly
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidProjectName
	}

	name := input.Name
	updated, err := s.projectRepo.Update(ctx, project.ID, models.ProjectPatch{
		Name:        &name,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return updated, nil
}

func (s *ProjectService) findForMember(ctx context.Context, projectID, actorID string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if !access.IsMember(*project, actorID) {
		return nil, ErrProjectNotFound
	}
	return project, nil
}
