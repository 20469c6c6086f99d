package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/teamly-api/internal/access"
	"github.com/yukikurage/teamly-api/internal/constants"
	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/repository"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrAccessDenied           = errors.New("access denied")
	ErrInvalidAssignee        = errors.New("assignee must be a project member")
	ErrTitleRequired          = errors.New("title is required")
	ErrSuggestionTextRequired = errors.New("text is required")
	ErrSuggestionTextTooLong  = errors.New("text is too long")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	generator   TaskGenerator
}

// NewTaskService creates a new TaskService. generator may be nil, which
// disables suggestions.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, generator TaskGenerator) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		generator:   generator,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	ProjectID   string
	ActorID     string
}

// CreateTask creates a task in a project the actor belongs to. A missing
// project and a project the actor is not in produce the same error.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if _, err := s.memberProject(ctx, input.ProjectID, input.ActorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		ProjectID:   input.ProjectID,
		CreatedAt:   time.Now().UTC(),
		Status:      models.TaskStatusTodo,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	UserID     string
	ProjectID  *string
	Status     *models.TaskStatus
	AssigneeID *string
}

// ListTasks returns tasks from every project the user belongs to. Filters
// narrow the result; a project filter the user cannot see yields nothing.
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	projects, err := s.projectRepo.ListByMember(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project memberships: %w", err)
	}

	projectIDs := make([]string, 0, len(projects))
	for _, p := range projects {
		if input.ProjectID != nil && p.ID != *input.ProjectID {
			continue
		}
		projectIDs = append(projectIDs, p.ID)
	}

	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{
		ProjectIDs: projectIDs,
		Status:     input.Status,
		AssigneeID: input.AssigneeID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a task the actor can access.
func (s *TaskService) GetTask(ctx context.Context, taskID, actorID string) (*models.Task, error) {
	task, _, err := s.memberTask(ctx, taskID, actorID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTaskInput represents a member edit of a task's text fields
type UpdateTaskInput struct {
	TaskID      string
	ActorID     string
	Title       string
	Description *string
}

// UpdateTask edits the title and description. Membership is enough.
func (s *TaskService) UpdateTask(ctx context.Context, input UpdateTaskInput) (*models.Task, error) {
	task, _, err := s.memberTask(ctx, input.TaskID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	title := input.Title
	return s.applyPatch(ctx, task.ID, models.TaskPatch{
		Title:       &title,
		Description: input.Description,
	})
}

// AssignTaskInput represents input for assigning a task
type AssignTaskInput struct {
	TaskID     string
	ActorID    string
	AssigneeID string
}

// AssignTask sets the assignee. Both the actor and the assignee must be
// members of the task's project.
func (s *TaskService) AssignTask(ctx context.Context, input AssignTaskInput) (*models.Task, error) {
	task, project, err := s.memberTask(ctx, input.TaskID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if !access.IsMember(*project, input.AssigneeID) {
		return nil, ErrInvalidAssignee
	}

	assignee := input.AssigneeID
	return s.applyPatch(ctx, task.ID, models.TaskPatch{AssigneeID: &assignee})
}

// SetTaskStatusInput represents a status change request
type SetTaskStatusInput struct {
	TaskID  string
	ActorID string
	Status  string
}

// SetTaskStatus moves a task to any of the allowed statuses.
func (s *TaskService) SetTaskStatus(ctx context.Context, input SetTaskStatusInput) (*models.Task, error) {
	task, _, err := s.memberTask(ctx, input.TaskID, input.ActorID)
	if err != nil {
		return nil, err
	}

	status, err := models.ParseTaskStatus(input.Status)
	if err != nil {
		return nil, err
	}

	return s.applyPatch(ctx, task.ID, models.TaskPatch{Status: &status})
}

// SuggestTasksInput represents input for AI task suggestions
type SuggestTasksInput struct {
	ProjectID string
	ActorID   string
	Text      string
}

// SuggestTasks drafts tasks from free text for a project the actor belongs
// to. Nothing is persisted.
func (s *TaskService) SuggestTasks(ctx context.Context, input SuggestTasksInput) ([]GeneratedTask, error) {
	if _, err := s.memberProject(ctx, input.ProjectID, input.ActorID); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrSuggestionTextRequired
	}
	if len(text) > constants.MaxSuggestionTextLength {
		return nil, ErrSuggestionTextTooLong
	}

	if s.generator == nil {
		return nil, ErrAIServiceNotConfigured
	}

	generated, err := s.generator.GenerateTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	drafts := make([]GeneratedTask, 0, len(generated))
	for _, g := range generated {
		if strings.TrimSpace(g.Title) == "" {
			continue
		}
		drafts = append(drafts, g)
		if len(drafts) == constants.MaxSuggestedTasks {
			break
		}
	}

	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}

	return drafts, nil
}

func (s *TaskService) applyPatch(ctx context.Context, taskID string, patch models.TaskPatch) (*models.Task, error) {
	updated, err := s.taskRepo.Update(ctx, taskID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// memberProject loads a project for task creation. Absence and missing
// membership are reported identically.
func (s *TaskService) memberProject(ctx context.Context, projectID, actorID string) (*models.Project, error) {
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

// memberTask loads a task and its project, checking that the actor belongs
// to the project.
func (s *TaskService) memberTask(ctx context.Context, taskID, actorID string) (*models.Task, *models.Project, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, fmt.Errorf("failed to find task: %w", err)
	}

	project, err := s.projectRepo.FindByID(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrAccessDenied
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}
	if !access.IsMember(*project, actorID) {
		return nil, nil, ErrAccessDenied
	}

	return task, project, nil
}
