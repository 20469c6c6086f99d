package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/teamly-api/internal/dto"
	apierrors "github.com/yukikurage/teamly-api/internal/errors"
	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks from the current user's projects
// Can filter by project_id, status and assignee_id
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	input := services.ListTasksInput{UserID: user.ID}
	if projectID, ok := c.GetQuery("project_id"); ok {
		input.ProjectID = &projectID
	}
	if raw, ok := c.GetQuery("status"); ok {
		status, err := models.ParseTaskStatus(raw)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		input.Status = &status
	}
	if assigneeID, ok := c.GetQuery("assignee_id"); ok {
		input.AssigneeID = &assigneeID
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		ProjectID   string  `json:"project_id" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		ActorID:     user.ID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask edits title and description
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), services.UpdateTaskInput{
		TaskID:      c.Param("id"),
		ActorID:     user.ID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// AssignTask sets the task's assignee
func (h *TaskHandler) AssignTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	type AssignRequest struct {
		AssigneeID string `json:"assignee_id" form:"assignee_id"`
	}

	var req AssignRequest
	if !bindQueryOrJSON(c, &req, func() bool { return req.AssigneeID != "" }) {
		return
	}

	task, err := h.taskService.AssignTask(c.Request.Context(), services.AssignTaskInput{
		TaskID:     c.Param("id"),
		ActorID:    user.ID,
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTaskStatus moves a task to another status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	type StatusRequest struct {
		Status string `json:"status" form:"status"`
	}

	var req StatusRequest
	if !bindQueryOrJSON(c, &req, func() bool { return req.Status != "" }) {
		return
	}

	task, err := h.taskService.SetTaskStatus(c.Request.Context(), services.SetTaskStatusInput{
		TaskID:  c.Param("id"),
		ActorID: user.ID,
		Status:  req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// SuggestTasks drafts tasks from free text using AI. Nothing is saved.
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	type SuggestTasksRequest struct {
		ProjectID string `json:"project_id" binding:"required"`
		Text      string `json:"text"`
	}

	var req SuggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.taskService.SuggestTasks(c.Request.Context(), services.SuggestTasksInput{
		ProjectID: req.ProjectID,
		ActorID:   user.ID,
		Text:      req.Text,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToSuggestedTaskDTOs(drafts),
	})
}

// bindQueryOrJSON reads obj from the query string, then from a JSON body if
// the query left it empty.
func bindQueryOrJSON(c *gin.Context, obj any, filled func() bool) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		apierrors.BadRequest(c, "Invalid query parameters")
		return false
	}
	if filled() || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}
