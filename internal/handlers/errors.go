package handlers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/teamly-api/internal/errors"
	"github.com/yukikurage/teamly-api/internal/middleware"
	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/services"
	"github.com/yukikurage/teamly-api/internal/store"
)

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeDuplicateEmail, "Email already registered", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Incorrect email or password")
	case errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrPasswordRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		respondInternal(c, err)
	}
}

// respondServiceError maps project and task service errors onto API errors.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found or access denied")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrAccessDenied):
		apierrors.Forbidden(c, "Access denied")
	case errors.Is(err, services.ErrOwnerOnly):
		apierrors.OwnerOnly(c, "Only the project owner can edit this project")
	case errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidAssignee, "Assignee must be a project member", nil)
	case errors.Is(err, models.ErrInvalidStatus):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidStatus, err.Error(), gin.H{
			"allowed": models.AllTaskStatuses,
		})
	case errors.Is(err, services.ErrInvalidProjectName),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrSuggestionTextRequired),
		errors.Is(err, services.ErrSuggestionTextTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrAINoTasksGenerated):
		apierrors.BadRequest(c, "No tasks could be extracted from the text")
	default:
		respondInternal(c, err)
	}
}

func respondInternal(c *gin.Context, err error) {
	if errors.Is(err, store.ErrStorageUnavailable) {
		slog.Error("storage unavailable", "path", c.FullPath(), "error", err)
		apierrors.ServiceUnavailable(c, "Storage is unavailable")
		return
	}
	slog.Error("request failed", "path", c.FullPath(), "error", err)
	apierrors.InternalError(c, "Internal server error")
}

func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
	}
	return user, ok
}
