package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/teamly-api/internal/constants"
	"github.com/yukikurage/teamly-api/internal/dto"
	"github.com/yukikurage/teamly-api/internal/identity"
	"github.com/yukikurage/teamly-api/internal/middleware"
	"github.com/yukikurage/teamly-api/internal/repository"
	"github.com/yukikurage/teamly-api/internal/services"
	"github.com/yukikurage/teamly-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	t       *testing.T
	router  *gin.Engine
	store   *store.Store
	dataDir string
}

func newTestAPI(t *testing.T, generator services.TaskGenerator) *testAPI {
	t.Helper()

	dataDir := t.TempDir()
	backend, err := store.NewFileBackend(dataDir)
	require.NoError(t, err)
	s := store.New(backend, store.Options{SerializeWrites: true})
	require.NoError(t, s.Init(context.Background()))

	userRepo := repository.NewUserRepository(s)
	projectRepo := repository.NewProjectRepository(s)
	taskRepo := repository.NewTaskRepository(s)

	authService := services.NewAuthService(userRepo, identity.NewService("test-secret", bcrypt.MinCost), 30*time.Minute)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, generator)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	RegisterRoutes(r, Routes{
		Auth:        NewAuthHandler(authService),
		Projects:    NewProjectHandler(projectService),
		Tasks:       NewTaskHandler(taskService),
		RequireAuth: middleware.RequireAuth(authService),
		Health:      Health(s),
	})

	return &testAPI{t: t, router: r, store: s, dataDir: dataDir}
}

func (a *testAPI) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) register(email string) dto.UserDTO {
	a.t.Helper()

	w := a.do(http.MethodPost, "/register", gin.H{"email": email, "name": "User " + email, "password": "password123"}, "")
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var user dto.UserDTO
	decode(a.t, w, &user)
	return user
}

func (a *testAPI) login(email string) string {
	a.t.Helper()

	w := a.do(http.MethodPost, "/token", gin.H{"email": email, "password": "password123"}, "")
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var token dto.TokenResponse
	decode(a.t, w, &token)
	return token.AccessToken
}

// signup registers and logs in, returning the user and a bearer token.
func (a *testAPI) signup(email string) (dto.UserDTO, string) {
	a.t.Helper()
	user := a.register(email)
	return user, a.login(email)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type apiErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apiErrorBody {
	t.Helper()
	var body apiErrorBody
	decode(t, w, &body)
	return body
}
