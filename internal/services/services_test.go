package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/teamly-api/internal/identity"
	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/repository"
	"github.com/yukikurage/teamly-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	store    *store.Store
	auth     *AuthService
	projects *ProjectService
	tasks    *TaskService
}

func setupServices(t *testing.T, generator TaskGenerator) *testEnv {
	t.Helper()

	backend, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	s := store.New(backend, store.Options{SerializeWrites: true})
	require.NoError(t, s.Init(context.Background()))

	userRepo := repository.NewUserRepository(s)
	projectRepo := repository.NewProjectRepository(s)
	taskRepo := repository.NewTaskRepository(s)

	return &testEnv{
		store:    s,
		auth:     NewAuthService(userRepo, identity.NewService("test-secret", bcrypt.MinCost), 30*time.Minute),
		projects: NewProjectService(projectRepo),
		tasks:    NewTaskService(taskRepo, projectRepo, generator),
	}
}

func (e *testEnv) register(t *testing.T, email string) *models.User {
	t.Helper()

	user, err := e.auth.Register(context.Background(), RegisterInput{
		Email:    email,
		Name:     email,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) project(t *testing.T, owner *models.User, name string) *models.Project {
	t.Helper()

	project, err := e.projects.CreateProject(context.Background(), CreateProjectInput{
		Name:    name,
		OwnerID: owner.ID,
	})
	require.NoError(t, err)
	return project
}

func strPtr(s string) *string {
	return &s
}
