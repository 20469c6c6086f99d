package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/store"
)

func setupRedisBackend(t *testing.T) (*miniredis.Miniredis, *store.RedisBackend) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
	})

	return mr, store.NewRedisBackend(client, "test")
}

func TestRedisBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, backend := setupRedisBackend(t)

	s := store.New(backend, store.Options{})
	require.NoError(t, s.Init(ctx))

	require.NoError(t, s.Tasks.Append(ctx, models.Task{ID: "t1", Title: "write docs", Status: models.TaskStatusTodo}))

	status := models.TaskStatusInProgress
	_, found, err := s.Tasks.Update(ctx, "t1", models.TaskPatch{Status: &status})
	require.NoError(t, err)
	require.True(t, found)

	tasks, err := s.Tasks.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskStatusInProgress, tasks[0].Status)
	assert.Equal(t, "write docs", tasks[0].Title)

	raw, err := mr.Get("test:tasks")
	require.NoError(t, err)
	assert.Contains(t, raw, `"in_progress"`)
}

func TestRedisBackend_EnsureKeepsExistingKeys(t *testing.T) {
	ctx := context.Background()
	mr, backend := setupRedisBackend(t)

	require.NoError(t, mr.Set("test:users", `[{"id":"u1"}]`))
	require.NoError(t, backend.Ensure(ctx, store.Collections))

	data, err := backend.Load(ctx, store.CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"u1"}]`, string(data))
	assert.True(t, mr.Exists("test:projects"))
}

func TestRedisBackend_MissingKeyIsUnavailable(t *testing.T) {
	_, backend := setupRedisBackend(t)

	_, err := backend.Load(context.Background(), store.CollectionUsers)
	require.ErrorIs(t, err, store.ErrStorageUnavailable)
}

func TestRedisBackend_ServerDownIsUnavailable(t *testing.T) {
	ctx := context.Background()
	mr, backend := setupRedisBackend(t)
	require.NoError(t, backend.Ensure(ctx, store.Collections))

	mr.Close()

	_, err := backend.Load(ctx, store.CollectionUsers)
	require.ErrorIs(t, err, store.ErrStorageUnavailable)
}
