package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/teamly-api/internal/models"
)

func TestIsOwnerAndIsMember(t *testing.T) {
	p := models.Project{ID: "p1", OwnerID: "a", Members: []string{"a", "b"}}

	assert.True(t, IsOwner(p, "a"))
	assert.True(t, IsMember(p, "a"))

	assert.False(t, IsOwner(p, "b"))
	assert.True(t, IsMember(p, "b"))

	assert.False(t, IsOwner(p, "c"))
	assert.False(t, IsMember(p, "c"))
}

func TestIsOwner_EmptyOwner(t *testing.T) {
	assert.False(t, IsOwner(models.Project{}, ""))
}

func TestVisibleProjects(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", OwnerID: "a", Members: []string{"a"}},
		{ID: "p2", OwnerID: "b", Members: []string{"b", "a"}},
		{ID: "p3", OwnerID: "b", Members: []string{"b"}},
	}

	visible := VisibleProjects(projects, "a")
	assert.Len(t, visible, 2)
	assert.Equal(t, "p1", visible[0].ID)
	assert.Equal(t, "p2", visible[1].ID)

	assert.Empty(t, VisibleProjects(projects, "z"))
}
