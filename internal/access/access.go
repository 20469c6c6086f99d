// Package access holds the two-tier project authorization model. Membership
// grants work inside a project's task space; ownership is required to change
// the project itself.
package access

import "github.com/yukikurage/teamly-api/internal/models"

// IsMember reports whether userID is in the project's membership list.
func IsMember(project models.Project, userID string) bool {
	return project.HasMember(userID)
}

// IsOwner reports whether userID created the project.
func IsOwner(project models.Project, userID string) bool {
	return project.OwnerID != "" && project.OwnerID == userID
}

// VisibleProjects filters projects down to those userID belongs to,
// keeping their order.
func VisibleProjects(projects []models.Project, userID string) []models.Project {
	visible := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if IsMember(p, userID) {
			visible = append(visible, p)
		}
	}
	return visible
}
