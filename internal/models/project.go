package models

import (
	"slices"
	"time"
)

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	Members     []string  `json:"members"`
}

// RecordID implements store.Record.
func (p Project) RecordID() string {
	return p.ID
}

// HasMember reports whether userID appears in the membership list.
func (p Project) HasMember(userID string) bool {
	return slices.Contains(p.Members, userID)
}

// ProjectPatch is a partial update for a project. Nil fields keep their
// current value.
type ProjectPatch struct {
	Name        *string
	Description *string
}

// Apply merges the patch into p and returns the result.
func (patch ProjectPatch) Apply(p Project) Project {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		desc := *patch.Description
		p.Description = &desc
	}
	return p
}
