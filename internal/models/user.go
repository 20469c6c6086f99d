package models

import "time"

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	HashedPassword string    `json:"hashed_password"`
}

// RecordID implements store.Record.
func (u User) RecordID() string {
	return u.ID
}
