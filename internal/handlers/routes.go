package handlers

import (
	"github.com/gin-gonic/gin"
)

// Routes bundles everything RegisterRoutes mounts.
type Routes struct {
	Auth     *AuthHandler
	Projects *ProjectHandler
	Tasks    *TaskHandler

	// RequireAuth guards every route except registration, login, logout and health.
	RequireAuth gin.HandlerFunc
	// CredentialLimit, when set, throttles /register and /token.
	CredentialLimit gin.HandlerFunc
	Health          gin.HandlerFunc
}

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r gin.IRouter, routes Routes) {
	if routes.Health != nil {
		r.GET("/health", routes.Health)
	}

	// Auth routes (public)
	credentials := r.Group("")
	if routes.CredentialLimit != nil {
		credentials.Use(routes.CredentialLimit)
	}
	credentials.POST("/register", routes.Auth.Register)
	credentials.POST("/token", routes.Auth.Login)
	r.POST("/logout", routes.Auth.Logout)

	r.GET("/users/me", routes.RequireAuth, routes.Auth.GetCurrentUser)

	// Project routes (protected)
	projects := r.Group("/projects")
	projects.Use(routes.RequireAuth)
	{
		projects.POST("", routes.Projects.CreateProject)
		projects.GET("", routes.Projects.ListProjects)
		projects.GET("/:id", routes.Projects.GetProject)
		projects.PUT("/:id", routes.Projects.UpdateProject)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(routes.RequireAuth)
	{
		tasks.POST("", routes.Tasks.CreateTask)
		tasks.GET("", routes.Tasks.ListTasks)
		tasks.POST("/suggestions", routes.Tasks.SuggestTasks)
		tasks.GET("/:id", routes.Tasks.GetTask)
		tasks.PUT("/:id", routes.Tasks.UpdateTask)
		tasks.PUT("/:id/assign", routes.Tasks.AssignTask)
		tasks.PUT("/:id/status", routes.Tasks.UpdateTaskStatus)
	}
}
