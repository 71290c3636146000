// ABOUTME: Request and response bodies for the coach HTTP API
package api

import "github.com/harper/daily-coach/internal/models"

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks"`
}

// ErrorResponse is returned for every non-2xx status
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// MaintenanceResponse reports how many rows a maintenance call touched
type MaintenanceResponse struct {
	Message string `json:"message"`
	Removed int64  `json:"removed"`
}

// RoutinesResponse is the body of GET /routines
type RoutinesResponse struct {
	Routines []models.Routine `json:"routines"`
	Count    int              `json:"count"`
}

// TasksResponse is the body of GET /tasks
type TasksResponse struct {
	Date  string        `json:"date"`
	Tasks []models.Task `json:"tasks"`
	Count int           `json:"count"`
}

// ActivitiesResponse is the body of GET /activities
type ActivitiesResponse struct {
	Since      string            `json:"since,omitempty"`
	Activities []models.Activity `json:"activities"`
	Count      int               `json:"count"`
}

// DebugResponse dumps recent records and a context sample
type DebugResponse struct {
	Routines      []models.Routine          `json:"routines"`
	Tasks         []models.Task             `json:"tasks"`
	Activities    []models.Activity         `json:"activities"`
	Conversations []models.ConversationTurn `json:"conversations"`
	ContextSample string                    `json:"context_sample"`
}
