// ABOUTME: HTTP handlers for chat, health, maintenance and record listings
// ABOUTME: Chat never fails on storage or completion errors; maintenance maps ErrNotFound to 404
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage"
)

const (
	defaultActivityDays  = 7
	defaultActivityLimit = 50
	debugRecordLimit     = 20
	debugTurnLimit       = 10
)

func (s *Server) banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Daily Coach API is running",
		"version": s.opts.Version,
		"endpoints": []string{
			"POST /chat",
			"GET /health",
			"GET /routines",
			"GET /tasks",
			"GET /activities",
			"GET /debug",
		},
	})
}

func (s *Server) healthCheck(c *gin.Context) {
	checks := map[string]string{"database": "ok", "completion": "ok"}
	status, code := "healthy", http.StatusOK

	if _, err := s.store.ListActiveRoutines(); err != nil {
		s.logger.Error("health: database check failed", "err", err)
		checks["database"] = "error: " + err.Error()
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	switch {
	case s.completer == nil:
		checks["completion"] = "not configured"
		if code == http.StatusOK {
			status = "degraded"
		}
	default:
		ctx, cancel := context.WithTimeout(c.Request.Context(), HealthTimeout)
		defer cancel()
		if err := s.completer.Ping(ctx); err != nil {
			checks["completion"] = "unreachable: " + err.Error()
			if code == http.StatusOK {
				status = "degraded"
			}
		}
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Version:   s.opts.Version,
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
		Checks:    checks,
	})
}

func (s *Server) chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "Invalid request format", err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.badRequest(c, "Message cannot be empty", nil)
		return
	}

	c.JSON(http.StatusOK, s.coach.Handle(c.Request.Context(), req.Message))
}

func (s *Server) listRoutines(c *gin.Context) {
	list := s.store.ListActiveRoutines
	if c.Query("all") == "true" {
		list = s.store.ListRoutines
	}

	routines, err := list()
	if err != nil {
		s.handleError(c, "Failed to list routines", err)
		return
	}
	c.JSON(http.StatusOK, RoutinesResponse{Routines: nonNil(routines), Count: len(routines)})
}

func (s *Server) deactivateRoutine(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.DeactivateRoutine(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.notFound(c, "Routine not found", err)
			return
		}
		s.handleError(c, "Failed to deactivate routine", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Routine deactivated", "id": id})
}

func (s *Server) cleanDuplicates(c *gin.Context) {
	removed, err := s.store.CleanDuplicateRoutines()
	if err != nil {
		s.handleError(c, "Failed to clean duplicate routines", err)
		return
	}
	c.JSON(http.StatusOK, MaintenanceResponse{
		Message: fmt.Sprintf("Cleaned up %d duplicate routines", removed),
		Removed: removed,
	})
}

func (s *Server) purgeRoutines(c *gin.Context) {
	removed, err := s.store.PurgeInactiveRoutines()
	if err != nil {
		s.handleError(c, "Failed to purge inactive routines", err)
		return
	}
	c.JSON(http.StatusOK, MaintenanceResponse{
		Message: fmt.Sprintf("Purged %d inactive routines", removed),
		Removed: removed,
	})
}

func (s *Server) listTasks(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = models.DateOf(s.now())
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		s.badRequest(c, "date must be YYYY-MM-DD", err)
		return
	}

	tasks, err := s.store.TasksForDate(date)
	if err != nil {
		s.handleError(c, "Failed to list tasks", err)
		return
	}
	c.JSON(http.StatusOK, TasksResponse{Date: date, Tasks: nonNil(tasks), Count: len(tasks)})
}

func (s *Server) completeTask(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.CompleteTask(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.notFound(c, "Task not found", err)
			return
		}
		s.handleError(c, "Failed to complete task", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task completed", "id": id})
}

func (s *Server) listActivities(c *gin.Context) {
	days := s.parseIntParam(c, "days", defaultActivityDays)
	limit := s.parseIntParam(c, "limit", defaultActivityLimit)

	since := ""
	if days > 0 {
		since = models.DateOf(s.now().AddDate(0, 0, -days))
	}

	activities, err := s.store.RecentActivities(since, limit)
	if err != nil {
		s.handleError(c, "Failed to list activities", err)
		return
	}
	c.JSON(http.StatusOK, ActivitiesResponse{Since: since, Activities: nonNil(activities), Count: len(activities)})
}

func (s *Server) debug(c *gin.Context) {
	var resp DebugResponse
	var err error

	if resp.Routines, err = s.store.ListRoutines(); err != nil {
		s.handleError(c, "Failed to read routines", err)
		return
	}
	if resp.Tasks, err = s.store.ListTasks(debugRecordLimit); err != nil {
		s.handleError(c, "Failed to read tasks", err)
		return
	}
	if resp.Activities, err = s.store.RecentActivities("", debugRecordLimit); err != nil {
		s.handleError(c, "Failed to read activities", err)
		return
	}
	if resp.Conversations, err = s.store.RecentConversations(debugTurnLimit); err != nil {
		s.handleError(c, "Failed to read conversations", err)
		return
	}

	sample := []rune(s.coach.Digest())
	if len(sample) > DebugSampleChars {
		resp.ContextSample = string(sample[:DebugSampleChars]) + "..."
	} else {
		resp.ContextSample = string(sample)
	}

	resp.Routines = nonNil(resp.Routines)
	resp.Tasks = nonNil(resp.Tasks)
	resp.Activities = nonNil(resp.Activities)
	resp.Conversations = nonNil(resp.Conversations)
	c.JSON(http.StatusOK, resp)
}

// handleError logs err and responds 500
func (s *Server) handleError(c *gin.Context, message string, err error) {
	requestID := c.GetString("request_id")
	s.logger.Error(message, "err", err, "request_id", requestID, "path", c.Request.URL.Path)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
		Error:   err.Error(),
		Details: fmt.Sprintf("Request ID: %s", requestID),
	})
}

func (s *Server) badRequest(c *gin.Context, message string, err error) {
	resp := ErrorResponse{Code: http.StatusBadRequest, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

func (s *Server) notFound(c *gin.Context, message string, err error) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Code:    http.StatusNotFound,
		Message: message,
		Error:   err.Error(),
	})
}

// parseIntParam reads a query integer, falling back to defaultValue when
// absent or malformed
func (s *Server) parseIntParam(c *gin.Context, param string, defaultValue int) int {
	raw := c.Query(param)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

// nonNil keeps empty lists as [] rather than null in JSON
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
