// ABOUTME: MCP tool handler implementations for the coach server
// ABOUTME: Tool failures are returned as MCP error results, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/internal/core"
	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	coach  *core.Coach
	store  storage.Store
	logger *log.Logger
	now    func() time.Time
}

// Chat handles the chat tool
func (h *Handlers) Chat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil || strings.TrimSpace(message) == "" {
		return mcp.NewToolResultError("message argument is required and must be a non-empty string"), nil
	}

	return jsonResult(h.coach.Handle(ctx, message))
}

// GetContext handles the get_context tool
func (h *Handlers) GetContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(h.coach.Digest()), nil
}

// ListRoutines handles the list_routines tool
func (h *Handlers) ListRoutines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := h.store.ListActiveRoutines
	if request.GetBool("include_inactive", false) {
		list = h.store.ListRoutines
	}

	routines, err := list()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list routines: %v", err)), nil
	}
	if routines == nil {
		routines = []models.Routine{}
	}

	return jsonResult(map[string]interface{}{
		"routines": routines,
		"count":    len(routines),
	})
}

// DeactivateRoutine handles the deactivate_routine tool
func (h *Handlers) DeactivateRoutine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id argument is required and must be a string"), nil
	}

	if err := h.store.DeactivateRoutine(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no active routine with id %s", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to deactivate routine: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"success": true, "id": id})
}

// CleanDuplicateRoutines handles the clean_duplicate_routines tool
func (h *Handlers) CleanDuplicateRoutines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	removed, err := h.store.CleanDuplicateRoutines()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clean routines: %v", err)), nil
	}

	h.logger.Info("duplicate routines cleaned", "removed", removed)
	return jsonResult(map[string]interface{}{
		"message": fmt.Sprintf("Cleaned up %d duplicate routines", removed),
		"removed": removed,
	})
}

// ListTasks handles the list_tasks tool
func (h *Handlers) ListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := request.GetString("date", "")
	if date == "" {
		date = models.DateOf(h.clock())
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return mcp.NewToolResultError("date must be YYYY-MM-DD"), nil
	}

	tasks, err := h.store.TasksForDate(date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list tasks: %v", err)), nil
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	return jsonResult(map[string]interface{}{
		"date":  date,
		"tasks": tasks,
		"count": len(tasks),
	})
}

// CompleteTask handles the complete_task tool
func (h *Handlers) CompleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id argument is required and must be a string"), nil
	}

	if err := h.store.CompleteTask(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no task with id %s", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete task: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"success": true, "id": id})
}

// RecentActivities handles the recent_activities tool
func (h *Handlers) RecentActivities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := request.GetInt("days", 7)
	limit := request.GetInt("limit", 20)

	since := ""
	if days > 0 {
		since = models.DateOf(h.clock().AddDate(0, 0, -days))
	}

	activities, err := h.store.RecentActivities(since, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list activities: %v", err)), nil
	}
	if activities == nil {
		activities = []models.Activity{}
	}

	return jsonResult(map[string]interface{}{
		"since":      since,
		"activities": activities,
		"count":      len(activities),
	})
}

func (h *Handlers) clock() time.Time {
	if h.now != nil {
		return h.now()
	}
	return time.Now()
}

// jsonResult marshals v into a text tool result
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
