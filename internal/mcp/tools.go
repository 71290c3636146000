// ABOUTME: MCP tool definitions and registration for the coach server
// ABOUTME: Exposes chat, context and the routine/task/activity maintenance tools
package mcp

import (
	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/internal/core"
	"github.com/harper/daily-coach/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewHandlers creates the tool handlers over coach and store
func NewHandlers(coach *core.Coach, store storage.Store, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	return &Handlers{coach: coach, store: store, logger: logger.WithPrefix("mcp")}
}

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, coach *core.Coach, store storage.Store, logger *log.Logger) *Handlers {
	handlers := NewHandlers(coach, store, logger)

	// 1. chat - run one coach turn
	server.AddTool(mcp.Tool{
		Name:        "chat",
		Description: "Send a message to the daily coach. Routines, tasks and activities mentioned in the message are saved automatically.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "What the user said, e.g. 'wake me up at 7am' or 'meeting with Dana at 2pm'",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.Chat)

	// 2. get_context - the digest the coach grounds replies on
	server.AddTool(mcp.Tool{
		Name:        "get_context",
		Description: "Get the coach's current context digest: routines, today's tasks, recent activities and recent conversation.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetContext)

	// 3. list_routines - active (or all) routines
	server.AddTool(mcp.Tool{
		Name:        "list_routines",
		Description: "List daily routines ordered by time.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"include_inactive": map[string]interface{}{
					"type":        "boolean",
					"description": "Also list deactivated routines (default: false)",
					"default":     false,
				},
			},
		},
	}, handlers.ListRoutines)

	// 4. deactivate_routine - stop a routine without deleting it
	server.AddTool(mcp.Tool{
		Name:        "deactivate_routine",
		Description: "Deactivate a routine so it no longer appears in plans or context.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Routine ID from list_routines",
				},
			},
			Required: []string{"id"},
		},
	}, handlers.DeactivateRoutine)

	// 5. clean_duplicate_routines - keep one row per name and time
	server.AddTool(mcp.Tool{
		Name:        "clean_duplicate_routines",
		Description: "Remove duplicate routines, keeping the newest active row for each name and time.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.CleanDuplicateRoutines)

	// 6. list_tasks - tasks for a date
	server.AddTool(mcp.Tool{
		Name:        "list_tasks",
		Description: "List one-off tasks for a calendar date.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Date as YYYY-MM-DD (default: today)",
				},
			},
		},
	}, handlers.ListTasks)

	// 7. complete_task - mark a task done
	server.AddTool(mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task as done.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Task ID from list_tasks",
				},
			},
			Required: []string{"id"},
		},
	}, handlers.CompleteTask)

	// 8. recent_activities - the activity log
	server.AddTool(mcp.Tool{
		Name:        "recent_activities",
		Description: "List logged activities (meals, exercise, mood, sleep, work, health), newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"days": map[string]interface{}{
					"type":        "number",
					"description": "How many days back to look (default: 7, 0 for all)",
					"default":     7,
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of activities to return (default: 20)",
					"default":     20,
				},
			},
		},
	}, handlers.RecentActivities)

	return handlers
}
