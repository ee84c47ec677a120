// ABOUTME: Task MCP tool handlers
// ABOUTME: Implements create_task, list_tasks, complete_task and delete_task tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

type TaskHandlers struct {
	db *sql.DB
}

func NewTaskHandlers(database *sql.DB) *TaskHandlers {
	return &TaskHandlers{db: database}
}

type CreateTaskInput struct {
	Text      string `json:"text" jsonschema:"Task text (required)"`
	Priority  string `json:"priority,omitempty" jsonschema:"Priority: low, medium or high (default medium)"`
	AccountID string `json:"account_id,omitempty" jsonschema:"UUID of a related account"`
	ContactID string `json:"contact_id,omitempty" jsonschema:"UUID of a related contact"`
	DueDate   string `json:"due_date,omitempty" jsonschema:"Due date, YYYY-MM-DD"`
}

type TaskOutput struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Priority  string `json:"priority"`
	Status    string `json:"status"`
	AccountID string `json:"account_id,omitempty"`
	ContactID string `json:"contact_id,omitempty"`
	DueDate   string `json:"due_date,omitempty"`
}

func (h *TaskHandlers) CreateTask(_ context.Context, request *mcp.CallToolRequest, input CreateTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.Text == "" {
		return nil, TaskOutput{}, fmt.Errorf("text is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := &models.Task{
		Text:     input.Text,
		Priority: priority,
		Status:   models.TaskTodo,
	}

	if input.AccountID != "" {
		id, err := uuid.Parse(input.AccountID)
		if err != nil {
			return nil, TaskOutput{}, fmt.Errorf("invalid account_id: %w", err)
		}
		task.AccountID = &id
	}
	if input.ContactID != "" {
		id, err := uuid.Parse(input.ContactID)
		if err != nil {
			return nil, TaskOutput{}, fmt.Errorf("invalid contact_id: %w", err)
		}
		task.ContactID = &id
	}
	if input.DueDate != "" {
		due, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			return nil, TaskOutput{}, fmt.Errorf("invalid due_date: %w", err)
		}
		task.DueDate = &due
	}

	if err := db.CreateTask(h.db, task); err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to create task: %w", err)
	}

	return nil, taskToOutput(task), nil
}

type ListTasksInput struct {
	AccountID string `json:"account_id,omitempty" jsonschema:"Only tasks for this account"`
	Status    string `json:"status,omitempty" jsonschema:"Only tasks with this status (todo or done)"`
}

type ListTasksOutput struct {
	Tasks []TaskOutput `json:"tasks"`
}

func (h *TaskHandlers) ListTasks(_ context.Context, request *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, ListTasksOutput, error) {
	var accountID *uuid.UUID
	if input.AccountID != "" {
		id, err := uuid.Parse(input.AccountID)
		if err != nil {
			return nil, ListTasksOutput{}, fmt.Errorf("invalid account_id: %w", err)
		}
		accountID = &id
	}

	tasks, err := db.ListTasks(h.db, accountID, input.Status)
	if err != nil {
		return nil, ListTasksOutput{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	result := make([]TaskOutput, len(tasks))
	for i, task := range tasks {
		result[i] = taskToOutput(&task)
	}

	return nil, ListTasksOutput{Tasks: result}, nil
}

type CompleteTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"UUID of the task to mark done"`
}

func (h *TaskHandlers) CompleteTask(_ context.Context, request *mcp.CallToolRequest, input CompleteTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.TaskID == "" {
		return nil, TaskOutput{}, fmt.Errorf("task_id is required")
	}

	taskID, err := uuid.Parse(input.TaskID)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("invalid task_id: %w", err)
	}

	task, err := db.GetTask(h.db, taskID)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("task not found: %w", err)
	}
	if task == nil {
		return nil, TaskOutput{}, fmt.Errorf("task not found: %s", taskID)
	}

	task.Status = models.TaskDone
	if err := db.UpdateTask(h.db, taskID, task); err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to update task: %w", err)
	}

	return nil, taskToOutput(task), nil
}

type DeleteTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"UUID of the task to delete"`
}

type DeleteTaskOutput struct {
	Message string `json:"message"`
}

func (h *TaskHandlers) DeleteTask(_ context.Context, request *mcp.CallToolRequest, input DeleteTaskInput) (*mcp.CallToolResult, DeleteTaskOutput, error) {
	if input.TaskID == "" {
		return nil, DeleteTaskOutput{}, fmt.Errorf("task_id is required")
	}

	taskID, err := uuid.Parse(input.TaskID)
	if err != nil {
		return nil, DeleteTaskOutput{}, fmt.Errorf("invalid task_id: %w", err)
	}

	if err := db.DeleteTask(h.db, taskID); err != nil {
		return nil, DeleteTaskOutput{}, fmt.Errorf("failed to delete task: %w", err)
	}

	return nil, DeleteTaskOutput{
		Message: fmt.Sprintf("Deleted task: %s", taskID),
	}, nil
}

func taskToOutput(task *models.Task) TaskOutput {
	out := TaskOutput{
		ID:       task.ID.String(),
		Text:     task.Text,
		Priority: task.Priority,
		Status:   task.Status,
	}
	if task.AccountID != nil {
		out.AccountID = task.AccountID.String()
	}
	if task.ContactID != nil {
		out.ContactID = task.ContactID.String()
	}
	if task.DueDate != nil {
		out.DueDate = task.DueDate.Format("2006-01-02")
	}
	return out
}
