package cli

import (
	"context"
	"fmt"
	"strings"

	"progress-tracker/internal/difficulty"
	"progress-tracker/internal/errors"
)

// TaskAddCommand adds a task to a project
type TaskAddCommand struct {
	app    *App
	errors *ErrorHandler
}

// NewTaskAddCommand creates a new task add command handler
func NewTaskAddCommand(app *App) *TaskAddCommand {
	return &TaskAddCommand{app: app, errors: NewErrorHandler(app.logger)}
}

// Execute expects a project id, a difficulty and the title words
func (c *TaskAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return c.errors.Handle("add task", errors.NewInvalidInputError("args", args, "usage: task add <project-id> <difficulty> <title>"))
	}

	projectID, err := parseID("project_id", args[:1])
	if err != nil {
		return c.errors.Handle("add task", err)
	}
	tier, err := difficulty.Parse(args[1])
	if err != nil {
		return c.errors.Handle("add task", errors.NewInvalidInputError("difficulty", args[1], "must be low, medium, high or 1-3"))
	}

	task, err := c.app.api.CreateTask(ctx, projectID, strings.Join(args[2:], " "), tier)
	if err != nil {
		return c.errors.Handle("add task", err)
	}
	fmt.Fprintf(c.app.out, "Created task %d (%s): %s\n", task.ID, task.Difficulty.LabelIn(c.app.locale()), task.Title)
	return nil
}

// TaskToggleCommand flips a task between open and completed
type TaskToggleCommand struct {
	app    *App
	errors *ErrorHandler
}

// NewTaskToggleCommand creates a new task toggle command handler
func NewTaskToggleCommand(app *App) *TaskToggleCommand {
	return &TaskToggleCommand{app: app, errors: NewErrorHandler(app.logger)}
}

// Execute toggles the task and prints its project's new progress
func (c *TaskToggleCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID("task_id", args)
	if err != nil {
		return c.errors.Handle("toggle task", err)
	}

	task, err := c.app.api.ToggleTask(ctx, id)
	if err != nil {
		return c.errors.Handle("toggle task", err)
	}

	state := "open"
	if task.Completed {
		state = "completed"
	}
	pct, err := c.app.api.ProjectProgress(ctx, task.ProjectID)
	if err != nil {
		return c.errors.Handle("toggle task", err)
	}
	fmt.Fprintf(c.app.out, "Task %d is now %s. Project %d progress: %.2f%%\n", task.ID, state, task.ProjectID, pct)
	return nil
}

// TaskDeleteCommand removes a task
type TaskDeleteCommand struct {
	app    *App
	errors *ErrorHandler
}

// NewTaskDeleteCommand creates a new task delete command handler
func NewTaskDeleteCommand(app *App) *TaskDeleteCommand {
	return &TaskDeleteCommand{app: app, errors: NewErrorHandler(app.logger)}
}

// Execute deletes the task with the given id
func (c *TaskDeleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID("task_id", args)
	if err != nil {
		return c.errors.Handle("delete task", err)
	}

	if err := c.app.api.DeleteTask(ctx, id); err != nil {
		return c.errors.Handle("delete task", err)
	}
	fmt.Fprintf(c.app.out, "Deleted task %d\n", id)
	return nil
}

// SeedCommand fills the store with sample projects and tasks
type SeedCommand struct {
	app    *App
	errors *ErrorHandler
}

// NewSeedCommand creates a new seed command handler
func NewSeedCommand(app *App) *SeedCommand {
	return &SeedCommand{app: app, errors: NewErrorHandler(app.logger)}
}

// Execute creates projects projects with up to maxTasks tasks each
func (c *SeedCommand) Execute(ctx context.Context, projects, maxTasks int) error {
	result, err := c.app.api.Seed(ctx, projects, maxTasks)
	if err != nil {
		return c.errors.Handle("seed", err)
	}
	fmt.Fprintf(c.app.out, "Seeded %d projects with %d tasks\n", result.Projects, result.Tasks)
	return nil
}
