package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"progress-tracker/internal/api"
	"progress-tracker/internal/errors"
)

// ProjectAddCommand creates a project
type ProjectAddCommand struct {
	app    *App
	errors *ErrorHandler
}

// NewProjectAddCommand creates a new project add command handler
func NewProjectAddCommand(app *App) *ProjectAddCommand {
	return &ProjectAddCommand{app: app, errors: NewErrorHandler(app.logger)}
}

// Execute joins the arguments into the project name
func (c *ProjectAddCommand) Execute(ctx context.Context, args []string) error {
	project, err := c.app.api.CreateProject(ctx, strings.Join(args, " "))
	if err != nil {
		return c.errors.Handle("create project", err)
	}
	fmt.Fprintf(c.app.out, "Created project %d: %s\n", project.ID, project.Name)
	return nil
}

// ProjectListCommand prints one page of projects with their progress
type ProjectListCommand struct {
	app    *App
	errors *ErrorHandler
}

// NewProjectListCommand creates a new project list command handler
func NewProjectListCommand(app *App) *ProjectListCommand {
	return &ProjectListCommand{app: app, errors: NewErrorHandler(app.logger)}
}

// Execute lists the requested page. Zero values select the defaults.
func (c *ProjectListCommand) Execute(ctx context.Context, page, perPage int) error {
	result, err := c.app.api.ListProjects(ctx, page, perPage)
	if err != nil {
		return c.errors.Handle("list projects", err)
	}

	if len(result.Projects) == 0 {
		fmt.Fprintln(c.app.out, "No projects found")
		return nil
	}

	for _, p := range result.Projects {
		fmt.Fprintf(c.app.out, "%4d  %6.2f%%  %s\n", p.ID, p.Progress, p.Name)
	}
	fmt.Fprintf(c.app.out, "Page %d of %d (%d projects)\n", result.Page, result.LastPage(), result.Total)
	return nil
}

// ProjectShowCommand prints a project, its tasks and its progress
type ProjectShowCommand struct {
	app    *App
	errors *ErrorHandler
}

// NewProjectShowCommand creates a new project show command handler
func NewProjectShowCommand(app *App) *ProjectShowCommand {
	return &ProjectShowCommand{app: app, errors: NewErrorHandler(app.logger)}
}

// Execute expects a single project id argument
func (c *ProjectShowCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID("project_id", args)
	if err != nil {
		return c.errors.Handle("show project", err)
	}

	detail, err := c.app.api.GetProject(ctx, id)
	if err != nil {
		return c.errors.Handle("show project", err)
	}

	fmt.Fprintf(c.app.out, "Project %d: %s\n", detail.ID, detail.Name)
	fmt.Fprintf(c.app.out, "Progress: %.2f%%\n", detail.Progress)
	if len(detail.Tasks) == 0 {
		fmt.Fprintln(c.app.out, "No tasks")
		return nil
	}

	locale := c.app.locale()
	for _, t := range detail.Tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(c.app.out, "[%s] %4d  %-6s  %s\n", mark, t.ID, t.Difficulty.LabelIn(locale), t.Title)
	}
	return nil
}

// DifficultiesCommand prints the tiers with their labels and weights
type DifficultiesCommand struct {
	app *App
}

// NewDifficultiesCommand creates a new difficulties command handler
func NewDifficultiesCommand(app *App) *DifficultiesCommand {
	return &DifficultiesCommand{app: app}
}

// Execute writes one line per tier
func (c *DifficultiesCommand) Execute() error {
	for _, d := range api.Difficulties(c.app.locale()) {
		fmt.Fprintf(c.app.out, "%d  %-6s  %-6s  weight %d\n", d.Value, d.Name, d.Label, d.Weight)
	}
	return nil
}

func parseID(field string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.NewInvalidInputError(field, args, "exactly one id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError(field, args[0], "must be a positive integer")
	}
	return id, nil
}
