package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"progress-tracker/internal/config"
	"progress-tracker/internal/httpserver"
)

// Seed defaults
const (
	DefaultSeedProjects = 40
	DefaultSeedMaxTasks = 50
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	build   Builder
	out     io.Writer
	config  *config.Config
	runtime *Runtime
	app     *App
}

// NewRootCommand creates the root cobra command with global flags. The
// store is only opened, through build, by commands that need it.
func NewRootCommand(build Builder, out io.Writer) *RootCommand {
	if out == nil {
		out = os.Stdout
	}
	root := &RootCommand{build: build, out: out}

	root.cmd = &cobra.Command{
		Use:   "pt",
		Short: "Track project progress weighted by task difficulty",
		Long: `Progress Tracker (pt) keeps projects and their tasks and reports how far
each project has come. Every task has a difficulty: low weighs 1, medium 4
and high 12. Progress is the completed weight over the total weight.

EXAMPLES:
  pt project add "Website relaunch"     # Create a project
  pt task add 1 high "Build checkout"    # Add a high difficulty task to project 1
  pt task toggle 3                       # Mark task 3 completed (or open again)
  pt project show 1                      # Tasks and progress of project 1
  pt project list --page 2               # Second page of projects
  pt seed                                # Fill the database with sample data
  pt serve --addr :8080                  # Run the HTTP API

CONFIGURATION:
  Priority order: command-line flags > PT_* environment variables > config file > defaults
  The config file is read from --config or PT_CONFIG.

  PT_DB_DRIVER                           sqlite or postgres (default: sqlite)
  PT_DB_DIR, PT_DB_FILENAME              SQLite location (default: ~/.pt/pt.db)
  PT_DB_DSN                              PostgreSQL connection string
  PT_PROGRESS_STRATEGY                   aggregate or memory (default: aggregate)
  PT_SERVER_ADDR                         HTTP listen address (default: :8080)
  PT_LOG_LEVEL                           debug, info, warn or error (default: info)
  PT_APP_LOCALE                          Difficulty label locale (default: pt-BR)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
	}

	root.cmd.SetOut(out)
	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the cobra command, mainly for tests
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and releases whatever it opened
func (r *RootCommand) Execute(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.runtime != nil && r.runtime.Close != nil {
		if closeErr := r.runtime.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "YAML config file (overrides PT_CONFIG)")

	// Database configuration
	flags.String("db-driver", "", "Database driver: sqlite or postgres (overrides PT_DB_DRIVER)")
	flags.String("db-dir", "", "SQLite database directory (overrides PT_DB_DIR)")
	flags.String("db-filename", "", "SQLite database filename (overrides PT_DB_FILENAME)")
	flags.String("db-dsn", "", "PostgreSQL connection string (overrides PT_DB_DSN)")

	// Progress and server configuration
	flags.String("strategy", "", "Progress strategy: aggregate or memory (overrides PT_PROGRESS_STRATEGY)")
	flags.String("addr", "", "HTTP listen address (overrides PT_SERVER_ADDR)")

	// Application configuration
	flags.String("log-level", "", "Log level (overrides PT_LOG_LEVEL)")
	flags.Duration("app-timeout", 0, "Application timeout (overrides PT_APP_TIMEOUT)")
	flags.String("locale", "", "Difficulty label locale (overrides PT_APP_LOCALE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	projectAddCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewProjectAddCommand(app).Execute(ctx, args)
		},
	}

	projectListCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects with their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			page, _ := cmd.Flags().GetInt("page")
			perPage, _ := cmd.Flags().GetInt("per-page")
			return NewProjectListCommand(app).Execute(ctx, page, perPage)
		},
	}
	projectListCmd.Flags().Int("page", 1, "Page number")
	projectListCmd.Flags().Int("per-page", 0, "Projects per page (default from PT_SERVER_DEFAULT_PER_PAGE)")

	projectShowCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a project with its tasks and progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewProjectShowCommand(app).Execute(ctx, args)
		},
	}
	projectCmd.AddCommand(projectAddCmd, projectListCmd, projectShowCmd)

	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	taskAddCmd := &cobra.Command{
		Use:   "add [project-id] [difficulty] [title]",
		Short: "Add a task to a project",
		Long: `Add a task to a project.

Difficulty is low, medium or high, or its stored value 1, 2 or 3.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewTaskAddCommand(app).Execute(ctx, args)
		},
	}

	taskToggleCmd := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Mark a task completed, or open again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewTaskToggleCommand(app).Execute(ctx, args)
		},
	}

	taskDeleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewTaskDeleteCommand(app).Execute(ctx, args)
		},
	}
	taskCmd.AddCommand(taskAddCmd, taskToggleCmd, taskDeleteCmd)

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with sample projects and tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			// Seeding writes many rows, so it gets a longer timeout
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout()*2)
			defer cancel()

			projects, _ := cmd.Flags().GetInt("projects")
			maxTasks, _ := cmd.Flags().GetInt("max-tasks")
			return NewSeedCommand(app).Execute(ctx, projects, maxTasks)
		},
	}
	seedCmd.Flags().Int("projects", DefaultSeedProjects, "Number of projects to create")
	seedCmd.Flags().Int("max-tasks", DefaultSeedMaxTasks, "Maximum tasks per project")

	difficultiesCmd := &cobra.Command{
		Use:   "difficulties",
		Short: "List difficulty tiers and their weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewDifficultiesCommand(NewApp(nil, r.config, nil, r.out)).Execute()
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return r.serve(ctx, app)
		},
	}

	r.cmd.AddCommand(
		projectCmd,
		taskCmd,
		seedCmd,
		difficultiesCmd,
		serveCmd,
	)
}

func (r *RootCommand) serve(ctx context.Context, app *App) error {
	if !r.config.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := httpserver.NewHandler(app.api, app.logger, app.locale())
	router := httpserver.NewRouter(app.api, handler, app.logger)

	srv := httpserver.NewServer(router, httpserver.ServerOptions{
		Addr:            r.config.Server.Addr,
		ReadTimeout:     r.config.Server.ReadTimeout,
		WriteTimeout:    r.config.Server.WriteTimeout,
		ShutdownTimeout: r.config.Server.ShutdownTimeout,
	}, app.logger)
	return srv.Run(ctx)
}

// ensureApp builds the runtime on first use
func (r *RootCommand) ensureApp(ctx context.Context) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	if r.build == nil {
		return nil, fmt.Errorf("no runtime builder configured")
	}

	rt, err := r.build(ctx, r.config)
	if err != nil {
		return nil, err
	}
	r.runtime = rt
	r.app = NewApp(rt.API, r.config, rt.Logger, r.out)
	return r.app, nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// loadConfig runs the config cascade with the flags set on this invocation
func (r *RootCommand) loadConfig() error {
	flags := r.cmd.PersistentFlags()
	path, _ := flags.GetString("config")

	overrides := &config.ConfigOverrides{}
	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	overrides.DBDriver = stringFlag("db-driver")
	overrides.DBDir = stringFlag("db-dir")
	overrides.DBFilename = stringFlag("db-filename")
	overrides.DBDSN = stringFlag("db-dsn")
	overrides.Strategy = stringFlag("strategy")
	overrides.Addr = stringFlag("addr")
	overrides.LogLevel = stringFlag("log-level")
	overrides.Locale = stringFlag("locale")
	if flags.Changed("app-timeout") {
		timeout, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &timeout
	}

	cfg, err := config.NewLoader().LoadWithOverrides(path, overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg
	return nil
}
