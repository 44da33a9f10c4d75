package api

import (
	"context"

	"golang.org/x/text/language"

	"progress-tracker/internal/difficulty"
	"progress-tracker/internal/domain"
	"progress-tracker/internal/services"
)

// DifficultyInfo describes one difficulty tier for display.
type DifficultyInfo struct {
	Value  int    `json:"value"`
	Name   string `json:"name"`
	Label  string `json:"label"`
	Weight int    `json:"weight"`
}

// API defines every operation the command line and HTTP surfaces use.
type API interface {
	// Project operations
	CreateProject(ctx context.Context, name string) (*domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.ProjectDetail, error)
	ListProjects(ctx context.Context, page, perPage int) (*domain.ProjectPage, error)
	ProjectProgress(ctx context.Context, id int64) (float64, error)

	// Task operations
	CreateTask(ctx context.Context, projectID int64, title string, tier difficulty.Tier) (*domain.Task, error)
	ToggleTask(ctx context.Context, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ListProjectTasks(ctx context.Context, projectID int64) ([]domain.Task, error)

	// Sample data
	Seed(ctx context.Context, projects, maxTasks int) (*services.SeedResult, error)

	// Reference data and health
	Difficulties(locale language.Tag) []DifficultyInfo
	Ping(ctx context.Context) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type apiImpl struct {
	services       *services.ServiceContainer
	store          Pinger
	defaultPerPage int
}

// DefaultPerPage is the page size used when a caller asks for none.
const DefaultPerPage = 15

// New creates a new API instance over the service container.
// A non-positive defaultPerPage falls back to DefaultPerPage.
func New(container *services.ServiceContainer, store Pinger, defaultPerPage int) API {
	if defaultPerPage <= 0 {
		defaultPerPage = DefaultPerPage
	}
	return &apiImpl{
		services:       container,
		store:          store,
		defaultPerPage: defaultPerPage,
	}
}

func (a *apiImpl) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	return a.services.ProjectService.CreateProject(ctx, name)
}

func (a *apiImpl) GetProject(ctx context.Context, id int64) (*domain.ProjectDetail, error) {
	return a.services.ProjectService.GetProject(ctx, id)
}

// ListProjects treats a missing page as 1 and a missing page size as the default.
func (a *apiImpl) ListProjects(ctx context.Context, page, perPage int) (*domain.ProjectPage, error) {
	if page == 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = a.defaultPerPage
	}
	return a.services.ProjectService.ListProjects(ctx, page, perPage)
}

func (a *apiImpl) ProjectProgress(ctx context.Context, id int64) (float64, error) {
	return a.services.ProjectService.ProjectProgress(ctx, id)
}

func (a *apiImpl) CreateTask(ctx context.Context, projectID int64, title string, tier difficulty.Tier) (*domain.Task, error) {
	return a.services.TaskService.CreateTask(ctx, projectID, title, tier)
}

func (a *apiImpl) ToggleTask(ctx context.Context, id int64) (*domain.Task, error) {
	return a.services.TaskService.ToggleTask(ctx, id)
}

func (a *apiImpl) DeleteTask(ctx context.Context, id int64) error {
	return a.services.TaskService.DeleteTask(ctx, id)
}

func (a *apiImpl) ListProjectTasks(ctx context.Context, projectID int64) ([]domain.Task, error) {
	return a.services.TaskService.ListProjectTasks(ctx, projectID)
}

func (a *apiImpl) Seed(ctx context.Context, projects, maxTasks int) (*services.SeedResult, error) {
	return a.services.SeedService.Seed(ctx, projects, maxTasks)
}

// Difficulties lists every tier in declared order with labels in locale.
func (a *apiImpl) Difficulties(locale language.Tag) []DifficultyInfo {
	return Difficulties(locale)
}

func (a *apiImpl) Ping(ctx context.Context) error {
	return a.store.Ping(ctx)
}

// Difficulties lists every tier in declared order with labels in locale.
func Difficulties(locale language.Tag) []DifficultyInfo {
	tiers := difficulty.All()
	infos := make([]DifficultyInfo, len(tiers))
	for i, t := range tiers {
		infos[i] = DifficultyInfo{
			Value:  int(t),
			Name:   t.String(),
			Label:  t.LabelIn(locale),
			Weight: t.Weight(),
		}
	}
	return infos
}
