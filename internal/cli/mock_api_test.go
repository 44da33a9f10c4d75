package cli

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/language"

	"progress-tracker/internal/api"
	"progress-tracker/internal/difficulty"
	"progress-tracker/internal/domain"
	"progress-tracker/internal/errors"
	"progress-tracker/internal/progress"
	"progress-tracker/internal/services"
)

// mockAPI implements api.API in memory for command tests
type mockAPI struct {
	projects   map[int64]*domain.Project
	tasks      map[int64]*domain.Task
	nextID     int64
	seedCalls  [][2]int
	pingErr    error
	failCreate error
}

func newMockAPI() *mockAPI {
	return &mockAPI{
		projects: make(map[int64]*domain.Project),
		tasks:    make(map[int64]*domain.Task),
		nextID:   1,
	}
}

func (m *mockAPI) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *mockAPI) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	if m.failCreate != nil {
		return nil, m.failCreate
	}
	if name == "" {
		return nil, errors.NewValidationError("invalid project", fmt.Errorf("name is required"))
	}
	p := &domain.Project{ID: m.id(), Name: name}
	m.projects[p.ID] = p
	return p, nil
}

func (m *mockAPI) projectTasks(projectID int64) []domain.Task {
	var tasks []domain.Task
	for _, t := range m.tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, *t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func (m *mockAPI) GetProject(ctx context.Context, id int64) (*domain.ProjectDetail, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, errors.NewNotFoundError("project", fmt.Sprint(id))
	}
	tasks := m.projectTasks(id)
	return &domain.ProjectDetail{Project: *p, Tasks: tasks, Progress: progress.Compute(tasks)}, nil
}

func (m *mockAPI) ListProjects(ctx context.Context, page, perPage int) (*domain.ProjectPage, error) {
	if page == 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = api.DefaultPerPage
	}
	ids := make([]int64, 0, len(m.projects))
	for id := range m.projects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := &domain.ProjectPage{Page: page, PerPage: perPage, Total: int64(len(ids))}
	for i := (page - 1) * perPage; i < len(ids) && i < page*perPage; i++ {
		p := m.projects[ids[i]]
		result.Projects = append(result.Projects, domain.ProjectSummary{
			Project:  *p,
			Progress: progress.Compute(m.projectTasks(p.ID)),
		})
	}
	return result, nil
}

func (m *mockAPI) ProjectProgress(ctx context.Context, id int64) (float64, error) {
	if _, ok := m.projects[id]; !ok {
		return 0, errors.NewNotFoundError("project", fmt.Sprint(id))
	}
	return progress.Compute(m.projectTasks(id)), nil
}

func (m *mockAPI) CreateTask(ctx context.Context, projectID int64, title string, tier difficulty.Tier) (*domain.Task, error) {
	if _, ok := m.projects[projectID]; !ok {
		return nil, errors.NewNotFoundError("project", fmt.Sprint(projectID))
	}
	t := domain.NewTask(projectID, title, tier)
	t.ID = m.id()
	m.tasks[t.ID] = &t
	return &t, nil
}

func (m *mockAPI) ToggleTask(ctx context.Context, id int64) (*domain.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", fmt.Sprint(id))
	}
	toggled := *t
	toggled.Completed = !toggled.Completed
	m.tasks[id] = &toggled
	return &toggled, nil
}

func (m *mockAPI) DeleteTask(ctx context.Context, id int64) error {
	if _, ok := m.tasks[id]; !ok {
		return errors.NewNotFoundError("task", fmt.Sprint(id))
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockAPI) ListProjectTasks(ctx context.Context, projectID int64) ([]domain.Task, error) {
	return m.projectTasks(projectID), nil
}

func (m *mockAPI) Seed(ctx context.Context, projects, maxTasks int) (*services.SeedResult, error) {
	m.seedCalls = append(m.seedCalls, [2]int{projects, maxTasks})
	return &services.SeedResult{Projects: projects, Tasks: projects * maxTasks / 2}, nil
}

func (m *mockAPI) Difficulties(locale language.Tag) []api.DifficultyInfo {
	return api.Difficulties(locale)
}

func (m *mockAPI) Ping(ctx context.Context) error {
	return m.pingErr
}
