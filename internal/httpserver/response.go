package httpserver

import (
	"time"

	"golang.org/x/text/language"

	"progress-tracker/internal/domain"
)

type projectResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type projectSummaryResponse struct {
	projectResponse
	Progress float64 `json:"progress"`
}

type projectDetailResponse struct {
	projectResponse
	Progress float64        `json:"progress"`
	Tasks    []taskResponse `json:"tasks"`
}

type projectPageResponse struct {
	Data     []projectSummaryResponse `json:"data"`
	Page     int                      `json:"page"`
	PerPage  int                      `json:"per_page"`
	Total    int64                    `json:"total"`
	LastPage int                      `json:"last_page"`
}

type taskResponse struct {
	ID              int64     `json:"id"`
	ProjectID       int64     `json:"project_id"`
	Title           string    `json:"title"`
	Difficulty      int       `json:"difficulty"`
	DifficultyLabel string    `json:"difficulty_label"`
	Completed       bool      `json:"completed"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func newProjectResponse(p domain.Project) projectResponse {
	return projectResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func newTaskResponse(t domain.Task, locale language.Tag) taskResponse {
	return taskResponse{
		ID:              t.ID,
		ProjectID:       t.ProjectID,
		Title:           t.Title,
		Difficulty:      int(t.Difficulty),
		DifficultyLabel: t.Difficulty.LabelIn(locale),
		Completed:       t.Completed,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func newProjectDetailResponse(d *domain.ProjectDetail, locale language.Tag) projectDetailResponse {
	tasks := make([]taskResponse, len(d.Tasks))
	for i, t := range d.Tasks {
		tasks[i] = newTaskResponse(t, locale)
	}
	return projectDetailResponse{
		projectResponse: newProjectResponse(d.Project),
		Progress:        d.Progress,
		Tasks:           tasks,
	}
}

func newProjectPageResponse(p *domain.ProjectPage) projectPageResponse {
	data := make([]projectSummaryResponse, len(p.Projects))
	for i, s := range p.Projects {
		data[i] = projectSummaryResponse{
			projectResponse: newProjectResponse(s.Project),
			Progress:        s.Progress,
		}
	}
	return projectPageResponse{
		Data:     data,
		Page:     p.Page,
		PerPage:  p.PerPage,
		Total:    p.Total,
		LastPage: p.LastPage(),
	}
}
