package sqlite

import (
	"time"

	"progress-tracker/internal/repository"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*repository.Project, error) {
	project := &repository.Project{}
	var createdAt, updatedAt string

	if err := scanner.Scan(&project.ID, &project.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := parseTimestamps(createdAt, updatedAt, &project.CreatedAt, &project.UpdatedAt); err != nil {
		return nil, err
	}
	return project, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*repository.Project, error) {
	projects := []*repository.Project{}
	for rows.Next() {
		project, err := ScanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

// ScanProjectEffort scans a project row followed by its completed and total effort
func ScanProjectEffort(scanner Scanner) (*repository.ProjectEffort, error) {
	pe := &repository.ProjectEffort{}
	var createdAt, updatedAt string

	err := scanner.Scan(
		&pe.ID,
		&pe.Name,
		&createdAt,
		&updatedAt,
		&pe.Effort.Completed,
		&pe.Effort.Total,
	)
	if err != nil {
		return nil, err
	}
	if err := parseTimestamps(createdAt, updatedAt, &pe.CreatedAt, &pe.UpdatedAt); err != nil {
		return nil, err
	}
	return pe, nil
}

// ScanProjectEfforts scans multiple project effort rows
func ScanProjectEfforts(rows Rows) ([]*repository.ProjectEffort, error) {
	results := []*repository.ProjectEffort{}
	for rows.Next() {
		pe, err := ScanProjectEffort(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, pe)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*repository.Task, error) {
	task := &repository.Task{}
	var createdAt, updatedAt string

	err := scanner.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&task.Difficulty,
		&task.Completed,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := parseTimestamps(createdAt, updatedAt, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*repository.Task, error) {
	tasks := []*repository.Task{}
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

func parseTimestamps(createdRaw, updatedRaw string, created, updated *time.Time) error {
	c, err := ParseTimeFromDB(createdRaw)
	if err != nil {
		return err
	}
	u, err := ParseTimeFromDB(updatedRaw)
	if err != nil {
		return err
	}
	*created, *updated = c, u
	return nil
}
