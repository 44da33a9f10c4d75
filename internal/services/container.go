package services

import (
	"go.uber.org/zap"

	"progress-tracker/internal/config"
	"progress-tracker/internal/progress"
	"progress-tracker/internal/repository"
)

// NewServiceContainer wires every service over one store and calculator.
// cfg may be nil, in which case default validation limits apply.
func NewServiceContainer(store repository.Store, calc *progress.Calculator, cfg *config.Config, logger *zap.Logger) *ServiceContainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	tasks := NewTaskService(store, cfg, logger)
	return &ServiceContainer{
		ProjectService: NewProjectService(store, calc, cfg, logger),
		TaskService:    tasks,
		SeedService:    NewSeedService(store, tasks, nil, logger),
	}
}
