package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/model"
	"tasktracker/internal/repository"
)

// TaskService exposes owner-scoped task operations. Every method takes the
// authenticated owner explicitly; there is no way to reach another user's
// tasks through this interface.
type TaskService interface {
	GetTaskByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
	GetTasks(ctx context.Context, filter model.TaskFilter, ownerID uuid.UUID) ([]model.Task, error)
	CreateTask(ctx context.Context, title, description string, ownerID uuid.UUID) (*model.Task, error)
	UpdateTaskStatus(ctx context.Context, id uuid.UUID, status model.TaskStatus, ownerID uuid.UUID) (*model.Task, error)
	DeleteTask(ctx context.Context, id, ownerID uuid.UUID) error
}

type taskService struct {
	taskRepo repository.TaskRepository
	logger   echo.Logger
}

// NewTaskService builds a TaskService with repository and logger.
func NewTaskService(taskRepo repository.TaskRepository, logger echo.Logger) TaskService {
	return &taskService{taskRepo: taskRepo, logger: logger}
}

// GetTaskByID returns the owner's task with the given id. A task owned by a
// different user yields the same not-found error as a missing one.
func (s *taskService) GetTaskByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	task, err := s.taskRepo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// GetTasks lists the owner's tasks narrowed by filter. Storage failures are
// logged with the owner and filter for diagnosis and surfaced opaquely.
func (s *taskService) GetTasks(ctx context.Context, filter model.TaskFilter, ownerID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.taskRepo.FindByOwner(ctx, ownerID, filter)
	if err != nil {
		s.logger.Errorj(log.JSON{
			"message": "failed to get tasks",
			"owner":   ownerID.String(),
			"status":  string(filter.Status),
			"search":  filter.Search,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask persists a new task for the owner. Status always starts at
// OPEN; callers cannot choose an initial status.
func (s *taskService) CreateTask(ctx context.Context, title, description string, ownerID uuid.UUID) (*model.Task, error) {
	task := &model.Task{
		Title:       title,
		Description: description,
		Status:      model.TaskStatusOpen,
		UserID:      ownerID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// UpdateTaskStatus reassigns the status of the owner's task. The fetch goes
// through GetTaskByID, so foreign-owner semantics are identical.
func (s *taskService) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status model.TaskStatus, ownerID uuid.UUID) (*model.Task, error) {
	task, err := s.GetTaskByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	task.Status = status

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes the owner's task. Zero affected rows means the task was
// absent or foreign-owned, both reported as not found.
func (s *taskService) DeleteTask(ctx context.Context, id, ownerID uuid.UUID) error {
	affected, err := s.taskRepo.DeleteByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
