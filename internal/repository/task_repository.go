package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktracker/internal/model"
)

// TaskRepository defines task persistence operations. Every read and write
// is scoped to an owning user; a task belonging to someone else is
// indistinguishable from a task that does not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter model.TaskFilter) ([]model.Task, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task record.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Update updates an existing task record.
func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// FindByIDAndOwner finds a task by id, restricted to the given owner.
func (r *taskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByOwner lists the owner's tasks narrowed by filter.
func (r *taskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter model.TaskFilter) ([]model.Task, error) {
	conds, args := BuildTaskQuery(ownerID, filter)

	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where(conds, args...).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// DeleteByIDAndOwner deletes a task by id, restricted to the given owner,
// and returns the number of rows removed.
func (r *taskRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Task{})
	return res.RowsAffected, res.Error
}
