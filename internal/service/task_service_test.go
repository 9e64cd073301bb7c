package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/model"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter model.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestTaskService(repo *MockTaskRepository) TaskService {
	logger := log.New("test")
	logger.SetLevel(log.OFF)
	return NewTaskService(repo, logger)
}

func TestTaskService_GetTaskByID(t *testing.T) {
	ownerID := uuid.New()
	taskID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name: "found",
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByIDAndOwner", mock.Anything, taskID, ownerID).Return(&model.Task{
					ID:     taskID,
					UserID: ownerID,
				}, nil)
			},
		},
		{
			name: "missing or foreign-owned",
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByIDAndOwner", mock.Anything, taskID, ownerID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := newTestTaskService(mockRepo)
			task, err := service.GetTaskByID(context.Background(), taskID, ownerID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, task)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, taskID, task.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_GetTasks(t *testing.T) {
	ownerID := uuid.New()
	filter := model.TaskFilter{Status: model.TaskStatusOpen, Search: "report"}

	t.Run("delegates to the repository", func(t *testing.T) {
		expected := []model.Task{{Title: "Write report", Status: model.TaskStatusOpen, UserID: ownerID}}
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByOwner", mock.Anything, ownerID, filter).Return(expected, nil)

		service := newTestTaskService(mockRepo)
		tasks, err := service.GetTasks(context.Background(), filter, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, expected, tasks)
		mockRepo.AssertExpectations(t)
	})

	t.Run("storage failure is surfaced opaquely", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByOwner", mock.Anything, ownerID, filter).
			Return(nil, errors.New("dial tcp: connection refused"))

		service := newTestTaskService(mockRepo)
		tasks, err := service.GetTasks(context.Background(), filter, ownerID)

		assert.Error(t, err)
		assert.Nil(t, tasks)
		// The raw storage error must not map to any client-visible category.
		httpErr := apperrors.MapErrorToHTTP(err)
		assert.Equal(t, "INTERNAL_ERROR", httpErr.Code)
		assert.Equal(t, "internal server error", httpErr.Message)
	})
}

func TestTaskService_CreateTask(t *testing.T) {
	ownerID := uuid.New()

	mockRepo := new(MockTaskRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	service := newTestTaskService(mockRepo)
	task, err := service.CreateTask(context.Background(), "T", "D", ownerID)

	assert.NoError(t, err)
	assert.Equal(t, "T", task.Title)
	assert.Equal(t, "D", task.Description)
	assert.Equal(t, model.TaskStatusOpen, task.Status, "new tasks always start OPEN")
	assert.Equal(t, ownerID, task.UserID)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_UpdateTaskStatus(t *testing.T) {
	ownerID := uuid.New()
	taskID := uuid.New()

	t.Run("updates status on the owner's task", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, taskID, ownerID).Return(&model.Task{
			ID:     taskID,
			Status: model.TaskStatusOpen,
			UserID: ownerID,
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

		service := newTestTaskService(mockRepo)
		task, err := service.UpdateTaskStatus(context.Background(), taskID, model.TaskStatusDone, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, model.TaskStatusDone, task.Status)
		assert.Equal(t, ownerID, task.UserID, "owner never changes on update")
		mockRepo.AssertExpectations(t)
	})

	t.Run("foreign-owned task is not found", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, taskID, ownerID).Return(nil, gorm.ErrRecordNotFound)

		service := newTestTaskService(mockRepo)
		task, err := service.UpdateTaskStatus(context.Background(), taskID, model.TaskStatusDone, ownerID)

		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
		assert.Nil(t, task)
		mockRepo.AssertNotCalled(t, "Update")
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	ownerID := uuid.New()
	taskID := uuid.New()

	tests := []struct {
		name          string
		affected      int64
		expectedError error
	}{
		{name: "deleted", affected: 1},
		{name: "absent or foreign-owned", affected: 0, expectedError: apperrors.ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			mockRepo.On("DeleteByIDAndOwner", mock.Anything, taskID, ownerID).Return(tt.affected, nil)

			service := newTestTaskService(mockRepo)
			err := service.DeleteTask(context.Background(), taskID, ownerID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
