package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tasktracker/internal/auth"
	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/model"
)

// MockTaskService is a mock implementation of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) GetTaskByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) GetTasks(ctx context.Context, filter model.TaskFilter, ownerID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, filter, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) CreateTask(ctx context.Context, title, description string, ownerID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, title, description, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status model.TaskStatus, ownerID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id, status, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(t *testing.T, method, target string, body string, ownerID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(auth.ClaimsContextKey, &auth.Claims{UserID: ownerID, Username: "alice"})
	return c, rec
}

func TestTaskHandler_CreateTask(t *testing.T) {
	ownerID := uuid.New()
	mockService := new(MockTaskService)
	mockService.On("CreateTask", mock.Anything, "T", "D", ownerID).Return(&model.Task{
		ID:          uuid.New(),
		Title:       "T",
		Description: "D",
		Status:      model.TaskStatusOpen,
		UserID:      ownerID,
	}, nil)

	h := NewTaskHandler(mockService)
	c, rec := newTestContext(t, http.MethodPost, "/api/tasks", `{"title":"T","description":"D"}`, ownerID)

	assert.NoError(t, h.CreateTask(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var task model.Task
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, model.TaskStatusOpen, task.Status)
	assert.Equal(t, ownerID, task.UserID)
	mockService.AssertExpectations(t)
}

func TestTaskHandler_CreateTaskMissingTitle(t *testing.T) {
	mockService := new(MockTaskService)
	h := NewTaskHandler(mockService)
	c, _ := newTestContext(t, http.MethodPost, "/api/tasks", `{"description":"D"}`, uuid.New())

	err := h.CreateTask(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	mockService.AssertNotCalled(t, "CreateTask")
}

func TestTaskHandler_GetTaskNotFound(t *testing.T) {
	ownerID := uuid.New()
	taskID := uuid.New()

	mockService := new(MockTaskService)
	mockService.On("GetTaskByID", mock.Anything, taskID, ownerID).Return(nil, apperrors.ErrTaskNotFound)

	h := NewTaskHandler(mockService)
	c, _ := newTestContext(t, http.MethodGet, "/api/tasks/"+taskID.String(), "", ownerID)
	c.SetParamNames("id")
	c.SetParamValues(taskID.String())

	err := h.GetTask(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	mockService.AssertExpectations(t)
}

func TestTaskHandler_ListTasksInvalidStatus(t *testing.T) {
	mockService := new(MockTaskService)
	h := NewTaskHandler(mockService)
	c, _ := newTestContext(t, http.MethodGet, "/api/tasks?status=BOGUS", "", uuid.New())

	err := h.ListTasks(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	mockService.AssertNotCalled(t, "GetTasks")
}

func TestTaskHandler_ListTasksPassesFilter(t *testing.T) {
	ownerID := uuid.New()
	filter := model.TaskFilter{Status: model.TaskStatusOpen, Search: "report"}

	mockService := new(MockTaskService)
	mockService.On("GetTasks", mock.Anything, filter, ownerID).Return([]model.Task{}, nil)

	h := NewTaskHandler(mockService)
	c, rec := newTestContext(t, http.MethodGet, "/api/tasks?status=OPEN&search=report", "", ownerID)

	assert.NoError(t, h.ListTasks(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	ownerID := uuid.New()
	taskID := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		mockService := new(MockTaskService)
		mockService.On("DeleteTask", mock.Anything, taskID, ownerID).Return(nil)

		h := NewTaskHandler(mockService)
		c, rec := newTestContext(t, http.MethodDelete, "/api/tasks/"+taskID.String(), "", ownerID)
		c.SetParamNames("id")
		c.SetParamValues(taskID.String())

		assert.NoError(t, h.DeleteTask(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := new(MockTaskService)
		mockService.On("DeleteTask", mock.Anything, taskID, ownerID).Return(apperrors.ErrTaskNotFound)

		h := NewTaskHandler(mockService)
		c, _ := newTestContext(t, http.MethodDelete, "/api/tasks/"+taskID.String(), "", ownerID)
		c.SetParamNames("id")
		c.SetParamValues(taskID.String())

		err := h.DeleteTask(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})
}

func TestTaskHandler_UpdateTaskStatus(t *testing.T) {
	ownerID := uuid.New()
	taskID := uuid.New()

	mockService := new(MockTaskService)
	mockService.On("UpdateTaskStatus", mock.Anything, taskID, model.TaskStatusDone, ownerID).Return(&model.Task{
		ID:     taskID,
		Status: model.TaskStatusDone,
		UserID: ownerID,
	}, nil)

	h := NewTaskHandler(mockService)
	c, rec := newTestContext(t, http.MethodPatch, "/api/tasks/"+taskID.String()+"/status", `{"status":"DONE"}`, ownerID)
	c.SetParamNames("id")
	c.SetParamValues(taskID.String())

	assert.NoError(t, h.UpdateTaskStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var task model.Task
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, model.TaskStatusDone, task.Status)
	mockService.AssertExpectations(t)
}

func TestTaskHandler_MissingClaims(t *testing.T) {
	mockService := new(MockTaskService)
	h := NewTaskHandler(mockService)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.ListTasks(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	mockService.AssertNotCalled(t, "GetTasks")
}
