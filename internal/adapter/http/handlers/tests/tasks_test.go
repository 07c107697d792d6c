package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/core/domain"
	"taskmanager/pkg/apierrors"
	"taskmanager/pkg/translator"
)

func newRouter(tasks *taskServiceMock, users *userServiceMock) *gin.Engine {
	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(storeStatusStub{}),
		Tasks:  handlers.NewTaskHandler(tasks),
		Users:  handlers.NewUserHandler(users),
	})
	return router
}

func serve(router *gin.Engine, method, target, body, lang string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", lang)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apierrors.JsonErr {
	t.Helper()
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, rec.Code, got.ErrDetails.Code)
	return got
}

func sampleTask() domain.Task {
	description := "ship endpoint"
	assignee := int64(2)
	assigneeName := "Ada Lovelace"
	dueDate := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	return domain.Task{
		ID:           1,
		Title:        "Build API",
		Description:  &description,
		Status:       domain.TaskStatusInProgress,
		Priority:     domain.TaskPriorityHigh,
		DueDate:      &dueDate,
		AssignedTo:   &assignee,
		AssigneeName: &assigneeName,
		CreatedAt:    time.Date(2026, 2, 13, 10, 20, 30, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 2, 13, 11, 20, 30, 123456000, time.UTC),
	}
}

func TestTaskHandler_ListTasks_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, domain.TaskListParams{
		Filter: domain.TaskFilter{
			Statuses:   []domain.TaskStatus{domain.TaskStatusTodo, domain.TaskStatusInProgress},
			AssignedTo: domain.AssigneeFilter{UserIDs: []int64{2}, Unassigned: true},
			Search:     "api",
		},
		Sort:   "priority",
		Order:  domain.SortAsc,
		Limit:  10,
		Offset: 20,
	}).Return(domain.TaskPage{Tasks: []domain.Task{sampleTask()}, Total: 21, Limit: 10, Offset: 20}, nil).Once()

	router := newRouter(serviceMock, new(userServiceMock))
	rec := serve(router, http.MethodGet,
		"/api/tasks?status=todo,in-progress&assigned_to=2,null&search=api&sort=priority&order=asc&limit=10&offset=20", "", translator.LanguageEn)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "21", rec.Header().Get(handlers.TotalCountHeader))

	var got dto.TaskListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, int64(21), got.Total)
	require.Equal(t, 10, got.Limit)
	require.Equal(t, 20, got.Offset)
	require.Len(t, got.Items, 1)

	item := got.Items[0]
	require.Equal(t, int64(1), item.ID)
	require.Equal(t, "Build API", item.Title)
	require.Equal(t, "ship endpoint", *item.Description)
	require.Equal(t, "in-progress", item.Status)
	require.Equal(t, "high", item.Priority)
	require.Equal(t, "2026-02-20", *item.DueDate)
	require.Equal(t, int64(2), *item.AssignedTo)
	require.Equal(t, "Ada Lovelace", *item.AssigneeName)
	require.Equal(t, "2026-02-13T10:20:30Z", item.CreatedAt)
	require.Equal(t, "2026-02-13T11:20:30.123456Z", item.UpdatedAt)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_EmptyItemsIsArray(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, mock.Anything).Return(domain.TaskPage{Limit: 20}, nil).Once()

	rec := serve(newRouter(serviceMock, new(userServiceMock)), http.MethodGet, "/api/tasks", "", translator.LanguageEn)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[],"total":0,"limit":20,"offset":0}`, rec.Body.String())
}

func TestTaskHandler_ListTasks_InvalidSort(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, mock.Anything).Return(domain.TaskPage{}, domain.ErrInvalidSortField).Once()

	rec := serve(newRouter(serviceMock, new(userServiceMock)), http.MethodGet, "/api/tasks?sort=password", "", translator.LanguageEn)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Unknown sort field.", decodeError(t, rec).ErrDetails.Message)
}

func TestTaskHandler_ListTasks_InvalidQuery(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newRouter(serviceMock, new(userServiceMock))

	for _, target := range []string{"/api/tasks?limit=abc", "/api/tasks?due_date_from=tomorrow"} {
		rec := serve(router, http.MethodGet, target, "", translator.LanguageEn)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		require.Equal(t, "Invalid query parameters.", decodeError(t, rec).ErrDetails.Message)
	}
	serviceMock.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything)
}

func TestTaskHandler_ListTasks_ClampsNegativePaging(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, mock.MatchedBy(func(p domain.TaskListParams) bool {
		return p.Limit == domain.DefaultTaskLimit && p.Offset == 0 && len(p.Filter.Search) == 300
	})).Return(domain.TaskPage{Limit: domain.DefaultTaskLimit}, nil).Once()

	target := "/api/tasks?limit=-5&offset=-3&search=" + strings.Repeat("a", 300)
	rec := serve(newRouter(serviceMock, new(userServiceMock)), http.MethodGet, target, "", translator.LanguageEn)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_Error(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, mock.Anything).Return(domain.TaskPage{}, errors.New("db is down")).Once()

	rec := serve(newRouter(serviceMock, new(userServiceMock)), http.MethodGet, "/api/tasks", "", translator.LanguageFr)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Impossible de récupérer les tâches.", decodeError(t, rec).ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTask(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, int64(1)).Return(sampleTask(), nil).Once()
	serviceMock.On("GetTask", mock.Anything, int64(999)).Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	router := newRouter(serviceMock, new(userServiceMock))

	rec := serve(router, http.MethodGet, "/api/tasks/1", "", translator.LanguageEn)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodGet, "/api/tasks/999", "", translator.LanguageEn)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Task not found.", decodeError(t, rec).ErrDetails.Message)

	rec = serve(router, http.MethodGet, "/api/tasks/abc", "", translator.LanguageEn)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid task id.", decodeError(t, rec).ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, domain.CreateTaskInput{
		Title:    "Build API",
		Status:   domain.TaskStatusTodo,
		Priority: domain.TaskPriorityHigh,
	}).Return(sampleTask(), nil).Once()

	rec := serve(newRouter(serviceMock, new(userServiceMock)), http.MethodPost, "/api/tasks",
		`{"title":"  Build API ","priority":"high"}`, translator.LanguageEn)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, int64(1), got.ID)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_InvalidPayload(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newRouter(serviceMock, new(userServiceMock))

	rec := serve(router, http.MethodPost, "/api/tasks", `{"title":"","status":"blocked"}`, translator.LanguageEn)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	got := decodeError(t, rec)
	require.Equal(t, "Invalid task payload.", got.ErrDetails.Message)
	require.Len(t, got.ErrDetails.Details, 2)

	rec = serve(router, http.MethodPost, "/api/tasks", `{"title":"t","owner":"me"}`, translator.LanguageEn)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	got = decodeError(t, rec)
	require.Equal(t, "Unknown field in request body.", got.ErrDetails.Message)
	require.Equal(t, []string{"owner"}, got.ErrDetails.Details)

	serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestTaskHandler_CreateTask_UnknownAssignee(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, mock.Anything).Return(domain.Task{}, domain.ErrAssigneeNotFound).Once()

	rec := serve(newRouter(serviceMock, new(userServiceMock)), http.MethodPost, "/api/tasks",
		`{"title":"t","assigned_to":42}`, translator.LanguageEn)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Assigned user does not exist.", decodeError(t, rec).ErrDetails.Message)
}

func TestTaskHandler_UpdateTask_PassesExpectedTimestamp(t *testing.T) {
	expected := time.Date(2026, 2, 13, 11, 20, 30, 123456000, time.UTC)
	status := domain.TaskStatusDone

	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, int64(1), domain.TaskPatch{Status: &status, DescriptionSet: true}, &expected).
		Return(sampleTask(), nil).Twice()
	router := newRouter(serviceMock, new(userServiceMock))

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		rec := serve(router, method, "/api/tasks/1",
			`{"status":"done","description":null,"updated_at":"2026-02-13T11:20:30.123456Z"}`, translator.LanguageEn)
		require.Equal(t, http.StatusOK, rec.Code, method)
	}
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_Errors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"conflict", domain.ErrTaskModified, http.StatusConflict, "Task was modified by someone else. Reload it and try again."},
		{"not found", domain.ErrTaskNotFound, http.StatusNotFound, "Task not found."},
		{"empty patch", domain.ErrEmptyPatch, http.StatusBadRequest, "No updatable field was provided."},
		{"internal", errors.New("deadlock"), http.StatusInternalServerError, "Could not update the task."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			serviceMock.On("UpdateTask", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(domain.Task{}, tc.err).Once()

			rec := serve(newRouter(serviceMock, new(userServiceMock)), http.MethodPut, "/api/tasks/5",
				`{"updated_at":"2026-02-13T11:20:30Z"}`, translator.LanguageEn)

			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, tc.message, decodeError(t, rec).ErrDetails.Message)
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_UpdateTask_RejectsReadOnlyFields(t *testing.T) {
	serviceMock := new(taskServiceMock)

	rec := serve(newRouter(serviceMock, new(userServiceMock)), http.MethodPatch, "/api/tasks/5",
		`{"title":"t","created_at":"2026-01-01T00:00:00Z"}`, translator.LanguageEn)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"created_at"}, decodeError(t, rec).ErrDetails.Details)
	serviceMock.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTask", mock.Anything, int64(3)).Return(nil).Once()
	serviceMock.On("DeleteTask", mock.Anything, int64(3)).Return(domain.ErrTaskNotFound).Once()
	router := newRouter(serviceMock, new(userServiceMock))

	rec := serve(router, http.MethodDelete, "/api/tasks/3", "", translator.LanguageEn)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = serve(router, http.MethodDelete, "/api/tasks/3", "", translator.LanguageEn)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, http.MethodDelete, "/api/tasks/0", "", translator.LanguageEn)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestRouter_UnknownRoute(t *testing.T) {
	rec := serve(newRouter(new(taskServiceMock), new(userServiceMock)), http.MethodGet, "/api/projects", "", translator.LanguageFr)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Route introuvable.", decodeError(t, rec).ErrDetails.Message)
}
