package tests

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"taskmanager/internal/core/domain"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) ListTasks(ctx context.Context, params domain.TaskListParams) (domain.TaskPage, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.TaskPage), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch, expectedUpdatedAt *time.Time) (domain.Task, error) {
	args := m.Called(ctx, id, patch, expectedUpdatedAt)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type userServiceMock struct {
	mock.Mock
}

func (m *userServiceMock) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)

	var users []domain.User
	if value := args.Get(0); value != nil {
		users = value.([]domain.User)
	}
	return users, args.Error(1)
}

func (m *userServiceMock) GetUser(ctx context.Context, id int64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) DeleteUser(ctx context.Context, id int64) (domain.UserDeletion, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.UserDeletion), args.Error(1)
}

type storeStatusStub struct {
	pingErr error
}

func (s storeStatusStub) PingContext(context.Context) error { return s.pingErr }
func (s storeStatusStub) DialectName() string               { return "sqlite" }
func (s storeStatusStub) FullTextSearch() bool              { return false }
