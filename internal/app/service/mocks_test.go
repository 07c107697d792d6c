package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"taskmanager/internal/core/domain"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) ListTasks(ctx context.Context, params domain.TaskListParams) (domain.TaskPage, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.TaskPage), args.Error(1)
}

func (m *taskRepositoryMock) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch, expectedUpdatedAt *time.Time) (domain.Task, error) {
	args := m.Called(ctx, id, patch, expectedUpdatedAt)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type userRepositoryMock struct {
	mock.Mock
}

func (m *userRepositoryMock) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)

	var users []domain.User
	if value := args.Get(0); value != nil {
		users = value.([]domain.User)
	}
	return users, args.Error(1)
}

func (m *userRepositoryMock) GetUser(ctx context.Context, id int64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) ExistsUser(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *userRepositoryMock) FindUsersByUsernameOrEmail(ctx context.Context, username, email string) ([]domain.User, error) {
	args := m.Called(ctx, username, email)

	var users []domain.User
	if value := args.Get(0); value != nil {
		users = value.([]domain.User)
	}
	return users, args.Error(1)
}

func (m *userRepositoryMock) CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) DeleteUser(ctx context.Context, id int64) (domain.UserDeletion, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.UserDeletion), args.Error(1)
}
