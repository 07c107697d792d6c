package ports

import (
	"context"
	"time"

	"taskmanager/internal/core/domain"
)

type TaskRepository interface {
	ListTasks(ctx context.Context, params domain.TaskListParams) (domain.TaskPage, error)
	GetTask(ctx context.Context, id int64) (domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch, expectedUpdatedAt *time.Time) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type TaskService interface {
	ListTasks(ctx context.Context, params domain.TaskListParams) (domain.TaskPage, error)
	GetTask(ctx context.Context, id int64) (domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch, expectedUpdatedAt *time.Time) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}
