package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	userRepository ports.UserRepository
	// strictConflicts re-reads the task before reporting a lock conflict so a
	// task deleted in the meantime is reported as not found.
	strictConflicts bool
}

type TaskServiceOption func(*TaskService)

func WithStrictConflictCheck(enabled bool) TaskServiceOption {
	return func(s *TaskService) {
		s.strictConflicts = enabled
	}
}

func NewTaskService(taskRepository ports.TaskRepository, userRepository ports.UserRepository, opts ...TaskServiceOption) *TaskService {
	s := &TaskService{taskRepository: taskRepository, userRepository: userRepository}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) ListTasks(ctx context.Context, params domain.TaskListParams) (domain.TaskPage, error) {
	return s.taskRepository.ListTasks(ctx, params.Normalize())
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	return s.taskRepository.GetTask(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	if err := s.ensureAssignee(ctx, input.AssignedTo); err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.CreateTask(ctx, input.WithDefaults())
}

func (s *TaskService) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch, expectedUpdatedAt *time.Time) (domain.Task, error) {
	if patch.IsEmpty() {
		return domain.Task{}, domain.ErrEmptyPatch
	}

	if patch.AssignedToSet {
		if err := s.ensureAssignee(ctx, patch.AssignedTo); err != nil {
			return domain.Task{}, err
		}
	}

	task, err := s.taskRepository.UpdateTask(ctx, id, patch, expectedUpdatedAt)
	if err == nil {
		return task, nil
	}
	if !errors.Is(err, domain.ErrTaskNotFound) || expectedUpdatedAt == nil {
		return domain.Task{}, err
	}

	if s.strictConflicts {
		if _, getErr := s.taskRepository.GetTask(ctx, id); errors.Is(getErr, domain.ErrTaskNotFound) {
			return domain.Task{}, domain.ErrTaskNotFound
		} else if getErr != nil {
			return domain.Task{}, getErr
		}
	}

	zap.L().Info("rejected stale task update",
		zap.Int64("task_id", id),
		zap.Time("expected_updated_at", *expectedUpdatedAt),
	)
	return domain.Task{}, domain.ErrTaskModified
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	return s.taskRepository.DeleteTask(ctx, id)
}

// ensureAssignee checks that a non-nil assignee refers to an existing user.
// The foreign key still backs this up when the user vanishes after the check.
func (s *TaskService) ensureAssignee(ctx context.Context, userID *int64) error {
	if userID == nil {
		return nil
	}

	exists, err := s.userRepository.ExistsUser(ctx, *userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrAssigneeNotFound
	}
	return nil
}

var _ ports.TaskService = (*TaskService)(nil)
