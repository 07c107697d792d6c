package service

import (
	"context"

	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type UserService struct {
	userRepository ports.UserRepository
}

func NewUserService(userRepository ports.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	limit = domain.ClampLimit(limit, domain.DefaultUserLimit, domain.MaxUserLimit)
	if offset < 0 {
		offset = 0
	}
	return s.userRepository.ListUsers(ctx, limit, offset)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.userRepository.GetUser(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	if err := s.ensureAvailable(ctx, 0, input.Username, input.Email); err != nil {
		return domain.User{}, err
	}
	return s.userRepository.CreateUser(ctx, input)
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error) {
	if patch.IsEmpty() {
		return domain.User{}, domain.ErrEmptyPatch
	}

	if patch.Username != nil || patch.Email != nil {
		// A missing user is reported as such before any conflict.
		exists, err := s.userRepository.ExistsUser(ctx, id)
		if err != nil {
			return domain.User{}, err
		}
		if !exists {
			return domain.User{}, domain.ErrUserNotFound
		}
		if err := s.ensureAvailable(ctx, id, deref(patch.Username), deref(patch.Email)); err != nil {
			return domain.User{}, err
		}
	}
	return s.userRepository.UpdateUser(ctx, id, patch)
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) (domain.UserDeletion, error) {
	deletion, err := s.userRepository.DeleteUser(ctx, id)
	if err != nil {
		return domain.UserDeletion{}, err
	}

	zap.L().Info("deleted user",
		zap.Int64("user_id", id),
		zap.Int("unassigned_tasks", len(deletion.AffectedTaskIDs)),
	)
	return deletion, nil
}

// ensureAvailable fails with ErrUserConflict when a user other than selfID
// already holds username or email. The unique constraints remain the final
// word when two writers race past this check.
func (s *UserService) ensureAvailable(ctx context.Context, selfID int64, username, email string) error {
	existing, err := s.userRepository.FindUsersByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return err
	}
	for _, user := range existing {
		if user.ID != selfID {
			return domain.ErrUserConflict
		}
	}
	return nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

var _ ports.UserService = (*UserService)(nil)
