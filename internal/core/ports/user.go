package ports

import (
	"context"

	"taskmanager/internal/core/domain"
)

type UserRepository interface {
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
	ExistsUser(ctx context.Context, id int64) (bool, error)
	// FindUsersByUsernameOrEmail returns every user holding either value.
	// Empty values are ignored.
	FindUsersByUsernameOrEmail(ctx context.Context, username, email string) ([]domain.User, error)
	CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error)
	UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error)
	DeleteUser(ctx context.Context, id int64) (domain.UserDeletion, error)
}

type UserService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
	CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error)
	UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error)
	DeleteUser(ctx context.Context, id int64) (domain.UserDeletion, error)
}
