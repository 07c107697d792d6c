package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

const userColumns = "id, username, email, full_name, created_at, updated_at"

const insertUserQuery = `
INSERT INTO users (username, email, full_name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`

type UserRepository struct {
	store *Store
}

type userRow struct {
	ID        int64    `db:"id"`
	Username  string   `db:"username"`
	Email     string   `db:"email"`
	FullName  string   `db:"full_name"`
	CreatedAt nullTime `db:"created_at"`
	UpdatedAt nullTime `db:"updated_at"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	limit = domain.ClampLimit(limit, domain.DefaultUserLimit, domain.MaxUserLimit)
	if offset < 0 {
		offset = 0
	}

	var rows []userRow
	query := r.store.DB.Rebind("SELECT " + userColumns + " FROM users ORDER BY id LIMIT ? OFFSET ?")
	if err := r.store.DB.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserRowToDomainUser(row))
	}
	return users, nil
}

func (r *UserRepository) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return getUser(ctx, r.store.DB, id)
}

func getUser(ctx context.Context, q sqlx.ExtContext, id int64) (domain.User, error) {
	var row userRow
	query := q.Rebind("SELECT " + userColumns + " FROM users WHERE id = ?")
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return mapUserRowToDomainUser(row), nil
}

func (r *UserRepository) ExistsUser(ctx context.Context, id int64) (bool, error) {
	var found int
	query := r.store.DB.Rebind("SELECT 1 FROM users WHERE id = ?")
	if err := r.store.DB.GetContext(ctx, &found, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check user %d: %w", id, err)
	}
	return true, nil
}

func (r *UserRepository) FindUsersByUsernameOrEmail(ctx context.Context, username, email string) ([]domain.User, error) {
	var (
		conditions []string
		args       []any
	)
	if username != "" {
		conditions = append(conditions, "username = ?")
		args = append(args, username)
	}
	if email != "" {
		conditions = append(conditions, "email = ?")
		args = append(args, email)
	}
	if len(conditions) == 0 {
		return nil, nil
	}

	where := conditions[0]
	if len(conditions) == 2 {
		where += " OR " + conditions[1]
	}

	var rows []userRow
	query := r.store.DB.Rebind("SELECT " + userColumns + " FROM users WHERE " + where + " ORDER BY id")
	if err := r.store.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserRowToDomainUser(row))
	}
	return users, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	now := r.store.Dialect.Timestamp(r.store.now())

	var user domain.User
	err := r.store.withTx(ctx, func(tx *sqlx.Tx) error {
		id, err := r.store.insertReturningID(ctx, tx, insertUserQuery, input.Username, input.Email, input.FullName, now, now)
		if err != nil {
			return r.translateError(err)
		}

		user, err = getUser(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error) {
	if patch.IsEmpty() {
		return domain.User{}, domain.ErrEmptyPatch
	}

	set, args := setClause(userAssignments(patch))
	query := "UPDATE users SET " + set + ", updated_at = ? WHERE id = ?"
	args = append(args, r.store.Dialect.Timestamp(r.store.now()), id)

	var user domain.User
	err := r.store.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return r.translateError(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update user %d: %w", id, err)
		}
		if affected == 0 {
			return domain.ErrUserNotFound
		}

		user, err = getUser(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// DeleteUser removes a user and unassigns their tasks in one transaction. The
// ids of the unassigned tasks are read first so they can be reported back.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) (domain.UserDeletion, error) {
	var deletion domain.UserDeletion

	err := r.store.withTx(ctx, func(tx *sqlx.Tx) error {
		taskIDs := []int64{}
		if err := tx.SelectContext(ctx, &taskIDs, tx.Rebind("SELECT id FROM tasks WHERE assigned_to = ? ORDER BY id"), id); err != nil {
			return fmt.Errorf("read tasks of user %d: %w", id, err)
		}

		if len(taskIDs) > 0 {
			_, err := tx.ExecContext(ctx,
				tx.Rebind("UPDATE tasks SET assigned_to = NULL, updated_at = ? WHERE assigned_to = ?"),
				r.store.Dialect.Timestamp(r.store.now()), id,
			)
			if err != nil {
				return fmt.Errorf("unassign tasks of user %d: %w", id, err)
			}
		}

		result, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM users WHERE id = ?"), id)
		if err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}
		if affected == 0 {
			return domain.ErrUserNotFound
		}

		deletion = domain.UserDeletion{Deleted: true, AffectedTaskIDs: taskIDs}
		return nil
	})
	if err != nil {
		return domain.UserDeletion{}, err
	}
	return deletion, nil
}

func (r *UserRepository) translateError(err error) error {
	if r.store.Dialect.IsUniqueViolation(err) {
		return domain.ErrUserConflict
	}
	return fmt.Errorf("write user: %w", err)
}

func mapUserRowToDomainUser(row userRow) domain.User {
	return domain.User{
		ID:        row.ID,
		Username:  row.Username,
		Email:     row.Email,
		FullName:  row.FullName,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
