package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

const taskColumns = `
  t.id,
  t.title,
  t.description,
  t.status,
  t.priority,
  t.due_date,
  t.assigned_to,
  u.full_name AS assignee_name,
  t.created_at,
  t.updated_at`

const taskFrom = `
FROM tasks t
LEFT JOIN users u ON u.id = t.assigned_to`

const insertTaskQuery = `
INSERT INTO tasks (title, description, status, priority, due_date, assigned_to, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

type TaskRepository struct {
	store *Store
}

type taskRow struct {
	ID           int64          `db:"id"`
	Title        string         `db:"title"`
	Description  sql.NullString `db:"description"`
	Status       string         `db:"status"`
	Priority     string         `db:"priority"`
	DueDate      nullTime       `db:"due_date"`
	AssignedTo   sql.NullInt64  `db:"assigned_to"`
	AssigneeName sql.NullString `db:"assignee_name"`
	CreatedAt    nullTime       `db:"created_at"`
	UpdatedAt    nullTime       `db:"updated_at"`
	TotalCount   int64          `db:"total_count"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

// ListTasks returns one page of tasks and the number of rows matching the
// filter, computed by the same statement through a window count.
func (r *TaskRepository) ListTasks(ctx context.Context, params domain.TaskListParams) (domain.TaskPage, error) {
	params = params.Normalize()

	orderBy, err := ResolveSort(params.Sort, params.Order)
	if err != nil {
		return domain.TaskPage{}, err
	}

	where, args := JoinPredicates(BuildTaskPredicates(params.Filter, r.store.Dialect))

	query := "SELECT" + taskColumns + ",\n  COUNT(*) OVER() AS total_count" + taskFrom + where +
		"\nORDER BY " + orderBy + "\nLIMIT ? OFFSET ?"
	query, boundArgs, err := r.bind(query, append(args, params.Limit, params.Offset)...)
	if err != nil {
		return domain.TaskPage{}, err
	}

	var rows []taskRow
	if err := r.store.DB.SelectContext(ctx, &rows, query, boundArgs...); err != nil {
		return domain.TaskPage{}, fmt.Errorf("list tasks: %w", err)
	}

	page := domain.TaskPage{
		Tasks:  make([]domain.Task, 0, len(rows)),
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	for _, row := range rows {
		page.Tasks = append(page.Tasks, mapTaskRowToDomainTask(row))
	}

	switch {
	case len(rows) > 0:
		page.Total = rows[0].TotalCount
	case params.Offset > 0:
		// A page past the end carries no window count, ask for it directly.
		total, err := r.count(ctx, where, args)
		if err != nil {
			return domain.TaskPage{}, err
		}
		page.Total = total
	}

	return page, nil
}

func (r *TaskRepository) count(ctx context.Context, where string, args []any) (int64, error) {
	query, boundArgs, err := r.bind("SELECT COUNT(*) FROM tasks t"+where, args...)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.store.DB.GetContext(ctx, &total, query, boundArgs...); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return total, nil
}

// bind expands IN-list slices and rewrites ? into the driver's placeholders.
func (r *TaskRepository) bind(query string, args ...any) (string, []any, error) {
	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, fmt.Errorf("bind task query: %w", err)
	}
	return r.store.DB.Rebind(expanded), expandedArgs, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	return getTask(ctx, r.store.DB, id)
}

func getTask(ctx context.Context, q sqlx.ExtContext, id int64) (domain.Task, error) {
	var row taskRow
	query := q.Rebind("SELECT" + taskColumns + taskFrom + "\nWHERE t.id = ?")
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	input = input.WithDefaults()
	now := r.store.Dialect.Timestamp(r.store.now())

	var dueDate any
	if input.DueDate != nil {
		dueDate = r.store.Dialect.Date(*input.DueDate)
	}

	var task domain.Task
	err := r.store.withTx(ctx, func(tx *sqlx.Tx) error {
		id, err := r.store.insertReturningID(ctx, tx, insertTaskQuery,
			input.Title,
			nullable(input.Description),
			string(input.Status),
			string(input.Priority),
			dueDate,
			nullable(input.AssignedTo),
			now,
			now,
		)
		if err != nil {
			return r.translateError(err)
		}

		task, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// UpdateTask writes the patched columns and a fresh updated_at. With an
// expected timestamp the row only matches while its updated_at still equals
// it. No matching row yields ErrTaskNotFound; telling a stale write apart from
// a missing task is left to the caller.
func (r *TaskRepository) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch, expectedUpdatedAt *time.Time) (domain.Task, error) {
	if patch.IsEmpty() {
		return domain.Task{}, domain.ErrEmptyPatch
	}

	set, args := setClause(taskAssignments(patch, r.store.Dialect))
	query := "UPDATE tasks SET " + set + ", updated_at = ? WHERE id = ?"
	args = append(args, r.store.Dialect.Timestamp(r.store.now()), id)
	if expectedUpdatedAt != nil {
		query += " AND updated_at = ?"
		args = append(args, r.store.Dialect.Timestamp(expectedUpdatedAt.UTC().Truncate(time.Microsecond)))
	}

	var task domain.Task
	err := r.store.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return r.translateError(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update task %d: %w", id, err)
		}
		if affected == 0 {
			return domain.ErrTaskNotFound
		}

		task, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id int64) error {
	result, err := r.store.DB.ExecContext(ctx, r.store.DB.Rebind("DELETE FROM tasks WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) translateError(err error) error {
	if r.store.Dialect.IsForeignKeyViolation(err) {
		return domain.ErrAssigneeNotFound
	}
	return fmt.Errorf("write task: %w", err)
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Status:    domain.TaskStatus(row.Status),
		Priority:  domain.TaskPriority(row.Priority),
		DueDate:   row.DueDate.Ptr(),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.AssignedTo.Valid {
		value := row.AssignedTo.Int64
		task.AssignedTo = &value
	}

	if row.AssigneeName.Valid {
		value := row.AssigneeName.String
		task.AssigneeName = &value
	}

	return task
}
