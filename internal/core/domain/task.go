package domain

import (
	"strconv"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID           int64
	Title        string
	Description  *string
	Status       TaskStatus
	Priority     TaskPriority
	DueDate      *time.Time
	AssignedTo   *int64
	AssigneeName *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	AssignedTo  *int64
}

// WithDefaults fills status and priority when the caller left them empty.
func (in CreateTaskInput) WithDefaults() CreateTaskInput {
	if in.Status == "" {
		in.Status = TaskStatusTodo
	}
	if in.Priority == "" {
		in.Priority = TaskPriorityMedium
	}
	return in
}

// TaskPatchFields lists, in column order, the task fields a patch may touch.
var TaskPatchFields = []string{"title", "description", "status", "priority", "due_date", "assigned_to"}

// TaskPatch is a partial update. Nullable columns carry a Set flag so that an
// explicit null can be told apart from an absent field.
type TaskPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *TaskStatus
	Priority       *TaskPriority
	DueDate        *time.Time
	DueDateSet     bool
	AssignedTo     *int64
	AssignedToSet  bool
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		!p.DescriptionSet &&
		p.Status == nil &&
		p.Priority == nil &&
		!p.DueDateSet &&
		!p.AssignedToSet
}

// AssigneeFilter selects tasks assigned to one of UserIDs, and/or tasks with no
// assignee when Unassigned is set. The zero value filters nothing.
type AssigneeFilter struct {
	UserIDs    []int64
	Unassigned bool
}

func (f AssigneeFilter) IsEmpty() bool {
	return len(f.UserIDs) == 0 && !f.Unassigned
}

// UnassignedSentinel is the filter value meaning "task has no assignee".
const UnassignedSentinel = "null"

// ParseAssigneeFilter turns raw filter values into an AssigneeFilter. Values
// that are neither the sentinel nor a positive integer are dropped.
func ParseAssigneeFilter(values []string) AssigneeFilter {
	var f AssigneeFilter
	seen := make(map[int64]struct{}, len(values))
	for _, raw := range values {
		value := strings.TrimSpace(raw)
		if value == UnassignedSentinel {
			f.Unassigned = true
			continue
		}
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		f.UserIDs = append(f.UserIDs, id)
	}
	return f
}

type TaskFilter struct {
	Statuses    []TaskStatus
	Priorities  []TaskPriority
	AssignedTo  AssigneeFilter
	Search      string
	DueDateFrom *time.Time
	DueDateTo   *time.Time
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder returns SortAsc for "asc" (any case) and SortDesc otherwise.
func ParseSortOrder(value string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(value), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

const (
	DefaultTaskSort  = "created_at"
	DefaultTaskLimit = 20
	MaxTaskLimit     = 100
	DefaultUserLimit = 100
	MaxUserLimit     = 1000
)

type TaskListParams struct {
	Filter TaskFilter
	Sort   string
	Order  SortOrder
	Limit  int
	Offset int
}

// Normalize applies the sort default and clamps paging to the server limits.
func (p TaskListParams) Normalize() TaskListParams {
	if strings.TrimSpace(p.Sort) == "" {
		p.Sort = DefaultTaskSort
	}
	if p.Order != SortAsc {
		p.Order = SortDesc
	}
	p.Limit = ClampLimit(p.Limit, DefaultTaskLimit, MaxTaskLimit)
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// ClampLimit returns fallback for non-positive limits and max for anything above it.
func ClampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

type TaskPage struct {
	Tasks  []Task
	Total  int64
	Limit  int
	Offset int
}
