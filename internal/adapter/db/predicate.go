package db

import (
	"strings"

	"taskmanager/internal/core/domain"
)

// Predicate is one parameterized WHERE fragment. SQL uses ? placeholders; a
// slice argument stands for an IN list and is expanded by sqlx.In.
type Predicate struct {
	SQL  string
	Args []any
}

// BuildTaskPredicates turns a task filter into AND-ed fragments. It never
// touches the store and never inlines a filter value into the SQL text.
func BuildTaskPredicates(filter domain.TaskFilter, dialect Dialect) []Predicate {
	var predicates []Predicate

	if statuses := nonBlank(filter.Statuses); len(statuses) > 0 {
		predicates = append(predicates, Predicate{SQL: "t.status IN (?)", Args: []any{statuses}})
	}

	if priorities := nonBlank(filter.Priorities); len(priorities) > 0 {
		predicates = append(predicates, Predicate{SQL: "t.priority IN (?)", Args: []any{priorities}})
	}

	if p, ok := assigneePredicate(filter.AssignedTo); ok {
		predicates = append(predicates, p)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		if p := dialect.SearchPredicate(search); p.SQL != "" {
			predicates = append(predicates, p)
		}
	}

	if filter.DueDateFrom != nil {
		predicates = append(predicates, Predicate{SQL: "t.due_date >= ?", Args: []any{dialect.Date(*filter.DueDateFrom)}})
	}
	if filter.DueDateTo != nil {
		predicates = append(predicates, Predicate{SQL: "t.due_date <= ?", Args: []any{dialect.Date(*filter.DueDateTo)}})
	}

	return predicates
}

func assigneePredicate(f domain.AssigneeFilter) (Predicate, bool) {
	switch {
	case len(f.UserIDs) > 0 && f.Unassigned:
		return Predicate{SQL: "(t.assigned_to IN (?) OR t.assigned_to IS NULL)", Args: []any{f.UserIDs}}, true
	case len(f.UserIDs) > 0:
		return Predicate{SQL: "t.assigned_to IN (?)", Args: []any{f.UserIDs}}, true
	case f.Unassigned:
		return Predicate{SQL: "t.assigned_to IS NULL"}, true
	default:
		return Predicate{}, false
	}
}

// JoinPredicates renders " WHERE a AND b" (or "" for no predicates) and the
// arguments in placeholder order.
func JoinPredicates(predicates []Predicate) (string, []any) {
	if len(predicates) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(predicates))
	var args []any
	for _, p := range predicates {
		parts = append(parts, p.SQL)
		args = append(args, p.Args...)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func nonBlank[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(string(v)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
