package db

import (
	"fmt"
	"strings"

	"taskmanager/internal/core/domain"
)

const priorityRank = "CASE t.priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 ELSE 0 END"

// taskSortColumns is the only source of column text that reaches ORDER BY.
var taskSortColumns = map[string]string{
	"created_at": "t.created_at",
	"updated_at": "t.updated_at",
	"due_date":   "t.due_date",
	"priority":   priorityRank,
	"id":         "t.id",
	"title":      "t.title",
}

// ResolveSort maps a client sort key to a trusted ORDER BY body ending with an
// id tie-break in the same direction, so pages never skip or repeat rows.
func ResolveSort(key string, order domain.SortOrder) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = domain.DefaultTaskSort
	}

	column, ok := taskSortColumns[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSortField, key)
	}

	direction := "DESC"
	if order == domain.SortAsc {
		direction = "ASC"
	}

	var terms []string
	if key == "due_date" {
		// NULLs last in both directions, whatever the store's default is.
		terms = append(terms, "CASE WHEN t.due_date IS NULL THEN 1 ELSE 0 END ASC")
	}
	terms = append(terms, column+" "+direction)
	if key != "id" {
		terms = append(terms, "t.id "+direction)
	}
	return strings.Join(terms, ", "), nil
}
