package db

import (
	"strings"

	"taskmanager/internal/core/domain"
)

type assignment struct {
	column string
	value  any
}

// taskAssignments walks the fixed list of mutable task columns and keeps the
// ones present in the patch. Column names never come from the caller.
func taskAssignments(patch domain.TaskPatch, dialect Dialect) []assignment {
	var out []assignment
	for _, field := range domain.TaskPatchFields {
		switch field {
		case "title":
			if patch.Title != nil {
				out = append(out, assignment{field, *patch.Title})
			}
		case "description":
			if patch.DescriptionSet {
				out = append(out, assignment{field, nullable(patch.Description)})
			}
		case "status":
			if patch.Status != nil {
				out = append(out, assignment{field, string(*patch.Status)})
			}
		case "priority":
			if patch.Priority != nil {
				out = append(out, assignment{field, string(*patch.Priority)})
			}
		case "due_date":
			if patch.DueDateSet {
				var value any
				if patch.DueDate != nil {
					value = dialect.Date(*patch.DueDate)
				}
				out = append(out, assignment{field, value})
			}
		case "assigned_to":
			if patch.AssignedToSet {
				out = append(out, assignment{field, nullable(patch.AssignedTo)})
			}
		}
	}
	return out
}

func userAssignments(patch domain.UserPatch) []assignment {
	var out []assignment
	for _, field := range domain.UserPatchFields {
		switch field {
		case "username":
			if patch.Username != nil {
				out = append(out, assignment{field, *patch.Username})
			}
		case "email":
			if patch.Email != nil {
				out = append(out, assignment{field, *patch.Email})
			}
		case "full_name":
			if patch.FullName != nil {
				out = append(out, assignment{field, *patch.FullName})
			}
		}
	}
	return out
}

// setClause renders "a = ?, b = ?" and its arguments.
func setClause(assignments []assignment) (string, []any) {
	parts := make([]string, 0, len(assignments))
	args := make([]any, 0, len(assignments))
	for _, a := range assignments {
		parts = append(parts, a.column+" = ?")
		args = append(args, a.value)
	}
	return strings.Join(parts, ", "), args
}
