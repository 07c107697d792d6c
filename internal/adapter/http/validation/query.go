package validation

import (
	"strings"
	"time"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

// BuildTaskListParams converts the bound query string into list parameters.
// Paging and sort order are normalized here; the sort key is checked against
// the allow-list by the store.
func BuildTaskListParams(query dto.TaskListQuery) (domain.TaskListParams, error) {
	if err := validate(&query, ErrInvalidQuery); err != nil {
		return domain.TaskListParams{}, err
	}

	filter := domain.TaskFilter{
		AssignedTo: domain.ParseAssigneeFilter(splitValues(query.AssignedTo)),
		Search:     strings.TrimSpace(query.Search),
	}
	for _, status := range splitValues(query.Status) {
		filter.Statuses = append(filter.Statuses, domain.TaskStatus(status))
	}
	for _, priority := range splitValues(query.Priority) {
		filter.Priorities = append(filter.Priorities, domain.TaskPriority(priority))
	}

	var err error
	if filter.DueDateFrom, err = parseDate(query.DueDateFrom); err != nil {
		return domain.TaskListParams{}, newPayloadError(ErrInvalidQuery, "due_date_from must be a date formatted as "+dateLayout)
	}
	if filter.DueDateTo, err = parseDate(query.DueDateTo); err != nil {
		return domain.TaskListParams{}, newPayloadError(ErrInvalidQuery, "due_date_to must be a date formatted as "+dateLayout)
	}

	return domain.TaskListParams{
		Filter: filter,
		Sort:   strings.TrimSpace(query.Sort),
		Order:  domain.ParseSortOrder(query.Order),
		Limit:  query.Limit,
		Offset: query.Offset,
	}.Normalize(), nil
}

// splitValues flattens repeated and comma separated values, dropping blanks.
func splitValues(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
