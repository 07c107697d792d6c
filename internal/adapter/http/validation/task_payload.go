package validation

import (
	"encoding/json"
	"strings"
	"time"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

const dateLayout = "2006-01-02"

var (
	TaskCreateFields = domain.TaskPatchFields
	// TaskUpdateFields adds updated_at, the optimistic-lock token.
	TaskUpdateFields = append(append([]string{}, domain.TaskPatchFields...), "updated_at")
)

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	if details := nonNullable(raw, "title", "status", "priority"); len(details) > 0 {
		return domain.CreateTaskInput{}, newPayloadError(ErrInvalidTaskPayload, details...)
	}

	req.Title = strings.TrimSpace(req.Title)
	if err := validate(&req, ErrInvalidTaskPayload); err != nil {
		return domain.CreateTaskInput{}, err
	}

	input := domain.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	}
	if req.Status != nil {
		input.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		input.Priority = domain.TaskPriority(*req.Priority)
	}

	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return domain.CreateTaskInput{}, newPayloadError(ErrInvalidTaskPayload, "due_date must be a date formatted as "+dateLayout)
		}
		input.DueDate = &dueDate
	}

	return input.WithDefaults(), nil
}

// BuildTaskPatch turns an update body into a patch and the optional expected
// updated_at. A body without any task field yields an empty patch.
func BuildTaskPatch(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.TaskPatch, *time.Time, error) {
	if details := nonNullable(raw, "title", "status", "priority", "updated_at"); len(details) > 0 {
		return domain.TaskPatch{}, nil, newPayloadError(ErrInvalidTaskPayload, details...)
	}

	req.Title = trimmed(req.Title)
	if req.Title != nil && *req.Title == "" {
		return domain.TaskPatch{}, nil, newPayloadError(ErrInvalidTaskPayload, "title must not be blank")
	}
	if err := validate(&req, ErrInvalidTaskPayload); err != nil {
		return domain.TaskPatch{}, nil, err
	}

	patch := domain.TaskPatch{
		Title:          req.Title,
		Description:    req.Description,
		DescriptionSet: hasJSONField(raw, "description"),
		AssignedTo:     req.AssignedTo,
		AssignedToSet:  hasJSONField(raw, "assigned_to"),
		DueDateSet:     hasJSONField(raw, "due_date"),
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}

	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return domain.TaskPatch{}, nil, newPayloadError(ErrInvalidTaskPayload, "due_date must be a date formatted as "+dateLayout)
		}
		patch.DueDate = &dueDate
	}

	var expected *time.Time
	if req.UpdatedAt != nil {
		value, err := time.Parse(time.RFC3339Nano, *req.UpdatedAt)
		if err != nil {
			return domain.TaskPatch{}, nil, newPayloadError(ErrInvalidTaskPayload, "updated_at must be an RFC 3339 timestamp")
		}
		expected = &value
	}

	return patch, expected, nil
}
