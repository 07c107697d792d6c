package mapper

import (
	"time"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = time.RFC3339Nano
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		Title:     task.Title,
		Status:    string(task.Status),
		Priority:  string(task.Priority),
		CreatedAt: task.CreatedAt.UTC().Format(TimestampLayout),
		UpdatedAt: task.UpdatedAt.UTC().Format(TimestampLayout),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(DateLayout)
		item.DueDate = &value
	}

	if task.AssignedTo != nil {
		value := *task.AssignedTo
		item.AssignedTo = &value
	}

	if task.AssigneeName != nil {
		value := *task.AssigneeName
		item.AssigneeName = &value
	}

	return item
}

func ToTaskListResponse(page domain.TaskPage) dto.TaskListResponse {
	return dto.TaskListResponse{
		Items:  ToTaskItems(page.Tasks),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}
