package dto

type TaskItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	DueDate      *string `json:"due_date"`
	AssignedTo   *int64  `json:"assigned_to"`
	AssigneeName *string `json:"assignee_name"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type TaskListResponse struct {
	Items  []TaskItem `json:"items"`
	Total  int64      `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// TaskListQuery binds the list query string. Set-valued filters accept both
// repeated parameters and comma separated values.
type TaskListQuery struct {
	Status      []string `form:"status"`
	Priority    []string `form:"priority"`
	AssignedTo  []string `form:"assigned_to"`
	Search      string   `form:"search"`
	Sort        string   `form:"sort"`
	Order       string   `form:"order"`
	Limit       int      `form:"limit"`
	Offset      int      `form:"offset"`
	DueDateFrom string   `form:"due_date_from" binding:"omitempty,datetime=2006-01-02"`
	DueDateTo   string   `form:"due_date_to" binding:"omitempty,datetime=2006-01-02"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo in-progress done"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	AssignedTo  *int64  `json:"assigned_to" binding:"omitempty,gt=0"`
}

// UpdateTaskRequest is a partial update. UpdatedAt, when sent, is the
// updated_at the client last read and turns the update into a conditional one.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo in-progress done"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	AssignedTo  *int64  `json:"assigned_to" binding:"omitempty,gt=0"`
	UpdatedAt   *string `json:"updated_at" binding:"omitempty"`
}
