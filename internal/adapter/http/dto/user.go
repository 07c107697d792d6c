package dto

type UserItem struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type UserListQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=100"`
	FullName string `json:"full_name" binding:"required,max=100"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,max=50"`
	Email    *string `json:"email" binding:"omitempty,email,max=100"`
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
}

type DeleteUserResponse struct {
	Deleted            bool    `json:"deleted"`
	AffectedTasksCount int     `json:"affected_tasks_count"`
	AffectedTaskIDs    []int64 `json:"affected_task_ids"`
	Message            string  `json:"message"`
}
