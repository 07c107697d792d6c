package domain

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrAssigneeNotFound = errors.New("assigned user does not exist")
	ErrUserConflict     = errors.New("username or email already exists")
	ErrTaskModified     = errors.New("task was modified by someone else")
	ErrEmptyPatch       = errors.New("nothing to update")
	ErrInvalidSortField = errors.New("invalid sort field")
)
