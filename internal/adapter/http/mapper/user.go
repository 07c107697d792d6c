package mapper

import (
	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

func ToUserItems(users []domain.User) []dto.UserItem {
	items := make([]dto.UserItem, 0, len(users))
	for _, user := range users {
		items = append(items, ToUserItem(user))
	}
	return items
}

func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt.UTC().Format(TimestampLayout),
		UpdatedAt: user.UpdatedAt.UTC().Format(TimestampLayout),
	}
}

func ToDeleteUserResponse(deletion domain.UserDeletion, message string) dto.DeleteUserResponse {
	ids := deletion.AffectedTaskIDs
	if ids == nil {
		ids = []int64{}
	}
	return dto.DeleteUserResponse{
		Deleted:            deletion.Deleted,
		AffectedTasksCount: len(ids),
		AffectedTaskIDs:    ids,
		Message:            message,
	}
}
