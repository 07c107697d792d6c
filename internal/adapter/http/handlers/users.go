package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/mapper"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/http/validation"
	"taskmanager/internal/core/ports"
	"taskmanager/pkg/apierrors"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.UserListQuery
	if err := validation.BindQuery(c, &query); err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidQuery)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), query.Limit, query.Offset)
	if err != nil {
		writeError(c, err, apierrors.MsgFailListUser, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItems(users))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		invalidUserID(c)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, apierrors.MsgFailGetUser, "failed to get user", zap.Int64("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItem(user))
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidUserPayload)
		return
	}

	var req dto.CreateUserRequest
	raw, err := validation.DecodeJSON(body, &req, validation.UserFields, validation.ErrInvalidUserPayload)
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidUserPayload)
		return
	}

	input, err := validation.BuildCreateUserInput(req, raw)
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidUserPayload)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), input)
	if err != nil {
		writeError(c, err, apierrors.MsgFailCreateUser, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToUserItem(user))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		invalidUserID(c)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidUserPayload)
		return
	}

	var req dto.UpdateUserRequest
	raw, err := validation.DecodeJSON(body, &req, validation.UserFields, validation.ErrInvalidUserPayload)
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidUserPayload)
		return
	}

	patch, err := validation.BuildUserPatch(req, raw)
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidUserPayload)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, patch)
	if err != nil {
		writeError(c, err, apierrors.MsgFailUpdateUser, "failed to update user", zap.Int64("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItem(user))
}

// DeleteUser removes the user and reports which tasks lost their assignee.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		invalidUserID(c)
		return
	}

	deletion, err := h.userService.DeleteUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, apierrors.MsgFailDeleteUser, "failed to delete user", zap.Int64("user_id", userID))
		return
	}

	message := apierrors.GetTransErrorMsg(apierrors.MsgUserDeleted, middleware.GetLang(c))
	c.JSON(http.StatusOK, mapper.ToDeleteUserResponse(deletion, message))
}

func invalidUserID(c *gin.Context) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidUserID, middleware.GetLang(c)),
	)
}
