package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/mapper"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/http/validation"
	"taskmanager/internal/core/ports"
	"taskmanager/pkg/apierrors"
)

const TotalCountHeader = "X-Total-Count"

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	var query dto.TaskListQuery
	if err := validation.BindQuery(c, &query); err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidQuery)
		return
	}

	params, err := validation.BuildTaskListParams(query)
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidQuery)
		return
	}

	page, err := h.taskService.ListTasks(c.Request.Context(), params)
	if err != nil {
		writeError(c, err, apierrors.MsgFailListTask, "failed to list tasks")
		return
	}

	c.Header(TotalCountHeader, strconv.FormatInt(page.Total, 10))
	c.JSON(http.StatusOK, mapper.ToTaskListResponse(page))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, middleware.GetLang(c)),
		)
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		writeError(c, err, apierrors.MsgFailGetTask, "failed to get task", zap.Int64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidTaskPayload)
		return
	}

	var req dto.CreateTaskRequest
	raw, err := validation.DecodeJSON(body, &req, validation.TaskCreateFields, validation.ErrInvalidTaskPayload)
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		writeError(c, err, apierrors.MsgFailCreateTask, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

// UpdateTask applies a partial update. Sending the updated_at value last read
// makes the write conditional; a stale value answers 409.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := pathID(c)
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidTaskPayload)
		return
	}

	var req dto.UpdateTaskRequest
	raw, err := validation.DecodeJSON(body, &req, validation.TaskUpdateFields, validation.ErrInvalidTaskPayload)
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidTaskPayload)
		return
	}

	patch, expectedUpdatedAt, err := validation.BuildTaskPatch(req, raw)
	if err != nil {
		writePayloadError(c, err, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, patch, expectedUpdatedAt)
	if err != nil {
		writeError(c, err, apierrors.MsgFailUpdateTask, "failed to update task", zap.Int64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, middleware.GetLang(c)),
		)
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		writeError(c, err, apierrors.MsgFailDeleteTask, "failed to delete task", zap.Int64("task_id", taskID))
		return
	}

	c.Status(http.StatusNoContent)
}
