package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/http/validation"
	"taskmanager/internal/core/domain"
	"taskmanager/pkg/apierrors"
)

// domainErrors maps the domain sentinel errors to a status and message key.
// Anything not listed is an internal error.
var domainErrors = []struct {
	err    error
	status int
	msgKey string
}{
	{domain.ErrTaskNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound, apierrors.MsgUserNotFound},
	{domain.ErrAssigneeNotFound, http.StatusBadRequest, apierrors.MsgAssigneeNotFound},
	{domain.ErrEmptyPatch, http.StatusBadRequest, apierrors.MsgEmptyPatch},
	{domain.ErrInvalidSortField, http.StatusBadRequest, apierrors.MsgInvalidSortField},
	{domain.ErrTaskModified, http.StatusConflict, apierrors.MsgTaskModified},
	{domain.ErrUserConflict, http.StatusConflict, apierrors.MsgUserConflict},
}

// writeError answers with the status matching err, or with a 500 carrying
// failMsgKey after logging the cause.
func writeError(c *gin.Context, err error, failMsgKey string, logMsg string, fields ...zap.Field) {
	lang := middleware.GetLang(c)

	for _, known := range domainErrors {
		if errors.Is(err, known.err) {
			c.JSON(known.status, apierrors.CreateError(known.status, known.msgKey, lang))
			return
		}
	}

	zap.L().Error(logMsg, append(fields, zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))...)
	c.JSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, failMsgKey, lang),
	)
}

// writePayloadError answers 400 for a rejected body or query string.
func writePayloadError(c *gin.Context, err error, msgKey string) {
	if errors.Is(err, validation.ErrUnknownField) {
		msgKey = apierrors.MsgUnknownField
	}
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateErrorWithDetails(http.StatusBadRequest, msgKey, middleware.GetLang(c), validation.Details(err)),
	)
}

// pathID reads a positive integer :id parameter.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
