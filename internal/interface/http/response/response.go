package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-backend/internal/logger"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []apperror.FieldError `json:"details,omitempty"`
	Meta    map[string]any        `json:"meta,omitempty"`
}

type ListResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Total   int  `json:"total"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// List отдаёт массив целиком; пагинации нет, записи помещаются в один JSON-файл.
func List(c *gin.Context, data any, total int) {
	c.JSON(http.StatusOK, ListResponse{
		Success: true,
		Data:    data,
		Total:   total,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// File отдаёт выгрузку как вложение.
func File(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(name))
	c.Data(http.StatusOK, contentType, data)
}

// Error переводит ошибку в ответ. AppError отдаётся как есть, остальное
// маскируется и пишется в лог.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		logger.WithRequest(c).WithError(err).Error("unhandled error")
		appErr = apperror.New(apperror.ErrCodeInternal, "beklenmeyen bir hata oluştu")
	} else if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.WithRequest(c).WithError(err).Error("request failed")
	}
	c.JSON(appErr.HTTPStatus, failure(appErr))
}

func failure(e *apperror.AppError) Response {
	return Response{Error: &ErrorInfo{
		Code:    string(e.Code),
		Message: e.Message,
		Details: e.Details,
		Meta:    e.Meta,
	}}
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, failure(apperror.New(apperror.ErrCodeBadRequest, message)))
}

// Unauthorized и Forbidden прерывают цепочку: ими отвечают middleware.
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, failure(apperror.New(apperror.ErrCodeUnauthorized, message)))
}

func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, failure(apperror.New(apperror.ErrCodeForbidden, message)))
}
