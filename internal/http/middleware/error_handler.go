package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-backend/internal/interface/http/response"
	"github.com/ignatzorin/agency-backend/internal/logger"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

// ErrorHandler превращает ошибки из c.Errors и паники в единый JSON-ответ.
// Внутренние ошибки маскируются, известные AppError отдаются как есть.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithRequest(c).WithField("panic", r).Error("panic in handler")
				if !c.Writer.Written() {
					response.Error(c, apperror.New(apperror.ErrCodeInternal, "beklenmeyen bir hata oluştu"))
				}
				c.Abort()
			}
		}()

		c.Next()

		// Ответ уже отправлен обработчиком
		if c.Writer.Written() {
			return
		}

		if len(c.Errors) > 0 {
			response.Error(c, c.Errors.Last().Err)
		}
	}
}
