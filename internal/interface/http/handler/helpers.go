package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/http/middleware"
	"github.com/ignatzorin/agency-backend/internal/interface/http/response"
	"github.com/ignatzorin/agency-backend/internal/session"
)

// maxJSONBody - предел тела JSON-запроса; файлы идут отдельным multipart-лимитом.
const maxJSONBody = 4 << 20

func currentSession(c *gin.Context) (session.Session, bool) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		response.Unauthorized(c, "oturum gerekli")
	}
	return s, ok
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, name+" geçerli bir UUID olmalı")
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, "geçersiz istek gövdesi")
		return false
	}
	return true
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxJSONBody))
	if err != nil || len(body) == 0 {
		response.BadRequest(c, "geçersiz istek gövdesi")
		return nil, false
	}
	return body, true
}
