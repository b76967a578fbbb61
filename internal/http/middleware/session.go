package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/interface/http/response"
	"github.com/ignatzorin/agency-backend/internal/logger"
	"github.com/ignatzorin/agency-backend/internal/session"
)

// ContextSessionKey - ключ сессии в gin.Context.
const ContextSessionKey = "session"

// SessionParser разбирает токен в сессию.
type SessionParser interface {
	Parse(token string) (session.Session, error)
}

// SessionMiddleware кладёт сессию в контекст. Без токена при required=false
// подставляется сессия разработки; битый токен отклоняется всегда.
func SessionMiddleware(tokens SessionParser, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			if required {
				response.Unauthorized(c, "oturum gerekli")
				return
			}
			setSession(c, session.Development())
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok {
			response.Unauthorized(c, "geçersiz yetkilendirme başlığı")
			return
		}
		s, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil || s.IsZero() {
			response.Unauthorized(c, "oturum geçersiz veya süresi dolmuş")
			return
		}

		setSession(c, s)
		c.Next()
	}
}

func setSession(c *gin.Context, s session.Session) {
	c.Set(ContextSessionKey, s)
	c.Set(logger.UserNameKey, s.Name)
}

// CurrentSession достаёт сессию, положенную SessionMiddleware.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(ContextSessionKey)
	if !ok {
		return session.Session{}, false
	}
	s, ok := v.(session.Session)
	return s, ok && !s.IsZero()
}

// RequirePage пропускает только роли, которым открыт раздел.
func RequirePage(page valueobject.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := CurrentSession(c)
		if !ok {
			response.Unauthorized(c, "oturum gerekli")
			return
		}
		if !s.CanAccess(page) {
			logger.WithRequest(c).WithField("page", page).Warn("access denied")
			response.Forbidden(c, "bu sayfaya erişim yetkiniz yok")
			return
		}
		c.Next()
	}
}
