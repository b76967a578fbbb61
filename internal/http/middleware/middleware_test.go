package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/http/middleware"
	"github.com/ignatzorin/agency-backend/internal/logger"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/session"
)

func init() {
	logger.Discard()
	gin.SetMode(gin.TestMode)
}

type stubParser map[string]session.Session

func (p stubParser) Parse(token string) (session.Session, error) {
	s, ok := p[token]
	if !ok {
		return session.Session{}, errors.New("bad token")
	}
	return s, nil
}

var staff = session.Session{UserID: uuid.New(), Name: "Zeynep", Role: valueobject.RoleStaff}

func sessionEngine(required bool) *gin.Engine {
	r := gin.New()
	r.Use(middleware.SessionMiddleware(stubParser{"staff-token": staff}, required))
	r.GET("/me", func(c *gin.Context) {
		s, ok := middleware.CurrentSession(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, s.Name)
	})
	r.GET("/employees", middleware.RequirePage(valueobject.PageEmployees), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		required bool
		auth     string
		code     int
		body     string
	}{
		{"development fallback", false, "", http.StatusOK, session.Development().Name},
		{"required without token", true, "", http.StatusUnauthorized, ""},
		{"valid token", true, "Bearer staff-token", http.StatusOK, "Zeynep"},
		{"unknown token", false, "Bearer other", http.StatusUnauthorized, ""},
		{"wrong scheme", false, "Basic staff-token", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(sessionEngine(tt.required), "/me", tt.auth)
			assert.Equal(t, tt.code, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequirePage(t *testing.T) {
	r := sessionEngine(false)

	assert.Equal(t, http.StatusOK, get(r, "/employees", "").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/employees", "Bearer staff-token").Code)

	bare := gin.New()
	bare.GET("/employees", middleware.RequirePage(valueobject.PageEmployees), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusUnauthorized, get(bare, "/employees", "").Code)
}

func TestUUIDValidator(t *testing.T) {
	r := gin.New()
	r.GET("/notes/:id/files/:fileId", middleware.UUIDValidator("id", "fileId"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	ok := "/notes/" + uuid.NewString() + "/files/" + uuid.NewString()
	assert.Equal(t, http.StatusOK, get(r, ok, "").Code)

	w := get(r, "/notes/"+uuid.NewString()+"/files/123", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "fileId")
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/not-found", func(c *gin.Context) { _ = c.Error(apperror.ErrNoteNotFound) })
	r.GET("/plain", func(c *gin.Context) { _ = c.Error(errors.New("disk dolu")) })

	w := get(r, "/panic", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")

	assert.Equal(t, http.StatusNotFound, get(r, "/not-found", "").Code)

	w = get(r, "/plain", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk dolu")
}

func TestRequestIDPropagates(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, "/", "")
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	id := uuid.NewString()
	req.Header.Set("X-Request-ID", id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get("X-Request-ID"))
}
