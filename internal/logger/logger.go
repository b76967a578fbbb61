package logger

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Log до вызова Init пишет в stderr с уровнем info, чтобы тесты и утилиты не падали на nil.
var Log = logrus.New()

// Init инициализирует структурированный логгер.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// JSON для production, text включается отдельно через SetTextFormatter.
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// Discard глушит вывод, используется в тестах.
func Discard() {
	Log.SetOutput(io.Discard)
}

// WithRequest возвращает запись лога с полями текущего запроса.
func WithRequest(c *gin.Context) *logrus.Entry {
	fields := logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}
	if id := c.GetString(RequestIDKey); id != "" {
		fields["request_id"] = id
	}
	if user := c.GetString(UserNameKey); user != "" {
		fields["user"] = user
	}
	return Log.WithFields(fields)
}

// Ключи gin.Context, которые заполняют middleware.
const (
	RequestIDKey = "requestID"
	UserNameKey  = "userName"
)
