package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/agency-backend/internal/logger"
)

// SafeGo запускает горутину с обработкой panic
func SafeGo(name string, fn func()) {
	go func() {
		defer recoverPanic(name)
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer recoverPanic("")
		fn(ctx)
	}()
}

func recoverPanic(name string) {
	if r := recover(); r != nil {
		entry := logger.Log.WithFields(logrus.Fields{
			"panic": r,
			"stack": string(debug.Stack()),
		})
		if name != "" {
			entry = entry.WithField("goroutine", name)
		}
		entry.Error("panic in goroutine")
	}
}
