package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/agency-backend/internal/app"
	"github.com/ignatzorin/agency-backend/internal/config"
	"github.com/ignatzorin/agency-backend/internal/db"
	"github.com/ignatzorin/agency-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/agency-backend/internal/interface/http/handler"
	"github.com/ignatzorin/agency-backend/internal/logger"
	"github.com/ignatzorin/agency-backend/migrations"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.IsDevelopment() {
		logger.SetTextFormatter()
	}

	var repos *persistence.Repositories
	checks := map[string]handler.HealthCheck{}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Log.WithError(err).Fatal("main: ошибка подключения к базе")
		}
		defer safeClose(dbConn)

		schema := fs.FS(migrations.FS)
		if cfg.MigrationsPath != "" {
			schema = os.DirFS(cfg.MigrationsPath)
		}
		if err := db.RunMigrations(ctx, dbConn, schema); err != nil {
			logger.Log.WithError(err).Fatal("main: ошибка миграций")
		}
		repos = persistence.NewPostgresRepositories(dbConn)
		checks["database"] = dbConn.PingContext
	default:
		repos, err = persistence.NewFileRepositories(cfg.DataDir)
		if err != nil {
			logger.Log.WithError(err).Fatal("main: не удалось подготовить каталог данных")
		}
		checks["data_dir"] = dirCheck(cfg.DataDir)
	}
	checks["uploads_dir"] = dirCheck(cfg.UploadsDir)

	engine, err := app.New(ctx, cfg, repos, checks)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось собрать приложение")
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logger.Log.WithFields(map[string]any{
		"port":    cfg.HTTPPort,
		"storage": cfg.StorageDriver,
		"auth":    cfg.AuthRequired,
	}).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.WithError(err).Fatal("main: сервер завершился с ошибкой")
	}
}

// dirCheck проверяет, что каталог существует.
func dirCheck(dir string) handler.HealthCheck {
	return func(ctx context.Context) error {
		info, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return errors.New(dir + " is not a directory")
		}
		return nil
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
